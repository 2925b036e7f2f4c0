package layout

import "strings"

// Wrap 使用贪心算法按词折行：先按单元格内的换行符分段，再对每段在宽度不超过 maxWidth 时持续追加单词，超出时另起一行。
// 单个超宽单词独占一行，不在词内拆分。空输入返回单个空行。
// 函数无副作用，相同输入总是得到相同输出。
func Wrap(text string, maxWidth float64, width func(string) float64) []string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
	if trimmed == "" {
		return []string{""}
	}
	var lines []string
	for _, para := range strings.Split(trimmed, "\n") {
		lines = append(lines, wrapParagraph(strings.TrimSpace(para), maxWidth, width)...)
	}
	return lines
}

// wrapParagraph 折行不含换行符的一段文本；空段保留为一个空行。
func wrapParagraph(para string, maxWidth float64, width func(string) float64) []string {
	if para == "" {
		return []string{""}
	}
	// 整段可以放下时原样返回（保留内部空白）
	if width(para) <= maxWidth {
		return []string{para}
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(para) {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if width(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// WrapText 用 Measurer 的字体度量折行；度量失败时返回第一个错误。
func WrapText(m Measurer, font FontRef, size, maxWidth float64, text string) ([]string, error) {
	var firstErr error
	lines := Wrap(text, maxWidth, func(s string) float64 {
		w, err := m.TextWidth(font, size, s)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return w
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return lines, nil
}
