package layout

import (
	"fmt"
	"math"
)

// Capacity 记录与具体标签无关的行高与容量。
type Capacity struct {
	LineHeight    float64 `json:"lineHeight"`
	Ascent        float64 `json:"ascent"`
	Advance       float64 `json:"advance"`
	TextMaxWidth  float64 `json:"textMaxWidth"`
	TextMaxHeight float64 `json:"textMaxHeight"`
	MaxLines      int     `json:"maxLines"`
}

// MaxLinesPerLabel 计算可容纳的行数：先按带间距的行高取整，
// 若剩余高度还能放下一整行（不含间距）则再加一行。
func MaxLinesPerLabel(textMaxHeight, lineHeight, padding float64) int {
	if lineHeight <= 0 || textMaxHeight <= 0 {
		return 0
	}
	if padding <= 0 {
		padding = 1
	}
	step := lineHeight * padding
	n := int(math.Floor(textMaxHeight / step))
	if rem := textMaxHeight - float64(n)*step; rem >= lineHeight {
		n++
	}
	return n
}

// ComputeCapacity 使用粗体、常规字号的度量得到统一行高。
// 选择粗体是为了让所有样式共用一个足够高的行高。
func ComputeCapacity(m Measurer, cfg Config) (Capacity, error) {
	if m == nil {
		return Capacity{}, fmt.Errorf("layout: 缺少字体度量后端 Measurer")
	}
	width, height := cfg.TextArea()
	if width <= 0 || height <= 0 {
		return Capacity{}, configErrorf(ErrInvalidGeometry, "文本区域为 %.2fmm × %.2fmm", width, height)
	}
	ascent, descent, err := m.VerticalMetrics(FontRef{Face: cfg.FontFace, Bold: true}, cfg.FontSizeNormal)
	if err != nil {
		return Capacity{}, configErrorf(err, "读取字体 %s 度量失败", cfg.FontFace)
	}
	lineHeight := ascent + descent
	padding := cfg.FontPadding
	if padding <= 0 {
		padding = 1
	}
	return Capacity{
		LineHeight:    lineHeight,
		Ascent:        ascent,
		Advance:       lineHeight * padding,
		TextMaxWidth:  width,
		TextMaxHeight: height,
		MaxLines:      MaxLinesPerLabel(height, lineHeight, padding),
	}, nil
}

// Check 在任何标签处理之前拒绝超出容量的模板。
func (c Capacity) Check(lines int) error {
	if lines > c.MaxLines {
		return configErrorf(ErrTooManyLines, "模板有 %d 行，标签最多容纳 %d 行", lines, c.MaxLines)
	}
	return nil
}
