package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${name} 替换为 vars 中的值。
// 名称两侧的空白会被忽略；vars 中不存在的名称保留原占位符。
func Interpolate(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		if val, ok := vars[placeholder(match)]; ok {
			return val
		}
		return match
	})
}

// Unresolved 返回文本中仍未替换的占位符名称。
func Unresolved(text string) []string {
	var names []string
	for _, m := range exprPattern.FindAllString(text, -1) {
		if name := placeholder(m); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Render 替换全部占位符；任何一个无法解析都返回错误。
func Render(text string, vars map[string]string) (string, error) {
	out := Interpolate(text, vars)
	if missing := Unresolved(out); len(missing) > 0 {
		return "", fmt.Errorf("模板 %q 中的占位符无法解析: %s", text, strings.Join(missing, ", "))
	}
	return out, nil
}

func placeholder(match string) string {
	groups := exprPattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return ""
	}
	return strings.TrimSpace(groups[1])
}
