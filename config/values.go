package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/labelsheet/layout"
)

// Length 是配置中的长度，未带单位的数字按英寸处理。
type Length struct {
	layout.Length
}

// ParseLength 解析 "2.625"、"0.5in"、"66.7mm" 等写法。
func ParseLength(value string) (Length, error) {
	l, err := layout.ParseLength(value, layout.UnitIN)
	if err != nil {
		return Length{}, err
	}
	return Length{l}, nil
}

// UnmarshalYAML 同时接受数字与带单位的字符串。
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseLength(node.Value)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", node.Line, err)
	}
	*l = parsed
	return nil
}

// MarshalYAML 按原单位写回。
func (l Length) MarshalYAML() (any, error) { return l.String(), nil }

// YesNo 是 yes/no 开关，也接受 true/false。
type YesNo bool

// ParseYesNo 解析开关值，大小写不敏感。
func ParseYesNo(value string) (YesNo, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "on", "1":
		return true, nil
	case "no", "false", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("无法解析开关值 %q，应为 yes 或 no", value)
	}
}

// UnmarshalYAML 解析 yes/no 与布尔字面量。
func (y *YesNo) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseYesNo(node.Value)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", node.Line, err)
	}
	*y = v
	return nil
}

// MarshalYAML 写回 yes/no。
func (y YesNo) MarshalYAML() (any, error) {
	if y {
		return "yes", nil
	}
	return "no", nil
}

// PageSize 为页面宽高（mm）。
type PageSize struct {
	Width  float64
	Height float64
}

// 支持的页面预设。
var pageSizes = map[string]PageSize{
	"letter": {Width: 8.5 * layout.InToMm, Height: 11 * layout.InToMm},
	"a4":     {Width: 210, Height: 297},
}

// LookupPage 返回页面预设，空名称表示 letter。
func LookupPage(name string) (PageSize, bool) {
	if name == "" {
		name = "letter"
	}
	p, ok := pageSizes[strings.ToLower(name)]
	return p, ok
}
