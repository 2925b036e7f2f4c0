package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/labelsheet/dsl"
)

// StyleFlags 是单行样式的位集合，在模板解析时一次性确定。
type StyleFlags uint8

const (
	StyleBold StyleFlags = 1 << iota
	StyleItalic
	StyleSmall
	StyleUnderline
	StyleRight
)

var flagRunes = map[string]StyleFlags{
	"b": StyleBold,
	"i": StyleItalic,
	"s": StyleSmall,
	"u": StyleUnderline,
	"r": StyleRight,
}

// Has reports whether every bit of x is set.
func (f StyleFlags) Has(x StyleFlags) bool { return f&x == x }

func (f StyleFlags) String() string {
	var b strings.Builder
	for _, r := range dsl.FlagAlphabet {
		if f.Has(flagRunes[string(r)]) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LineSpec 描述模板中的一个行位：绑定的数据列（1 起始，0 表示空行）与样式。
type LineSpec struct {
	Slot   int        `json:"slot"`
	Column int        `json:"column"`
	Style  StyleFlags `json:"style"`
	// Ignored 记录分隔符之后出现的列号；这些列只做范围校验，不参与绑定。
	Ignored []int  `json:"ignored,omitempty"`
	Raw     string `json:"raw"`
}

// Blank 表示该行位没有绑定列，可接收上方行的溢出文本。
func (l LineSpec) Blank() bool { return l.Column == 0 }

// Font 根据样式选出字体变体。
func (l LineSpec) Font(face string) FontRef {
	return FontRef{Face: face, Bold: l.Style.Has(StyleBold), Italic: l.Style.Has(StyleItalic)}
}

// Template 是整次运行共享的行位定义，按行位顺序排列。
type Template []LineSpec

// Bound 返回绑定了列的行位数量。
func (t Template) Bound() int {
	n := 0
	for _, l := range t {
		if !l.Blank() {
			n++
		}
	}
	return n
}

// ParseTemplate 解析并校验每一行的 token，columnCount 为数据表的列数。
func ParseTemplate(tokens []string, columnCount int) (Template, error) {
	if len(tokens) == 0 {
		return nil, configErrorf(nil, "模板中没有任何行")
	}
	tmpl := make(Template, 0, len(tokens))
	for i, raw := range tokens {
		spec, err := parseLineSpec(i, raw, columnCount)
		if err != nil {
			return nil, err
		}
		tmpl = append(tmpl, spec)
	}
	if tmpl.Bound() == 0 {
		return nil, configErrorf(nil, "模板中所有行均为空行")
	}
	return tmpl, nil
}

func parseLineSpec(slot int, raw string, columnCount int) (LineSpec, error) {
	spec := LineSpec{Slot: slot, Raw: strings.TrimSpace(raw)}
	tok, err := dsl.ParseLineToken(raw)
	if err != nil {
		var charErr *dsl.InvalidCharError
		var sepErr *dsl.SeparatorError
		switch {
		case errors.As(err, &charErr):
			return spec, configErrorf(fmt.Errorf("%w: %w", ErrInvalidFlag, err), "第 %d 行", slot+1)
		case errors.As(err, &sepErr):
			return spec, configErrorf(fmt.Errorf("%w: %w", ErrTooManySeparator, err), "第 %d 行", slot+1)
		default:
			return spec, configErrorf(err, "第 %d 行无法解析", slot+1)
		}
	}
	if tok == nil {
		return spec, nil
	}

	for _, col := range tok.Columns() {
		if col < 1 || col > columnCount {
			return spec, configErrorf(ErrColumnRange, "第 %d 行引用了第 %d 列，数据只有 %d 列", slot+1, col, columnCount)
		}
	}
	spec.Column = int(tok.Column)
	for _, f := range tok.Flags {
		spec.Style |= flagRunes[f]
	}
	for _, seg := range tok.Tail {
		if seg.Column != nil {
			spec.Ignored = append(spec.Ignored, int(*seg.Column))
		}
	}
	return spec, nil
}
