package layout

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"
)

// charMeasurer 把每个字符当作 1mm 宽，便于精确控制折行。
type charMeasurer struct {
	ascent, descent float64
	faces           map[string]bool
	widthCalls      atomic.Int64
}

func newCharMeasurer() *charMeasurer {
	return &charMeasurer{ascent: 3, descent: 1, faces: map[string]bool{"Test": true}}
}

func (m *charMeasurer) TextWidth(font FontRef, size float64, text string) (float64, error) {
	m.widthCalls.Add(1)
	if !m.faces[font.Face] {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFont, font.Face)
	}
	return float64(utf8.RuneCountInString(text)), nil
}

func (m *charMeasurer) VerticalMetrics(font FontRef, size float64) (float64, float64, error) {
	if !m.faces[font.Face] {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownFont, font.Face)
	}
	return m.ascent, m.descent, nil
}

func charWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

// testConfig 文本区域宽 10mm、高 18mm；行高 4mm 时最多 4 行。
func testConfig(lines ...string) Config {
	return Config{
		PageWidth:      100,
		PageHeight:     100,
		Rows:           3,
		Columns:        2,
		LabelWidth:     12,
		LabelHeight:    20,
		Padding:        1,
		FontFace:       "Test",
		FontPadding:    1,
		FontSizeNormal: 10,
		FontSizeSmall:  8,
		Lines:          lines,
	}
}
