package layout

// Config 是布局阶段使用的不可变配置，长度均已换算为毫米，字号为点。
// 由 config 包从配置文件加载并校验后构造，整次运行只读。
type Config struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`

	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	LabelWidth  float64 `json:"labelWidth"`
	LabelHeight float64 `json:"labelHeight"`
	Padding     float64 `json:"padding"`
	GapX        float64 `json:"gapX"`
	GapXMiddle  float64 `json:"gapXMiddle"`
	GapY        float64 `json:"gapY"`
	// PrintAdjust 为打印机校准偏移，统一加到三个间距上。
	PrintAdjust float64 `json:"printAdjust"`

	FontFace       string  `json:"fontFace"`
	FontPadding    float64 `json:"fontPadding"`
	FontSizeNormal float64 `json:"fontSizeNormal"`
	FontSizeSmall  float64 `json:"fontSizeSmall"`

	TrailingEllipsis   bool `json:"trailingEllipsis"`
	OverflowIntoSpaces bool `json:"overflowIntoSpaces"`

	Logo *LogoBox `json:"logo,omitempty"`

	// Lines 为模板每一行的原始 token，空字符串表示空行。
	Lines []string `json:"lines"`
}

// FontSize 返回某个行位使用的字号。
func (c Config) FontSize(spec LineSpec) float64 {
	if spec.Style.Has(StyleSmall) {
		return c.FontSizeSmall
	}
	return c.FontSizeNormal
}

// Gaps 返回加上打印校准偏移之后的间距。
func (c Config) Gaps() (gapX, gapXMiddle, gapY float64) {
	return c.GapX + c.PrintAdjust, c.GapXMiddle + c.PrintAdjust, c.GapY + c.PrintAdjust
}

// TextArea 返回标签内可书写区域的宽高。
func (c Config) TextArea() (width, height float64) {
	width = c.LabelWidth - 2*c.Padding
	height = c.LabelHeight - 2*c.Padding
	if c.Logo != nil {
		width -= c.Logo.Width + c.Padding
	}
	return width, height
}
