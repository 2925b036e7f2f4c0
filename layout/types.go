package layout

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。
// 坐标与尺寸均为毫米（mm），坐标原点位于页面左下角；字号为点（pt）。

// Result 保存布局后的页面与资源信息。
type Result struct {
	Pages []Page       `json:"pages"`
	Logo  *LogoBox     `json:"logo,omitempty"`
	Meta  DocumentMeta `json:"meta"`
	// LineAdvance 为相邻行基线之间的距离（行高 × font-padding）。
	LineAdvance float64 `json:"lineAdvance"`
	// TextWidth 为标签内文本区域的最大宽度，右对齐以此为参照。
	TextWidth float64 `json:"textWidth"`
}

// FontRef 指向一个字体变体；Face 为配置中的字体名。
type FontRef struct {
	Face   string `json:"face"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Name 返回变体名，例如 Garamond_bi，与字体文件的命名一致。
func (f FontRef) Name() string {
	switch {
	case f.Bold && f.Italic:
		return f.Face + "_bi"
	case f.Bold:
		return f.Face + "_b"
	case f.Italic:
		return f.Face + "_i"
	default:
		return f.Face
	}
}

// SlotText 是某个行位最终要绘制的文本。
type SlotText struct {
	Text       string  `json:"text"`
	Font       FontRef `json:"font"`
	Size       float64 `json:"size"`
	Underline  bool    `json:"underline,omitempty"`
	RightAlign bool    `json:"rightAlign,omitempty"`
}

// RenderPlan 与模板等长；nil 表示该行位为空。
type RenderPlan []*SlotText

// Texts 返回每个行位的文本，空行位为 ""，便于测试与调试。
func (p RenderPlan) Texts() []string {
	out := make([]string, len(p))
	for i, s := range p {
		if s != nil {
			out[i] = s.Text
		}
	}
	return out
}

// LabelSlot 是标签在网格中的位置。
type LabelSlot struct {
	Page   int `json:"page"`
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Label 汇总一张标签的位置与行位内容。
type Label struct {
	Index int       `json:"index"`
	Slot  LabelSlot `json:"slot"`
	// TextX/TextY 为文本区域左上角（已翻转到左下角原点坐标系）。
	TextX float64 `json:"textX"`
	TextY float64 `json:"textY"`
	// Baselines 为每个行位的基线 Y 坐标。
	Baselines []float64 `json:"baselines"`
	// LogoX/LogoY 为 logo 左下角坐标，未启用 logo 时为 0。
	LogoX float64    `json:"logoX,omitempty"`
	LogoY float64    `json:"logoY,omitempty"`
	Plan  RenderPlan `json:"plan"`
}

// Page 记录页面尺寸以及页面上的标签。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Labels []Label `json:"labels"`
}

// LogoBox 描述每张标签上重复绘制的 logo。
type LogoBox struct {
	Path   string  `json:"path"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
