package layout

// Grid 描述每页 rows × columns 的标签排布。
type Grid struct {
	Rows    int
	Columns int
}

// PerPage 返回每页标签数。
func (g Grid) PerPage() int { return g.Rows * g.Columns }

// Pages 返回容纳 total 张标签所需的页数。
func (g Grid) Pages(total int) int {
	per := g.PerPage()
	if per <= 0 || total <= 0 {
		return 0
	}
	return (total + per - 1) / per
}

// Slot 将顺序编号换算为页、行、列：
// index = page × rows × columns + row × columns + column。
// 网格为空或 index 为负时返回零值。
func (g Grid) Slot(index int) LabelSlot {
	per := g.PerPage()
	if per <= 0 || index < 0 {
		return LabelSlot{}
	}
	within := index % per
	return LabelSlot{
		Page:   index / per,
		Row:    within / g.Columns,
		Column: within % g.Columns,
	}
}

// Slots 按页、行、列的顺序枚举前 total 个位置；最后一页可以不满。
func (g Grid) Slots(total int) []LabelSlot {
	if g.PerPage() <= 0 || total <= 0 {
		return nil
	}
	out := make([]LabelSlot, total)
	for i := range out {
		out[i] = g.Slot(i)
	}
	return out
}

// Origin 是一张标签的文本与 logo 起点，坐标原点在页面左下角。
type Origin struct {
	TextX float64
	TextY float64
	LogoX float64
	LogoY float64
}

// Origins 计算标签的文本区域左上角与 logo 左下角。
// 布局按自上而下推算，最后以页面高度翻转 Y 轴。
func Origins(cfg Config, slot LabelSlot) Origin {
	gapX, gapXMiddle, gapY := cfg.Gaps()
	col := float64(slot.Column)
	row := float64(slot.Row)

	left := gapX + col*cfg.LabelWidth + col*gapXMiddle + cfg.Padding
	top := gapY + row*cfg.LabelHeight + cfg.Padding

	o := Origin{TextX: left, TextY: cfg.PageHeight - top}
	if cfg.Logo != nil {
		o.LogoX = left
		o.LogoY = cfg.PageHeight - (top + cfg.Logo.Height)
		o.TextX += cfg.Logo.Width + cfg.Padding
	}
	return o
}
