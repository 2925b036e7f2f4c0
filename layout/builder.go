package layout

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Setup 是校验通过后的运行级只读数据：模板与容量。
type Setup struct {
	Template Template `json:"template"`
	Capacity Capacity `json:"capacity"`
}

// Prepare 完成全部校验：网格、模板列号、字体以及容量。
// 任何错误都发生在处理标签之前。
func Prepare(cfg Config, columnCount int, m Measurer) (*Setup, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少字体度量后端 Measurer")
	}
	if cfg.Rows < 1 || cfg.Columns < 1 {
		return nil, configErrorf(ErrInvalidGeometry, "网格为 %d 行 × %d 列", cfg.Rows, cfg.Columns)
	}
	if cfg.LabelWidth <= 0 || cfg.LabelHeight <= 0 || cfg.PageWidth <= 0 || cfg.PageHeight <= 0 {
		return nil, configErrorf(ErrInvalidGeometry, "标签或页面尺寸必须为正数")
	}

	tmpl, err := ParseTemplate(cfg.Lines, columnCount)
	if err != nil {
		return nil, err
	}
	capacity, err := ComputeCapacity(m, cfg)
	if err != nil {
		return nil, err
	}
	// 模板用到的每个字体变体都需要能加载
	seen := map[FontRef]bool{}
	for _, spec := range tmpl {
		if spec.Blank() {
			continue
		}
		font := spec.Font(cfg.FontFace)
		if seen[font] {
			continue
		}
		seen[font] = true
		if _, _, err := m.VerticalMetrics(font, cfg.FontSize(spec)); err != nil {
			return nil, configErrorf(err, "无法加载字体 %s", font.Name())
		}
	}
	if err := capacity.Check(len(tmpl)); err != nil {
		return nil, err
	}
	return &Setup{Template: tmpl, Capacity: capacity}, nil
}

// Build 根据配置与数据表生成全部页面：校验 → 折行 → 溢出解析 → 网格定位。
func Build(cfg Config, records [][]string, columnCount int, opts BuildOptions) (*Result, error) {
	setup, err := Prepare(cfg, columnCount, opts.Measurer)
	if err != nil {
		return nil, err
	}
	plans, err := resolveAll(cfg, setup, records, opts)
	if err != nil {
		return nil, err
	}

	grid := Grid{Rows: cfg.Rows, Columns: cfg.Columns}
	pages := make([]Page, grid.Pages(len(records)))
	for i := range pages {
		pages[i] = Page{Width: cfg.PageWidth, Height: cfg.PageHeight}
	}
	for idx, slot := range grid.Slots(len(records)) {
		origin := Origins(cfg, slot)
		baselines := make([]float64, len(setup.Template))
		for line := range baselines {
			baselines[line] = origin.TextY - setup.Capacity.Ascent - float64(line)*setup.Capacity.Advance
		}
		pages[slot.Page].Labels = append(pages[slot.Page].Labels, Label{
			Index:     idx,
			Slot:      slot,
			TextX:     origin.TextX,
			TextY:     origin.TextY,
			Baselines: baselines,
			LogoX:     origin.LogoX,
			LogoY:     origin.LogoY,
			Plan:      plans[idx],
		})
	}

	return &Result{
		Pages:       pages,
		Logo:        cfg.Logo,
		Meta:        opts.Meta,
		LineAdvance: setup.Capacity.Advance,
		TextWidth:   setup.Capacity.TextMaxWidth,
	}, nil
}

// resolveAll 并行处理各标签。每个 goroutine 只写入自己下标的结果，无需加锁。
func resolveAll(cfg Config, setup *Setup, records [][]string, opts BuildOptions) ([]RenderPlan, error) {
	plans := make([]RenderPlan, len(records))
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for idx, record := range records {
		g.Go(func() error {
			wrapped, err := wrapRecord(cfg, setup, record, opts.Measurer)
			if err != nil {
				return fmt.Errorf("第 %d 条记录折行失败: %w", idx+1, err)
			}
			plan, err := Resolve(cfg, setup.Template, wrapped)
			if err != nil {
				return fmt.Errorf("第 %d 条记录: %w", idx+1, err)
			}
			plans[idx] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

func wrapRecord(cfg Config, setup *Setup, record []string, m Measurer) ([][]string, error) {
	wrapped := make([][]string, len(setup.Template))
	for i, spec := range setup.Template {
		if spec.Blank() {
			continue
		}
		lines, err := WrapText(m, spec.Font(cfg.FontFace), cfg.FontSize(spec), setup.Capacity.TextMaxWidth, cell(record, spec.Column))
		if err != nil {
			return nil, err
		}
		wrapped[i] = lines
	}
	return wrapped, nil
}

// cell 按 1 起始的列号取值，缺失单元格视为空字符串。
func cell(record []string, column int) string {
	if column < 1 || column > len(record) {
		return ""
	}
	return record[column-1]
}
