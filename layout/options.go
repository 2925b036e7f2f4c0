package layout

// BuildOptions 配置布局阶段所需的依赖，例如字体度量后端。
type BuildOptions struct {
	Measurer Measurer
	// Workers 限制并行解析标签的 goroutine 数量，<=0 时使用 GOMAXPROCS。
	Workers int
	Meta    DocumentMeta
}

// Measurer 负责字体度量；实现必须可并发调用。
// 宽度与上升/下降高度均以毫米返回，size 为点（pt）。
type Measurer interface {
	TextWidth(font FontRef, size float64, text string) (float64, error)
	VerticalMetrics(font FontRef, size float64) (ascent, descent float64, err error)
}
