package renderer

import "github.com/ByLCY/labelsheet/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// MeasuringRenderer 同时提供渲染与字体度量，保证折行与绘制使用同一套字体。
type MeasuringRenderer interface {
	Renderer
	layout.Measurer
}
