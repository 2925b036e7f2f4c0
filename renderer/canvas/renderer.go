package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/labelsheet/layout"
	"github.com/ByLCY/labelsheet/renderer"
)

var textColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// FontSource 按字体变体提供字体数据，fonts.Library 即为一种实现。
type FontSource interface {
	Load(font layout.FontRef) ([]byte, error)
}

// Renderer draws label sheets via github.com/tdewolff/canvas and
// measures text with the same fonts.
type Renderer struct {
	fonts FontSource

	// canvas 的字体对象不保证并发安全，度量与加载统一加锁
	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
	loaded   map[layout.FontRef]bool
	faces    map[faceKey]*canvas.FontFace
}

var (
	_ renderer.Renderer          = (*Renderer)(nil)
	_ renderer.MeasuringRenderer = (*Renderer)(nil)
	_ layout.Measurer            = (*Renderer)(nil)
)

type faceKey struct {
	font      layout.FontRef
	size      float64
	underline bool
}

// NewRenderer creates a renderer that loads fonts from src.
func NewRenderer(src FontSource) *Renderer {
	return &Renderer{
		fonts:    src,
		families: map[string]*canvas.FontFamily{},
		loaded:   map[layout.FontRef]bool{},
		faces:    map[faceKey]*canvas.FontFace{},
	}
}

// TextWidth 实现 layout.Measurer：size 为 pt，返回值为 mm。
func (r *Renderer) TextWidth(font layout.FontRef, size float64, text string) (float64, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	face, err := r.faceLocked(font, size, false)
	if err != nil {
		return 0, err
	}
	return face.TextWidth(text), nil
}

// VerticalMetrics 实现 layout.Measurer，返回 mm 单位的上升与下降高度。
func (r *Renderer) VerticalMetrics(font layout.FontRef, size float64) (float64, float64, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	face, err := r.faceLocked(font, size, false)
	if err != nil {
		return 0, 0, err
	}
	m := face.Metrics()
	return m.Ascent, m.Descent, nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var logo image.Image
	if result.Logo != nil {
		img, err := loadImage(result.Logo.Path)
		if err != nil {
			return nil, err
		}
		logo = img
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		// 布局坐标已以左下角为原点，沿用默认坐标系
		for _, label := range page.Labels {
			if logo != nil {
				drawLogo(ctx, label, result.Logo, logo)
			}
			if err := r.drawLabel(ctx, label, result.TextWidth); err != nil {
				return nil, fmt.Errorf("绘制第 %d 张标签失败: %w", label.Index+1, err)
			}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawLabel(ctx *canvas.Context, label layout.Label, textWidth float64) error {
	for slot, st := range label.Plan {
		if st == nil || st.Text == "" {
			continue
		}
		if slot >= len(label.Baselines) {
			return fmt.Errorf("行位 %d 缺少基线", slot+1)
		}
		r.fontMu.Lock()
		face, err := r.faceLocked(st.Font, st.Size, st.Underline)
		if err != nil {
			r.fontMu.Unlock()
			return err
		}
		x, align := label.TextX, canvas.Left
		if st.RightAlign {
			x, align = label.TextX+textWidth, canvas.Right
		}
		ctx.DrawText(x, label.Baselines[slot], canvas.NewTextLine(face, st.Text, align))
		r.fontMu.Unlock()
	}
	return nil
}

func drawLogo(ctx *canvas.Context, label layout.Label, box *layout.LogoBox, img image.Image) {
	dpmm, scaleY := logoScale(box, img.Bounds())
	ctx.Push()
	ctx.ComposeView(canvas.Identity.Translate(label.LogoX, label.LogoY).Scale(1, scaleY))
	ctx.DrawImage(0, 0, img, canvas.DPMM(dpmm))
	ctx.Pop()
}

// logoScale 返回绘制分辨率与纵向缩放，使图片恰好填满 box：
// 宽为 Dx/dpmm = box.Width，高为 Dy/dpmm × scaleY = box.Height。
func logoScale(box *layout.LogoBox, bounds image.Rectangle) (dpmm, scaleY float64) {
	dx, dy := float64(bounds.Dx()), float64(bounds.Dy())
	if dx <= 0 || dy <= 0 || box.Width <= 0 || box.Height <= 0 {
		return 1, 1
	}
	dpmm = dx / box.Width
	scaleY = box.Height * dpmm / dy
	return dpmm, scaleY
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", path, err)
	}
	if img.Bounds().Dx() == 0 {
		return nil, fmt.Errorf("图片 %s 宽度为 0", path)
	}
	return img, nil
}

// faceLocked 调用方须持有 fontMu。
func (r *Renderer) faceLocked(font layout.FontRef, size float64, underline bool) (*canvas.FontFace, error) {
	key := faceKey{font: font, size: size, underline: underline}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	family, err := r.familyLocked(font)
	if err != nil {
		return nil, err
	}
	var face *canvas.FontFace
	if underline {
		face = family.Face(size, textColor, fontStyle(font), canvas.FontNormal, canvas.FontUnderline)
	} else {
		face = family.Face(size, textColor, fontStyle(font), canvas.FontNormal)
	}
	r.faces[key] = face
	return face, nil
}

func (r *Renderer) familyLocked(font layout.FontRef) (*canvas.FontFamily, error) {
	family, ok := r.families[font.Face]
	if !ok {
		family = canvas.NewFontFamily(font.Face)
		r.families[font.Face] = family
	}
	if r.loaded[font] {
		return family, nil
	}
	if r.fonts == nil {
		return nil, fmt.Errorf("%w: 未配置字体来源", layout.ErrUnknownFont)
	}
	data, err := r.fonts.Load(font)
	if err != nil {
		return nil, err
	}
	if err := family.LoadFont(data, 0, fontStyle(font)); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", font.Name(), err)
	}
	r.loaded[font] = true
	return family, nil
}

func fontStyle(font layout.FontRef) canvas.FontStyle {
	style := canvas.FontRegular
	if font.Bold {
		style = canvas.FontBold
	}
	if font.Italic {
		style |= canvas.FontItalic
	}
	return style
}
