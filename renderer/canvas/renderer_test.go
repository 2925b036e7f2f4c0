package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/labelsheet/fonts"
	"github.com/ByLCY/labelsheet/layout"
)

func newTestRenderer() *Renderer { return NewRenderer(fonts.NewLibrary("")) }

func sheetConfig() layout.Config {
	return layout.Config{
		PageWidth:          215.9,
		PageHeight:         279.4,
		Rows:               7,
		Columns:            3,
		LabelWidth:         66.7,
		LabelHeight:        38.1,
		Padding:            2,
		GapX:               4.8,
		GapXMiddle:         3.2,
		GapY:               12.7,
		FontFace:           fonts.Roman,
		FontPadding:        1.1,
		FontSizeNormal:     10,
		FontSizeSmall:      8,
		TrailingEllipsis:   true,
		OverflowIntoSpaces: true,
		Lines:              []string{"1b", "", "2s", "3r"},
	}
}

func TestTextWidthGrowsWithContent(t *testing.T) {
	r := newTestRenderer()
	font := layout.FontRef{Face: fonts.Roman}

	short, err := r.TextWidth(font, 10, "hello")
	require.NoError(t, err)
	long, err := r.TextWidth(font, 10, "hello world")
	require.NoError(t, err)
	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)

	// 字号翻倍，宽度随之放大
	double, err := r.TextWidth(font, 20, "hello")
	require.NoError(t, err)
	assert.Greater(t, double, short*1.5)
}

func TestVerticalMetricsInMillimetres(t *testing.T) {
	r := newTestRenderer()
	ascent, descent, err := r.VerticalMetrics(layout.FontRef{Face: fonts.Sans, Bold: true}, 10)
	require.NoError(t, err)
	// 10pt ≈ 3.53mm，上升高度应在合理范围内
	assert.Greater(t, ascent, 0.0)
	assert.LessOrEqual(t, ascent, 10*layout.PtToMm*1.5)
	assert.Greater(t, ascent+descent, 0.0)
}

func TestUnknownFontFails(t *testing.T) {
	r := newTestRenderer()
	_, err := r.TextWidth(layout.FontRef{Face: "Papyrus"}, 10, "x")
	assert.ErrorIs(t, err, layout.ErrUnknownFont)

	_, err = layout.Prepare(layout.Config{
		PageWidth: 100, PageHeight: 100, Rows: 1, Columns: 1,
		LabelWidth: 50, LabelHeight: 20, FontFace: "Papyrus", FontPadding: 1, FontSizeNormal: 10,
		Lines: []string{"1"},
	}, 1, r)
	assert.ErrorIs(t, err, layout.ErrUnknownFont)
}

func TestConcurrentMeasuring(t *testing.T) {
	r := newTestRenderer()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			font := layout.FontRef{Face: fonts.Roman, Bold: i%2 == 0, Italic: i%3 == 0}
			_, err := r.TextWidth(font, 10, "concurrent text")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}

func buildRecords(n int) [][]string {
	records := make([][]string, n)
	for i := range records {
		records[i] = []string{
			"A rather long title that will certainly wrap onto the blank line below it",
			"Shelf 12",
			`"quoted"`,
		}
	}
	return records
}

func TestRenderProducesPDF(t *testing.T) {
	r := newTestRenderer()
	res, err := layout.Build(sheetConfig(), buildRecords(31), 3, layout.BuildOptions{
		Measurer: r,
		Meta:     layout.DocumentMeta{Title: "labels", Subject: "test"},
	})
	require.NoError(t, err)
	// 每页 21 张，31 张占 2 页
	require.Len(t, res.Pages, 2)

	data, err := r.Render(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w && x < h; x++ {
		img.Set(x, x, color.Black)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRenderWithLogo(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	writePNG(t, logoPath, 40, 40)

	r := newTestRenderer()
	cfg := sheetConfig()
	cfg.Logo = &layout.LogoBox{Path: logoPath, Width: 15, Height: 15}
	res, err := layout.Build(cfg, buildRecords(2), 3, layout.BuildOptions{Measurer: r})
	require.NoError(t, err)
	_, err = r.Render(res)
	require.NoError(t, err)

	cfg.Logo.Path = filepath.Join(dir, "missing.png")
	res, err = layout.Build(cfg, buildRecords(1), 3, layout.BuildOptions{Measurer: r})
	require.NoError(t, err)
	_, err = r.Render(res)
	assert.Error(t, err)
}

func TestLogoFillsConfiguredBox(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		box  layout.LogoBox
	}{
		{"square image into wide box", 100, 100, layout.LogoBox{Width: 10, Height: 5}},
		{"tall image into square box", 40, 120, layout.LogoBox{Width: 12, Height: 12}},
		{"wide image into tall box", 300, 50, layout.LogoBox{Width: 8, Height: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dpmm, scaleY := logoScale(&tc.box, image.Rect(0, 0, tc.w, tc.h))
			drawnW := float64(tc.w) / dpmm
			drawnH := float64(tc.h) / dpmm * scaleY
			assert.InDelta(t, tc.box.Width, drawnW, 1e-9)
			assert.InDelta(t, tc.box.Height, drawnH, 1e-9)
		})
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := newTestRenderer()
	_, err := r.Render(nil)
	assert.Error(t, err)
	_, err = r.Render(&layout.Result{})
	assert.Error(t, err)
}
