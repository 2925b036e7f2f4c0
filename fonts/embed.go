package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10boldoblique"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"

	"github.com/ByLCY/labelsheet/layout"
)

// 内置字体名。
const (
	Roman = "Roman"
	Sans  = "Sans"
)

// 以文件形式提供的字体名，文件位于字体目录下。
var fileFaces = []string{"Garamond", "Arial"}

type variants struct {
	regular, bold, italic, boldItalic []byte
}

func (v variants) pick(font layout.FontRef) []byte {
	switch {
	case font.Bold && font.Italic:
		return v.boldItalic
	case font.Bold:
		return v.bold
	case font.Italic:
		return v.italic
	default:
		return v.regular
	}
}

var builtin = map[string]variants{
	Roman: {lmroman10regular.TTF, lmroman10bold.TTF, lmroman10italic.TTF, lmroman10bolditalic.TTF},
	Sans:  {lmsans10regular.TTF, lmsans10bold.TTF, lmsans10oblique.TTF, lmsans10boldoblique.TTF},
}

// Library 按字体名与变体返回字体数据：先查内置字体，再查字体目录。
type Library struct {
	dir string
}

// NewLibrary 创建字体库，dir 为空时只提供内置字体。
func NewLibrary(dir string) *Library { return &Library{dir: dir} }

// Faces 返回全部可识别的字体名。
func Faces() []string {
	return append([]string{Roman, Sans}, fileFaces...)
}

// Known 判断字体名是否可识别（大小写不敏感），返回规范写法。
func Known(face string) (string, bool) {
	for _, name := range Faces() {
		if strings.EqualFold(name, face) {
			return name, true
		}
	}
	return "", false
}

// FileName 返回字体变体对应的文件名，例如 font_garamond_bi.ttf。
func FileName(font layout.FontRef) string {
	ref := font
	ref.Face = strings.ToLower(font.Face)
	return "font_" + ref.Name() + ".ttf"
}

// Load 返回字体变体的字节数据。未知字体返回包装了 layout.ErrUnknownFont 的错误。
func (l *Library) Load(font layout.FontRef) ([]byte, error) {
	face, ok := Known(font.Face)
	if !ok {
		return nil, fmt.Errorf("%w: %q（可用字体：%s）", layout.ErrUnknownFont, font.Face, strings.Join(Faces(), ", "))
	}
	if v, ok := builtin[face]; ok {
		return v.pick(font), nil
	}
	if l == nil || l.dir == "" {
		return nil, fmt.Errorf("%w: %s 需要字体目录", layout.ErrUnknownFont, face)
	}
	font.Face = face
	path := filepath.Join(l.dir, FileName(font))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: 找不到字体文件 %s", layout.ErrUnknownFont, path)
		}
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
