package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ByLCY/labelsheet/fonts"
	"github.com/ByLCY/labelsheet/layout"
)

// 默认值。
const (
	DefaultOutputPattern = "${spreadsheet-stem}_OUTPUT_${label-type}.pdf"
	DefaultLogoFile      = "logo.png"
)

// Settings 是合并后的全部配置：标签类型、数据表、字体、网格几何与模板行。
// 可以来自两个 INI 文件，也可以来自单个 YAML 文件。
type Settings struct {
	LabelType   string `yaml:"label-type" validate:"required"`
	Spreadsheet string `yaml:"spreadsheet" validate:"required"`
	Sheet       string `yaml:"sheet,omitempty"`
	Output      string `yaml:"output,omitempty"`
	Page        string `yaml:"page,omitempty" validate:"omitempty,oneof=letter a4"`

	FontFace    string  `yaml:"font-face" validate:"required"`
	FontDir     string  `yaml:"font-dir,omitempty"`
	FontPadding float64 `yaml:"font-padding" validate:"gt=0"`
	FontNormal  float64 `yaml:"font-normal" validate:"gt=0"`
	FontSmall   float64 `yaml:"font-small" validate:"gt=0"`

	TrailingEllipsis   YesNo `yaml:"trailing-ellipsis"`
	OverflowIntoSpaces YesNo `yaml:"overflow-into-spaces"`

	Rows        int    `yaml:"rows" validate:"gte=1"`
	Columns     int    `yaml:"columns" validate:"gte=1"`
	LabelHeight Length `yaml:"label-height"`
	LabelWidth  Length `yaml:"label-width"`
	Padding     Length `yaml:"label-internal-padding"`
	PrintAdjust Length `yaml:"gap-print-error-adjust"`
	GapX        Length `yaml:"gap-x"`
	GapXMiddle  Length `yaml:"gap-x-mid"`
	GapY        Length `yaml:"gap-y"`

	UseLogo    YesNo  `yaml:"use-logo"`
	LogoWidth  Length `yaml:"logo-width"`
	LogoHeight Length `yaml:"logo-height"`
	LogoFile   string `yaml:"logo-file,omitempty"`

	Title  string `yaml:"title,omitempty"`
	Author string `yaml:"author,omitempty"`

	// Lines 为模板行 token，按顺序对应行位，空字符串为空行。
	Lines []string `yaml:"lines" validate:"required,min=1"`

	// BaseDir 用于解析相对路径，通常为配置文件所在目录。
	BaseDir string `yaml:"-"`
}

var validate = validator.New()

// Validate 校验字段取值与字段间约束，失败时返回 *layout.ConfigError。
func (s *Settings) Validate() error {
	if s == nil {
		return &layout.ConfigError{Message: "配置为空"}
	}
	s.Page = strings.ToLower(strings.TrimSpace(s.Page))
	if err := validate.Struct(s); err != nil {
		return &layout.ConfigError{Message: describeValidation(err), Cause: err}
	}
	face, ok := fonts.Known(s.FontFace)
	if !ok {
		return &layout.ConfigError{
			Message: fmt.Sprintf("字体 %q 不可用，可用字体：%s", s.FontFace, strings.Join(fonts.Faces(), ", ")),
			Cause:   layout.ErrUnknownFont,
		}
	}
	s.FontFace = face

	if s.LabelWidth.ToMM() <= 0 || s.LabelHeight.ToMM() <= 0 {
		return &layout.ConfigError{Message: "label-width 与 label-height 必须为正数", Cause: layout.ErrInvalidGeometry}
	}
	if s.Padding.ToMM() < 0 {
		return &layout.ConfigError{Message: "label-internal-padding 不能为负数", Cause: layout.ErrInvalidGeometry}
	}
	if s.UseLogo && (s.LogoWidth.ToMM() <= 0 || s.LogoHeight.ToMM() <= 0) {
		return &layout.ConfigError{Message: "启用 logo 时 logo-width 与 logo-height 必须为正数", Cause: layout.ErrInvalidGeometry}
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s 不满足 %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s 不满足 %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// Resolve 将相对路径按 BaseDir 展开。
func (s *Settings) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.BaseDir == "" {
		return path
	}
	return filepath.Join(s.BaseDir, path)
}

// SpreadsheetPath 返回数据文件的完整路径。
func (s *Settings) SpreadsheetPath() string { return s.Resolve(s.Spreadsheet) }

// LogoPath 返回 logo 文件的完整路径。
func (s *Settings) LogoPath() string {
	if s.LogoFile == "" {
		return s.Resolve(DefaultLogoFile)
	}
	return s.Resolve(s.LogoFile)
}

// FontDirPath 返回字体目录；未配置时使用 BaseDir。
func (s *Settings) FontDirPath() string {
	if s.FontDir == "" {
		return s.BaseDir
	}
	return s.Resolve(s.FontDir)
}

// OutputPattern 返回输出文件名模板。
func (s *Settings) OutputPattern() string {
	if s.Output == "" {
		return DefaultOutputPattern
	}
	return s.Output
}

// OutputVars 返回输出文件名模板可用的变量。
func (s *Settings) OutputVars() map[string]string {
	stem := strings.TrimSuffix(s.Spreadsheet, filepath.Ext(s.Spreadsheet))
	return map[string]string{
		"spreadsheet":      s.Spreadsheet,
		"spreadsheet-stem": stem,
		"spreadsheet-name": filepath.Base(stem),
		"label-type":       s.LabelType,
		"page":             s.pageName(),
	}
}

func (s *Settings) pageName() string {
	if s.Page == "" {
		return "letter"
	}
	return s.Page
}

// ToLayout 将配置换算为布局阶段使用的毫米值。须先调用 Validate。
func (s *Settings) ToLayout() (layout.Config, error) {
	page, ok := LookupPage(s.Page)
	if !ok {
		return layout.Config{}, &layout.ConfigError{Message: fmt.Sprintf("未知的页面尺寸 %q", s.Page)}
	}
	cfg := layout.Config{
		PageWidth:          page.Width,
		PageHeight:         page.Height,
		Rows:               s.Rows,
		Columns:            s.Columns,
		LabelWidth:         s.LabelWidth.ToMM(),
		LabelHeight:        s.LabelHeight.ToMM(),
		Padding:            s.Padding.ToMM(),
		GapX:               s.GapX.ToMM(),
		GapXMiddle:         s.GapXMiddle.ToMM(),
		GapY:               s.GapY.ToMM(),
		PrintAdjust:        s.PrintAdjust.ToMM(),
		FontFace:           s.FontFace,
		FontPadding:        s.FontPadding,
		FontSizeNormal:     s.FontNormal,
		FontSizeSmall:      s.FontSmall,
		TrailingEllipsis:   bool(s.TrailingEllipsis),
		OverflowIntoSpaces: bool(s.OverflowIntoSpaces),
		Lines:              append([]string(nil), s.Lines...),
	}
	if s.UseLogo {
		cfg.Logo = &layout.LogoBox{
			Path:   s.LogoPath(),
			Width:  s.LogoWidth.ToMM(),
			Height: s.LogoHeight.ToMM(),
		}
	}
	return cfg, nil
}
