package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/labelsheet/dsl"
	"github.com/ByLCY/labelsheet/layout"
)

// 内容文件中的主节与键。
const (
	MainSection  = "main settings"
	keyLabelType = "label-type-to-use"
	keyLayout    = "layout"
)

// LoadINI 读取内容与版式两个 INI 文件并合并为 Settings。
// 合并顺序为 [main settings] → [<标签类型>] → 版式文件中的 [<layout>]，后者覆盖前者。
func LoadINI(contentPath, layoutPath string) (*Settings, error) {
	content, err := parseINIFile(contentPath)
	if err != nil {
		return nil, err
	}
	layoutDoc, err := parseINIFile(layoutPath)
	if err != nil {
		return nil, err
	}
	s, err := FromINI(content, layoutDoc)
	if err != nil {
		return nil, err
	}
	s.BaseDir = filepath.Dir(contentPath)
	return s, nil
}

func parseINIFile(path string) (*dsl.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	defer file.Close()
	doc, err := dsl.ParseINI(file)
	if err != nil {
		return nil, &layout.ConfigError{Message: fmt.Sprintf("解析 %s 失败", path), Cause: err}
	}
	return doc, nil
}

// merged 保持首次出现的键顺序，后写入的值覆盖先前的值。
type merged struct {
	keys   []string
	values map[string]string
}

func (m *merged) update(sec *dsl.Section) {
	for _, k := range sec.Keys {
		if _, ok := m.values[k]; !ok {
			m.keys = append(m.keys, k)
		}
		m.values[k] = sec.Values[k]
	}
}

func (m *merged) get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *merged) require(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", &layout.ConfigError{Message: fmt.Sprintf("缺少配置项 %s", key)}
	}
	return v, nil
}

// lines 返回所有以 line 开头的键的值，顺序与出现顺序一致。
func (m *merged) lines() []string {
	var out []string
	for _, k := range m.keys {
		if strings.HasPrefix(k, "line") {
			out = append(out, m.values[k])
		}
	}
	return out
}

// FromINI 从已解析的内容与版式文档构造 Settings 并校验。
func FromINI(content, layoutDoc *dsl.Document) (*Settings, error) {
	mainSec, ok := content.Section(MainSection)
	if !ok {
		return nil, &layout.ConfigError{Message: fmt.Sprintf("内容配置缺少 [%s]", MainSection)}
	}
	spec := &merged{values: map[string]string{}}
	spec.update(mainSec)

	labelType, err := spec.require(keyLabelType)
	if err != nil {
		return nil, err
	}
	labelSec, ok := content.Section(labelType)
	if !ok {
		return nil, &layout.ConfigError{Message: fmt.Sprintf("内容配置中找不到标签类型 [%s]", labelType)}
	}
	spec.update(labelSec)

	layoutName, err := spec.require(keyLayout)
	if err != nil {
		return nil, err
	}
	layoutSec, ok := layoutDoc.Section(layoutName)
	if !ok {
		return nil, &layout.ConfigError{Message: fmt.Sprintf("版式配置中找不到 [%s]", layoutName)}
	}
	spec.update(layoutSec)

	s := &Settings{LabelType: labelType, Lines: spec.lines()}
	p := fieldParser{spec: spec}
	s.Spreadsheet = p.str("spreadsheet")
	s.Sheet = p.optional("sheet")
	s.Output = p.optional("output")
	s.Page = p.optional("page")
	s.FontFace = p.str("font-face")
	s.FontDir = p.optional("font-dir")
	s.FontPadding = p.float("font-padding")
	s.FontNormal = p.float("font-normal")
	s.FontSmall = p.float("font-small")
	s.TrailingEllipsis = p.yesNo("trailing-ellipsis")
	s.OverflowIntoSpaces = p.yesNo("overflow-into-spaces")
	s.Rows = p.int("rows")
	s.Columns = p.int("columns")
	s.LabelHeight = p.length("label-height")
	s.LabelWidth = p.length("label-width")
	s.Padding = p.length("label-internal-padding")
	s.PrintAdjust = p.length("gap-print-error-adjust")
	s.GapX = p.length("gap-x")
	s.GapXMiddle = p.length("gap-x-mid")
	s.GapY = p.length("gap-y")
	if _, ok := spec.get("use-logo"); ok {
		s.UseLogo = p.yesNo("use-logo")
	}
	if s.UseLogo {
		s.LogoWidth = p.length("logo-width")
		s.LogoHeight = p.length("logo-height")
		s.LogoFile = p.optional("logo-file")
	}
	s.Title = p.optional("title")
	s.Author = p.optional("author")
	if p.err != nil {
		return nil, p.err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// fieldParser 记录第一个错误，之后的读取直接返回零值。
type fieldParser struct {
	spec *merged
	err  error
}

func (p *fieldParser) raw(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, err := p.spec.require(key)
	if err != nil {
		p.err = err
		return "", false
	}
	return v, true
}

func (p *fieldParser) fail(key string, err error) {
	p.err = &layout.ConfigError{Message: fmt.Sprintf("配置项 %s 取值无效", key), Cause: err}
}

func (p *fieldParser) str(key string) string {
	v, _ := p.raw(key)
	return v
}

func (p *fieldParser) optional(key string) string {
	v, _ := p.spec.get(key)
	return v
}

func (p *fieldParser) float(key string) float64 {
	v, ok := p.raw(key)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, err)
	}
	return f
}

func (p *fieldParser) int(key string) int {
	v, ok := p.raw(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, err)
	}
	return n
}

func (p *fieldParser) yesNo(key string) YesNo {
	v, ok := p.raw(key)
	if !ok {
		return false
	}
	b, err := ParseYesNo(v)
	if err != nil {
		p.fail(key, err)
	}
	return b
}

func (p *fieldParser) length(key string) Length {
	v, ok := p.raw(key)
	if !ok {
		return Length{}
	}
	l, err := ParseLength(v)
	if err != nil {
		p.fail(key, err)
	}
	return l
}
