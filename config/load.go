package config

import (
	"path/filepath"
	"strings"
)

// Paths 指定配置来源：YAML 单文件优先，否则使用内容与版式两个 INI 文件。
type Paths struct {
	Content string
	Layout  string
	YAML    string
}

// Load 按 Paths 选择加载方式。
func Load(p Paths) (*Settings, error) {
	if p.YAML != "" {
		return LoadYAML(p.YAML)
	}
	switch strings.ToLower(filepath.Ext(p.Content)) {
	case ".yaml", ".yml":
		return LoadYAML(p.Content)
	}
	return LoadINI(p.Content, p.Layout)
}
