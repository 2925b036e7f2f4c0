package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/labelsheet/layout"
)

// LoadYAML 从单个 YAML 文件读取配置，未知字段视为错误。
func LoadYAML(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	s, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	s.BaseDir = filepath.Dir(path)
	return s, nil
}

// ParseYAML 解析并校验 YAML 配置。
func ParseYAML(data []byte) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, &layout.ConfigError{Message: "解析 YAML 配置失败", Cause: err}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ToYAML 将配置写回 YAML，可用于把 INI 配置迁移为单文件。
func (s *Settings) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}
