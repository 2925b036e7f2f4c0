package layout

import (
	"errors"
	"fmt"
)

// 配置阶段的致命错误。所有错误都在解析标签之前检出。
var (
	ErrUnknownFont      = errors.New("未知字体")
	ErrInvalidFlag      = errors.New("非法的样式字符")
	ErrTooManySeparator = errors.New("分隔符过多")
	ErrColumnRange      = errors.New("列号超出数据范围")
	ErrTooManyLines     = errors.New("行数超过标签容量")
	ErrInvalidGeometry  = errors.New("标签尺寸无效")
)

// ErrSlotCollision 表示同一行位被两次溢出写入，属于程序契约错误。
var ErrSlotCollision = errors.New("行位被重复写入")

// ConfigError 描述一次配置校验失败。
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("配置错误: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("配置错误: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func configErrorf(cause error, format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...), Cause: cause}
}
