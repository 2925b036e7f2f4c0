package layout

import (
	"encoding/json"
	"os"
)

// DebugDump 汇总运行级数据与布局结果，便于排查溢出与定位问题。
type DebugDump struct {
	Config Config  `json:"config"`
	Setup  *Setup  `json:"setup"`
	Result *Result `json:"result,omitempty"`
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(dump DebugDump, path string) error {
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
