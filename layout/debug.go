package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteDebugJSON 把布局结果以缩进 JSON 写出，用于排查分页与坐标问题。
func WriteDebugJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("写出调试 JSON 失败: %w", err)
	}
	return nil
}

// DumpDebugJSON 把布局结果写入指定路径的文件。
func DumpDebugJSON(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建调试文件失败: %w", err)
	}
	defer f.Close()
	return WriteDebugJSON(f, res)
}
