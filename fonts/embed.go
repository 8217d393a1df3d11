// Package fonts 提供随库内置的字体程序字节。
// 内置字体来自 golang.org/x/image 的 Go 字体家族，仅覆盖拉丁文，
// 作为解析链第一步与最终兜底（无 CJK 字形的降级字体）。
package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 字重键与 font 包的 Weight 字符串保持一致，避免反向依赖。
const (
	WeightRegular = "regular"
	WeightBold    = "bold"
)

// Load 返回内置字体的字节数据。任何 family 都映射到 Go 字体：
// 内置资产只承诺拉丁覆盖，具体 family 的 CJK 程序走解析链后续步骤。
func Load(family, weight string) ([]byte, error) {
	_ = family
	switch weight {
	case WeightBold:
		return gobold.TTF, nil
	case WeightRegular, "":
		return goregular.TTF, nil
	default:
		return nil, fmt.Errorf("未知的字重 %q", weight)
	}
}

// Fallback 返回终端兜底字体（Go Regular），该调用永不失败。
func Fallback() []byte {
	return goregular.TTF
}
