// Package font 负责把 (family, weight, script) 请求解析为可用的字体程序。
// 解析链：内置资产 → 系统探测 → 远程获取 → 降级内置字体；链条保证总是成功，
// 前三步的失败一律按"不可用"处理、不向外传播。
package font

import (
	"fmt"

	sfnt "github.com/tdewolff/font"
)

// Weight 是请求的字重，统一应用于整串文本。
type Weight string

const (
	Regular Weight = "regular"
	Bold    Weight = "bold"
)

// Request 描述一次字体解析请求。
type Request struct {
	Family string
	Weight Weight
	// NeedsCJK 为 true 时内置拉丁资产不满足覆盖，解析链进入 CJK 步骤。
	NeedsCJK bool
	// Subset 可选：请求子集感知解析时的字符集合，仅影响缓存键。
	Subset string
}

// Key 返回该请求的缓存键。
func (r Request) Key() string {
	return CacheKey(r.Family, r.Weight, r.Subset)
}

// Resolved 是解析结果：字体程序字节与其覆盖说明。
type Resolved struct {
	Data []byte
	// CJKCoverage 表示该字体程序可以覆盖 CJK 文种。
	CJKCoverage bool
	// Source 记录命中的链条步骤：bundled / cache / system / remote / fallback。
	Source string
}

// validate 用 SFNT 解析器确认字节确实是可用的字体程序（支持 ttf/otf/ttc/woff）。
func validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("字体数据为空")
	}
	if _, err := sfnt.ParseFont(data, 0); err != nil {
		return fmt.Errorf("字体程序解析失败: %w", err)
	}
	return nil
}
