// Package script 按固定的 Unicode 区块把码点划分到文种桶，
// 并把相邻同文种的码点合并为 run，供测量与换行阶段使用。
package script

// Script 表示一个码点所属的文种桶。
type Script int

const (
	Latin Script = iota
	CJK
	Kana
	Hangul
	Other
)

// String 返回文种桶的可读名称。
func (s Script) String() string {
	switch s {
	case Latin:
		return "latin"
	case CJK:
		return "cjk"
	case Kana:
		return "kana"
	case Hangul:
		return "hangul"
	default:
		return "other"
	}
}

// NeedsCJKCoverage 报告该文种是否要求字体具备 CJK 字形覆盖。
func (s Script) NeedsCJKCoverage() bool {
	return s == CJK || s == Kana || s == Hangul
}

// Run 是一段文种一致的最大子串。
type Run struct {
	Script Script
	Text   string
}

// Classify 按固定区块对单个码点分类：
// CJK 统一表意文字 U+4E00–U+9FFF，平假名 U+3040–U+309F，
// 片假名 U+30A0–U+30FF，谚文音节 U+AC00–U+D7AF；
// 其余 ASCII 可打印范围归 Latin，再往外归 Other。
func Classify(r rune) Script {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF:
		return CJK
	case r >= 0x3040 && r <= 0x309F:
		return Kana
	case r >= 0x30A0 && r <= 0x30FF:
		return Kana
	case r >= 0xAC00 && r <= 0xD7AF:
		return Hangul
	case r < 0x2E80:
		return Latin
	default:
		return Other
	}
}

// Segment 把文本切分为有序的文种 run，相邻同文种码点合并。
// 性质：把所有 run 的 Text 依序拼接可精确还原输入。
func Segment(text string) []Run {
	var runs []Run
	start := 0
	current := Other
	first := true
	for i, r := range text {
		s := Classify(r)
		if first {
			current = s
			first = false
			continue
		}
		if s != current {
			runs = append(runs, Run{Script: current, Text: text[start:i]})
			start = i
			current = s
		}
	}
	if !first {
		runs = append(runs, Run{Script: current, Text: text[start:]})
	}
	return runs
}

// ContainsCJK 报告文本是否含有任意需要 CJK 覆盖的码点。
func ContainsCJK(text string) bool {
	for _, r := range text {
		if Classify(r).NeedsCJKCoverage() {
			return true
		}
	}
	return false
}
