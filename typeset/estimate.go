package typeset

import "golang.org/x/text/width"

// cjkDigitShrink 压缩混排行中数字串的宽度，抵消数字字形偏宽的观感。
const cjkDigitShrink = 0.95

// estimateWidth 在字体面不可用时按东亚宽度属性估算文本宽度（mm）：
// 宽/全宽码点按一个字号宽，其余按半个字号宽。
func estimateWidth(text string, sizeMM float64) float64 {
	total := 0.0
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += sizeMM
		default:
			total += sizeMM * 0.5
		}
	}
	return total
}
