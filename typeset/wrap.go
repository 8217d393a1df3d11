package typeset

import (
	"math"
	"strings"
	"unicode"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/script"
)

// MeasureFunc 返回一段文本的宽度（mm）。
type MeasureFunc func(string) float64

// Wrap 把文本按最大宽度贪心折行。规则：
//   - 显式换行符 "\n" 强制断行（空段产生空行）；
//   - CJK/假名/谚文码点可在任意字符间断开；
//   - 拉丁词保持原子，单词放不下时独占一行、绝不从中间切开；
//   - 任何行都不以空白开头，段落首行与折行后的行左缘一致。
func Wrap(content string, limit float64, measure MeasureFunc) []layout.TextLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	content = strings.ReplaceAll(content, "\r", "")
	var lines []layout.TextLine
	for _, para := range strings.Split(content, "\n") {
		lines = append(lines, wrapParagraph(para, limit, measure)...)
	}
	if len(lines) == 0 {
		lines = []layout.TextLine{{}}
	}
	return lines
}

func wrapParagraph(para string, limit float64, measure MeasureFunc) []layout.TextLine {
	tokens := tokenize(para)
	var lines []layout.TextLine
	var b strings.Builder
	cur := 0.0

	emit := func(force bool) {
		if b.Len() == 0 {
			if force {
				lines = append(lines, layout.TextLine{})
			}
			return
		}
		s := strings.TrimRight(b.String(), " \t")
		lines = append(lines, layout.TextLine{Content: s, Width: measure(s)})
		b.Reset()
		cur = 0
	}

	for _, tok := range tokens {
		w := measure(tok)
		if cur > 0 && cur+w > limit {
			emit(false)
		}
		// 行首不保留空白，首行与折行后的行保持同一左缘。
		if b.Len() == 0 && isBlank(tok) {
			continue
		}
		b.WriteString(tok)
		cur += w
	}
	emit(true)
	return lines
}

// tokenize 把段落拆成折行单元：CJK 系码点单独成词，
// 空白串与非空白串各自聚合。
func tokenize(para string) []string {
	var tokens []string
	var b strings.Builder
	lastWasSpace := false
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tokens = append(tokens, b.String())
		b.Reset()
	}
	for _, r := range para {
		if script.Classify(r).NeedsCJKCoverage() {
			flush()
			tokens = append(tokens, string(r))
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if b.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		b.WriteRune(r)
	}
	flush()
	return tokens
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
