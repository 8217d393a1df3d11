package typeset

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/vitae/layout"
)

// fakeMeasure 给 CJK 码点 2 个单位宽、其余 1 个单位宽。
func fakeMeasure(s string) float64 {
	w := 0.0
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			w += 2
		} else {
			w += 1
		}
	}
	return w
}

func joinLines(lines []layout.TextLine) string {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.Content)
	}
	return b.String()
}

func TestWrapRespectsLimit(t *testing.T) {
	content := "the quick brown fox jumps over the lazy dog"
	lines := Wrap(content, 10, fakeMeasure)
	if len(lines) < 2 {
		t.Fatalf("应当折成多行，得到 %d 行", len(lines))
	}
	for i, ln := range lines {
		if fakeMeasure(ln.Content) > 10 {
			t.Fatalf("第 %d 行超宽: %q", i, ln.Content)
		}
		if strings.HasPrefix(ln.Content, " ") {
			t.Fatalf("第 %d 行以空白开头: %q", i, ln.Content)
		}
	}
}

func TestWrapKeepsWordsAtomic(t *testing.T) {
	lines := Wrap("aa supercalifragilistic bb", 8, fakeMeasure)
	for _, ln := range lines {
		for _, w := range strings.Fields(ln.Content) {
			if strings.Contains("supercalifragilistic", w) && w != "supercalifragilistic" && len(w) > 2 {
				t.Fatalf("拉丁词被从中间切开: %q", ln.Content)
			}
		}
	}
	var found bool
	for _, ln := range lines {
		if ln.Content == "supercalifragilistic" {
			found = true
		}
	}
	if !found {
		t.Fatalf("超宽单词应独占一行且不拆分，得到 %v", lines)
	}
}

func TestWrapCJKBreaksAnywhere(t *testing.T) {
	content := strings.Repeat("汉", 2000)
	lines := Wrap(content, 30, fakeMeasure)
	if len(lines) < 100 {
		t.Fatalf("两千个汉字应折成很多行，得到 %d 行", len(lines))
	}
	for i, ln := range lines {
		if !utf8.ValidString(ln.Content) {
			t.Fatalf("第 %d 行包含被切开的码点", i)
		}
		if fakeMeasure(ln.Content) > 30 {
			t.Fatalf("第 %d 行超宽", i)
		}
	}
	if joinLines(lines) != content {
		t.Fatal("折行后内容发生丢失或变形")
	}
}

func TestWrapMixedScriptRoundTrip(t *testing.T) {
	content := "Go语言 since 2009，版本 1.25 已发布。"
	lines := Wrap(content, 12, fakeMeasure)
	joined := joinLines(lines)
	// 折行只会丢弃断点处的空白，不会丢字。
	if strings.ReplaceAll(joined, " ", "") != strings.ReplaceAll(content, " ", "") {
		t.Fatalf("折行丢字: %q vs %q", joined, content)
	}
}

// 段落开头的空白与折行后的行首空白一视同仁，全部丢弃。
func TestWrapDropsLeadingWhitespace(t *testing.T) {
	lines := Wrap("   indented first line that wraps onto more lines", 10, fakeMeasure)
	for i, ln := range lines {
		if strings.HasPrefix(ln.Content, " ") {
			t.Fatalf("第 %d 行以空白开头: %q", i, ln.Content)
		}
	}
	if lines[0].Content == "" {
		t.Fatalf("首行不应为空: %v", lines)
	}
}

func TestWrapExplicitNewlines(t *testing.T) {
	lines := Wrap("第一行\n\n第三行", 100, fakeMeasure)
	if len(lines) != 3 {
		t.Fatalf("显式换行应产生 3 行，得到 %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("空段应产生空行，得到 %q", lines[1].Content)
	}
}

func TestWrapNoLimit(t *testing.T) {
	lines := Wrap("短文本", 0, fakeMeasure)
	if len(lines) != 1 || lines[0].Content != "短文本" {
		t.Fatalf("无宽度限制时应为单行，得到 %v", lines)
	}
}
