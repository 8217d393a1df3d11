package script

import (
	"strings"
	"testing"
)

// TestSegmentRoundTrip 验证 run 文本拼接后精确还原输入。
func TestSegmentRoundTrip(t *testing.T) {
	samples := []string{
		"",
		"hello world",
		"你好世界",
		"李雷 works at 北京字节 since 2020",
		"こんにちは world 안녕하세요",
		"ひらがな+カタカナ混排テスト",
		"123数字456混合789",
		strings.Repeat("漢", 500) + strings.Repeat("a", 500),
	}
	for _, s := range samples {
		runs := Segment(s)
		var b strings.Builder
		for _, run := range runs {
			b.WriteString(run.Text)
		}
		if b.String() != s {
			t.Fatalf("round-trip 失败: got=%q want=%q", b.String(), s)
		}
	}
}

func TestSegmentMergesAdjacentSameScript(t *testing.T) {
	runs := Segment("你好世界")
	if len(runs) != 1 {
		t.Fatalf("同文种码点应合并为一个 run，got %d", len(runs))
	}
	if runs[0].Script != CJK {
		t.Fatalf("expected CJK run, got %v", runs[0].Script)
	}
}

func TestSegmentAlternatingScripts(t *testing.T) {
	runs := Segment("Go语言test")
	want := []struct {
		script Script
		text   string
	}{
		{Latin, "Go"},
		{CJK, "语言"},
		{Latin, "test"},
	}
	if len(runs) != len(want) {
		t.Fatalf("run 数量不符: got=%d want=%d (%+v)", len(runs), len(want), runs)
	}
	for i, w := range want {
		if runs[i].Script != w.script || runs[i].Text != w.text {
			t.Fatalf("run %d 不符: got=%v/%q want=%v/%q", i, runs[i].Script, runs[i].Text, w.script, w.text)
		}
	}
}

func TestClassifyBlocks(t *testing.T) {
	cases := []struct {
		r    rune
		want Script
	}{
		{'a', Latin},
		{'0', Latin},
		{' ', Latin},
		{'中', CJK},
		{0x4E00, CJK},
		{0x9FFF, CJK},
		{'ひ', Kana},
		{'カ', Kana},
		{'한', Hangul},
		{0xAC00, Hangul},
		{0xD7AF, Hangul},
		{0x3000, Other}, // 表意文字空格：在目标区块之外且高于 Latin 界
	}
	for _, c := range cases {
		got := Classify(c.r)
		if got != c.want {
			t.Fatalf("Classify(%q)=%v want %v", c.r, got, c.want)
		}
	}
}

func TestContainsCJK(t *testing.T) {
	if ContainsCJK("plain ascii only") {
		t.Fatalf("纯 ASCII 不应判定为含 CJK")
	}
	if !ContainsCJK("mixed 中 text") {
		t.Fatalf("含汉字文本应判定为含 CJK")
	}
	if !ContainsCJK("カタカナ") {
		t.Fatalf("片假名应要求 CJK 覆盖")
	}
	if !ContainsCJK("한글") {
		t.Fatalf("谚文应要求 CJK 覆盖")
	}
}
