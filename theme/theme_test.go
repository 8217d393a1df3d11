package theme

import (
	"strings"
	"testing"
)

// TestBuiltinThemesValid 每个内置主题都必须通过结构校验。
func TestBuiltinThemesValid(t *testing.T) {
	names := Names()
	if len(names) < 4 {
		t.Fatalf("内置主题至少应有 4 个, got %v", names)
	}
	for _, name := range names {
		th, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if err := th.Validate(); err != nil {
			t.Fatalf("主题 %s 校验失败: %v", name, err)
		}
	}
}

func TestLookupUnknownThemeFails(t *testing.T) {
	if _, err := Lookup("no-such-theme"); err == nil {
		t.Fatalf("未注册主题必须报错")
	}
}

func TestColorChannelsInRange(t *testing.T) {
	for _, name := range Names() {
		th, _ := Lookup(name)
		for _, c := range []Color{th.Primary, th.Secondary, th.Accent, th.Text, th.Light, th.Background} {
			if !c.valid() {
				t.Fatalf("主题 %s 存在越界颜色通道: %+v", name, c)
			}
		}
	}
}

func TestHexParsing(t *testing.T) {
	c, err := Hex("#ff8000")
	if err != nil {
		t.Fatalf("Hex: %v", err)
	}
	if !eq(c.R, 1) || !eq(c.G, 128.0/255) || !eq(c.B, 0) {
		t.Fatalf("颜色解析不符: %+v", c)
	}
	short, err := Hex("#fff")
	if err != nil {
		t.Fatalf("Hex short: %v", err)
	}
	if !eq(short.R, 1) || !eq(short.G, 1) || !eq(short.B, 1) {
		t.Fatalf("#fff 应为白色: %+v", short)
	}
	if _, err := Hex("#zzzzzz"); err == nil {
		t.Fatalf("非法颜色应报错")
	}
}

func TestRegisterRejectsInvalidAndDuplicate(t *testing.T) {
	if err := Register(Theme{Name: ""}); err == nil {
		t.Fatalf("无名主题应被拒绝")
	}
	dup, _ := Lookup("modern")
	if err := Register(dup); err == nil {
		t.Fatalf("内置主题不允许覆盖")
	}
}

func TestParseThemeDSL(t *testing.T) {
	src := `// 夜间配色
theme night {
  primary: #0b1020
  accent: #f2a541
  spacing: 1.2
  decoration: timeline
}

theme plain {
  decoration: none
}
`
	themes, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(themes) != 2 {
		t.Fatalf("应解析出 2 个主题, got %d", len(themes))
	}
	night := themes[0]
	if night.Name != "night" || night.Decoration != DecorationTimeline {
		t.Fatalf("night 主题解析不符: %+v", night)
	}
	if !eq(night.Spacing, 1.2) {
		t.Fatalf("spacing 解析不符: %g", night.Spacing)
	}
	if !eq(night.Primary.R, 11.0/255) {
		t.Fatalf("primary 颜色解析不符: %+v", night.Primary)
	}
	// 未声明的颜色回填 minimalist 的取值
	base, _ := Lookup("minimalist")
	if night.Text != base.Text {
		t.Fatalf("缺省颜色应回填: %+v vs %+v", night.Text, base.Text)
	}
}

// 6 位颜色必须整体成为一个词法单元，不能被截成 3 位颜色加残余数字。
func TestParseThemeDSLSixDigitColors(t *testing.T) {
	src := `theme mixed {
  primary: #0b1020
  secondary: #abc
  background: #FFFFFF
}`
	themes, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := themes[0]
	if !eq(m.Primary.R, 11.0/255) || !eq(m.Primary.G, 16.0/255) || !eq(m.Primary.B, 32.0/255) {
		t.Fatalf("6 位颜色解析不符: %+v", m.Primary)
	}
	if !eq(m.Secondary.R, 0xaa/255.0) || !eq(m.Secondary.B, 0xcc/255.0) {
		t.Fatalf("3 位颜色解析不符: %+v", m.Secondary)
	}
	if !eq(m.Background.R, 1) || !eq(m.Background.G, 1) || !eq(m.Background.B, 1) {
		t.Fatalf("大写 6 位颜色解析不符: %+v", m.Background)
	}
}

func TestParseThemeDSLRejectsUnknownProp(t *testing.T) {
	if _, err := Parse(strings.NewReader("theme x { shadow: #000000 }")); err == nil {
		t.Fatalf("未知属性应报错")
	}
	if _, err := Parse(strings.NewReader("theme x { decoration: sparkles }")); err == nil {
		t.Fatalf("未知装饰风格应报错")
	}
}

func eq(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
