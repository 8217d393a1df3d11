// Package theme 定义简历渲染的主题数据：配色、间距与装饰风格。
// 主题是数据而非算法——布局引擎只有一套，装饰差异由 Decoration 标签驱动。
package theme

import "fmt"

// Color 的三个通道均在 [0,1] 区间，注册时校验。
type Color struct {
	R, G, B float64
}

// valid 报告颜色通道是否都落在 [0,1]。
func (c Color) valid() bool {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Hex 按 #RGB / #RRGGBB 解析颜色。
func Hex(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 3:
		r, okR := hexNibble(s[0])
		g, okG := hexNibble(s[1])
		b, okB := hexNibble(s[2])
		if !okR || !okG || !okB {
			return Color{}, fmt.Errorf("颜色值 #%s 无法解析", s)
		}
		return Color{R: float64(r*17) / 255, G: float64(g*17) / 255, B: float64(b*17) / 255}, nil
	case 6:
		var ch [3]float64
		for i := 0; i < 3; i++ {
			hi, okH := hexNibble(s[2*i])
			lo, okL := hexNibble(s[2*i+1])
			if !okH || !okL {
				return Color{}, fmt.Errorf("颜色值 #%s 无法解析", s)
			}
			ch[i] = float64(hi*16+lo) / 255
		}
		return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 #%s 长度非法", s)
	}
}

func hexNibble(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// Decoration 枚举各主题的装饰画法，布局与分页规则完全一致。
type Decoration int

const (
	DecorationNone      Decoration = iota
	DecorationUnderline            // 节标题下划线
	DecorationTimeline             // 条目左侧时间轴圆点与竖线
	DecorationCard                 // 条目卡片底色
)

// String 返回装饰风格名。
func (d Decoration) String() string {
	switch d {
	case DecorationNone:
		return "none"
	case DecorationUnderline:
		return "underline"
	case DecorationTimeline:
		return "timeline"
	case DecorationCard:
		return "card"
	default:
		return "unknown"
	}
}

// ParseDecoration 解析装饰风格名。
func ParseDecoration(s string) (Decoration, error) {
	switch s {
	case "none", "":
		return DecorationNone, nil
	case "underline":
		return DecorationUnderline, nil
	case "timeline":
		return DecorationTimeline, nil
	case "card":
		return DecorationCard, nil
	default:
		return DecorationNone, fmt.Errorf("未知的装饰风格 %q", s)
	}
}

// Theme 是一条不可变的主题记录，注册后不再修改。
type Theme struct {
	Name string

	Primary    Color // 姓名、节标题
	Secondary  Color // 副标题、公司/院校
	Accent     Color // 装饰（下划线、时间轴、卡片描边）
	Text       Color // 正文
	Light      Color // 日期、技术栈等弱化信息
	Background Color // 页面/卡片底色

	// Spacing 是垂直间距的整体缩放因子（1.0 为基准）。
	Spacing float64

	Decoration Decoration
}

// Validate 校验主题记录的结构合法性。
func (t Theme) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("主题缺少名称")
	}
	colors := map[string]Color{
		"primary":    t.Primary,
		"secondary":  t.Secondary,
		"accent":     t.Accent,
		"text":       t.Text,
		"light":      t.Light,
		"background": t.Background,
	}
	for name, c := range colors {
		if !c.valid() {
			return fmt.Errorf("主题 %s 的 %s 颜色通道越界（应在 [0,1]）", t.Name, name)
		}
	}
	if t.Spacing <= 0 {
		return fmt.Errorf("主题 %s 的 spacing 必须为正", t.Name)
	}
	if t.Decoration < DecorationNone || t.Decoration > DecorationCard {
		return fmt.Errorf("主题 %s 的装饰风格非法", t.Name)
	}
	return nil
}
