package theme

import (
	"fmt"
	"sort"
	"sync"
)

// 内置主题注册表。Lookup 对未注册名称报错，调用方应视为致命错误并
// 在任何绘制开始前失败。外部 .theme 文件只能在初始化期追加新名称，
// 不能覆盖内置主题。
var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func mustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func init() {
	builtins := []Theme{
		{
			Name:       "minimalist",
			Primary:    mustHex("#1a1a1a"),
			Secondary:  mustHex("#4a4a4a"),
			Accent:     mustHex("#1a1a1a"),
			Text:       mustHex("#2d2d2d"),
			Light:      mustHex("#8a8a8a"),
			Background: mustHex("#ffffff"),
			Spacing:    1.0,
			Decoration: DecorationNone,
		},
		{
			Name:       "modern",
			Primary:    mustHex("#1e3a5f"),
			Secondary:  mustHex("#2d5f8a"),
			Accent:     mustHex("#e8873a"),
			Text:       mustHex("#2d2d2d"),
			Light:      mustHex("#7a8a99"),
			Background: mustHex("#ffffff"),
			Spacing:    1.1,
			Decoration: DecorationTimeline,
		},
		{
			Name:       "classic",
			Primary:    mustHex("#222222"),
			Secondary:  mustHex("#555555"),
			Accent:     mustHex("#8a0f1f"),
			Text:       mustHex("#333333"),
			Light:      mustHex("#777777"),
			Background: mustHex("#ffffff"),
			Spacing:    1.0,
			Decoration: DecorationUnderline,
		},
		{
			Name:       "creative",
			Primary:    mustHex("#0f3d3e"),
			Secondary:  mustHex("#276e6f"),
			Accent:     mustHex("#e0a440"),
			Text:       mustHex("#253535"),
			Light:      mustHex("#6c8b8b"),
			Background: mustHex("#f7f5f0"),
			Spacing:    1.2,
			Decoration: DecorationCard,
		},
	}
	for _, t := range builtins {
		if err := t.Validate(); err != nil {
			panic(err)
		}
		registry[t.Name] = t
	}
}

// Lookup 按名称取主题。未注册的名称返回错误（致命条件）。
func Lookup(name string) (Theme, error) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[name]
	if !ok {
		return Theme{}, fmt.Errorf("主题 %q 未注册（可用：%v）", name, namesLocked())
	}
	return t, nil
}

// Register 在注册表中追加主题，注册前校验；内置名称不可覆盖。
func Register(t Theme) error {
	if err := t.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[t.Name]; exists {
		return fmt.Errorf("主题 %q 已注册，不允许覆盖", t.Name)
	}
	registry[t.Name] = t
	return nil
}

// Names 返回已注册主题名（排序后），便于提示与测试。
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
