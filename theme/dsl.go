package theme

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 外部主题文件使用一个极小的 DSL，例如：
//
//	theme night {
//	  primary: #0b1020
//	  secondary: #33415c
//	  accent: #f2a541
//	  text: #1b1b1b
//	  light: #8d99ae
//	  background: #ffffff
//	  spacing: 1.2
//	  decoration: timeline
//	}
//
// 文件可以包含多个 theme 块；解析结果在注册前逐条校验。

var (
	themeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		// 先匹配 6 位再匹配 3 位：正则备选取最左优先，顺序反了会把
		// #0b1020 截成 #0b1 加残余数字。
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[{}:;]`},
	})

	fileParser = participle.MustBuild[themeFile](
		participle.Lexer(themeLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

type themeFile struct {
	Themes []*themeDecl `parser:"Newline* ( @@ Newline* )*"`
}

type themeDecl struct {
	Name  string       `parser:"'theme' @Ident"`
	Props []*themeProp `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

type themeProp struct {
	Key    string   `parser:"@Ident ':' "`
	Color  *string  `parser:"( @Color"`
	Number *float64 `parser:"| @Number"`
	Ident  *string  `parser:"| @Ident )"`
}

// Parse 从 r 读取主题声明并转换为校验过的 Theme 记录（不注册）。
func Parse(r io.Reader) ([]Theme, error) {
	file, err := fileParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("解析主题文件失败: %w", err)
	}
	out := make([]Theme, 0, len(file.Themes))
	for _, decl := range file.Themes {
		t, err := declToTheme(decl)
		if err != nil {
			return nil, err
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadFile 解析主题文件并把其中的主题全部注册。
func LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开主题文件 %s 失败: %w", path, err)
	}
	defer f.Close()
	themes, err := Parse(f)
	if err != nil {
		return err
	}
	for _, t := range themes {
		if err := Register(t); err != nil {
			return err
		}
	}
	return nil
}

func declToTheme(decl *themeDecl) (Theme, error) {
	t := Theme{Name: decl.Name, Spacing: 1.0}
	// 未显式给出的颜色沿用 minimalist 的取值，保证记录完整。
	base, _ := Lookup("minimalist")
	t.Primary, t.Secondary, t.Accent = base.Primary, base.Secondary, base.Accent
	t.Text, t.Light, t.Background = base.Text, base.Light, base.Background

	for _, p := range decl.Props {
		switch p.Key {
		case "primary", "secondary", "accent", "text", "light", "background":
			if p.Color == nil {
				return Theme{}, fmt.Errorf("主题 %s：%s 需要颜色值", decl.Name, p.Key)
			}
			c, err := Hex(*p.Color)
			if err != nil {
				return Theme{}, fmt.Errorf("主题 %s：%w", decl.Name, err)
			}
			switch p.Key {
			case "primary":
				t.Primary = c
			case "secondary":
				t.Secondary = c
			case "accent":
				t.Accent = c
			case "text":
				t.Text = c
			case "light":
				t.Light = c
			case "background":
				t.Background = c
			}
		case "spacing":
			if p.Number == nil {
				return Theme{}, fmt.Errorf("主题 %s：spacing 需要数值", decl.Name)
			}
			t.Spacing = *p.Number
		case "decoration":
			if p.Ident == nil {
				return Theme{}, fmt.Errorf("主题 %s：decoration 需要风格名", decl.Name)
			}
			d, err := ParseDecoration(*p.Ident)
			if err != nil {
				return Theme{}, fmt.Errorf("主题 %s：%w", decl.Name, err)
			}
			t.Decoration = d
		default:
			return Theme{}, fmt.Errorf("主题 %s：未知属性 %q", decl.Name, p.Key)
		}
	}
	return t, nil
}
