package layout

import (
	"go.uber.org/zap"

	"github.com/ByLCY/vitae/theme"
)

// Typesetter 负责文本测量与折行。宽度、字号、行高的单位均为 mm。
type Typesetter interface {
	// LayoutLines 把文本按最大宽度拆成可绘制的行（文种感知的贪心折行）。
	LayoutLines(content string, width float64, font FontSpec, fontSize, lineHeight float64) ([]TextLine, error)
	// TextWidth 返回整串文本的宽度（跨文种 run 宽度之和）。
	TextWidth(content string, font FontSpec, fontSize float64) float64
}

// EngineConfig 显式携带一次渲染所需的全部依赖，
// 不依赖任何环境单例，便于确定性测试与并行渲染。
type EngineConfig struct {
	Typesetter Typesetter
	Theme      theme.Theme
	// PageSize 取 "A4" 或 "letter"（大小写不敏感），缺省 A4。
	PageSize string
	// FontFamily 可选的字体族覆盖，缺省 "Inter"。
	FontFamily string
	Logger     *zap.Logger
}
