package layout

// 该文件定义布局结果与绘制原语，供布局计算、渲染与调试 JSON 共用。
// 所有坐标与尺寸单位均为毫米（mm），原点在页面左上角。

import (
	"time"

	"github.com/ByLCY/vitae/font"
	"github.com/ByLCY/vitae/theme"
)

// Result 保存布局后的页面与文档元信息。返回后不再修改。
type Result struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// Page 记录页面尺寸、边距与可以直接渲染的绘制操作。
// 形状（线、矩形、圆）作为装饰背景先于文本绘制。
type Page struct {
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Margin  Margin    `json:"margin"`
	Texts   []TextBox `json:"texts"`
	Lines   []Line    `json:"lines,omitempty"`
	Rects   []Rect    `json:"rects,omitempty"`
	Circles []Circle  `json:"circles,omitempty"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// FontSpec 描述一次文本绘制的字体请求：族名与统一字重。
// 具体文种的字体程序由解析链按 run 决定。
type FontSpec struct {
	Family string      `json:"family"`
	Weight font.Weight `json:"weight"`
}

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	LineHeight float64     `json:"lineHeight"`
	Font       FontSpec    `json:"font"`
	FontSize   float64     `json:"fontSize"`
	Color      theme.Color `json:"color"`
	Lines      []TextLine  `json:"lines"`
	Height     float64     `json:"height"`
	Align      string      `json:"align,omitempty"` // left（默认）/center/right
}

// TextLine 表示排版后的一行文本及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// Line 表示一条装饰线段。
type Line struct {
	X1    float64     `json:"x1"`
	Y1    float64     `json:"y1"`
	X2    float64     `json:"x2"`
	Y2    float64     `json:"y2"`
	Color theme.Color `json:"color"`
	Width float64     `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
}

// Rect 表示一个矩形（卡片底色等）。
type Rect struct {
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	StrokeColor theme.Color  `json:"strokeColor"`
	StrokeWidth float64      `json:"strokeWidth"`
	FillColor   *theme.Color `json:"fillColor,omitempty"` // 为空表示不填充
}

// Circle 表示一个圆（时间轴圆点等）。
type Circle struct {
	CX          float64      `json:"cx"`
	CY          float64      `json:"cy"`
	R           float64      `json:"r"`
	StrokeColor theme.Color  `json:"strokeColor"`
	StrokeWidth float64      `json:"strokeWidth"`
	FillColor   *theme.Color `json:"fillColor,omitempty"`
}

// DocumentMeta 保存输出文档的元信息。
type DocumentMeta struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Subject   string    `json:"subject"`
	Creator   string    `json:"creator"`
	Keywords  []string  `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
