// Package typeset 基于 github.com/tdewolff/canvas 的字体面实现
// 文种感知的文本测量与折行：文本先按文种切分，每个 run 用
// 对应覆盖范围的字体面测量，折行对整行复测。
package typeset

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"go.uber.org/zap"

	"github.com/ByLCY/vitae/font"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/script"
)

// Typesetter 实现 layout.Typesetter。字体族按 族名|字重|CJK 覆盖
// 缓存，互斥锁保护，可并发使用。
type Typesetter struct {
	resolver *font.Resolver
	logger   *zap.Logger

	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

var _ layout.Typesetter = (*Typesetter)(nil)

// New 创建排版器。logger 为 nil 时不输出日志。
func New(resolver *font.Resolver, logger *zap.Logger) *Typesetter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Typesetter{
		resolver: resolver,
		logger:   logger,
		families: map[string]*canvas.FontFamily{},
	}
}

// Face 返回适配指定文种的字体面。字号单位为 pt。
// 渲染器复用此方法以保证测量与绘制使用同一字体程序。
func (t *Typesetter) Face(spec layout.FontSpec, scr script.Script, sizePt float64, col color.Color) (*canvas.FontFace, error) {
	fam, style, err := t.family(spec, scr)
	if err != nil {
		return nil, err
	}
	return fam.Face(sizePt, col, style, canvas.FontNormal), nil
}

func (t *Typesetter) family(spec layout.FontSpec, scr script.Script) (*canvas.FontFamily, canvas.FontStyle, error) {
	needsCJK := scr.NeedsCJKCoverage()
	style := styleFor(spec.Weight)
	key := fmt.Sprintf("%s|%s|%v", spec.Family, spec.Weight, needsCJK)

	t.mu.Lock()
	defer t.mu.Unlock()
	if fam, ok := t.families[key]; ok {
		return fam, style, nil
	}

	// 解析链自带超时与降级，这里无需额外截止时间。
	res := t.resolver.Resolve(context.Background(), font.Request{
		Family:   spec.Family,
		Weight:   spec.Weight,
		NeedsCJK: needsCJK,
	})
	fam := canvas.NewFontFamily(key)
	if err := fam.LoadFont(res.Data, 0, style); err != nil {
		return nil, style, fmt.Errorf("加载字体程序失败（来源 %s）: %w", res.Source, err)
	}
	t.logger.Debug("字体面就绪",
		zap.String("key", key), zap.String("source", res.Source),
		zap.Bool("cjk", res.CJKCoverage))
	t.families[key] = fam
	return fam, style, nil
}

// TextWidth 返回整串文本的宽度（mm）：按文种切分后逐 run 测量求和，
// 混排行中的数字串按固定比例收缩。字体面不可用时退回估算。
func (t *Typesetter) TextWidth(content string, spec layout.FontSpec, fontSize float64) float64 {
	return t.measure(content, spec, fontSize*layout.MmToPt)
}

func (t *Typesetter) measure(content string, spec layout.FontSpec, sizePt float64) float64 {
	mixed := script.ContainsCJK(content)
	total := 0.0
	for _, run := range script.Segment(content) {
		face, err := t.Face(spec, run.Script, sizePt, canvas.Black)
		if err != nil {
			t.logger.Warn("测量退化为估算", zap.String("script", run.Script.String()), zap.Error(err))
			total += estimateWidth(run.Text, sizePt*layout.PtToMm)
			continue
		}
		w := face.TextWidth(run.Text)
		if mixed && run.Script == script.Latin {
			w -= digitDiscount(run.Text, face)
		}
		total += w
	}
	return total
}

// LayoutLines 实现 layout.Typesetter：贪心折行并回填行高。
// 约定：width/fontSize/lineHeight 入参均为 mm，与字体系统交互用 pt。
func (t *Typesetter) LayoutLines(content string, width float64, spec layout.FontSpec, fontSize, lineHeight float64) ([]layout.TextLine, error) {
	sizePt := fontSize * layout.MmToPt
	lines := Wrap(content, width, func(s string) float64 {
		return t.measure(s, spec, sizePt)
	})

	// 行高以整串文本的主导文种字体面为准。
	scr := script.Latin
	if script.ContainsCJK(content) {
		scr = script.CJK
	}
	textHeight := fontSize
	if face, err := t.Face(spec, scr, sizePt, canvas.Black); err == nil {
		if h := face.Metrics().LineHeight; h > 0 {
			textHeight = h
		}
	}
	leading := math.Max(lineHeight-textHeight, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = textHeight
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

// digitDiscount 计算混排行中数字串应收缩的宽度。
func digitDiscount(text string, face *canvas.FontFace) float64 {
	disc := 0.0
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			disc += face.TextWidth(b.String()) * (1 - cjkDigitShrink)
			b.Reset()
		}
	}
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return disc
}

func styleFor(w font.Weight) canvas.FontStyle {
	if w == font.Bold {
		return canvas.FontBold
	}
	return canvas.FontRegular
}
