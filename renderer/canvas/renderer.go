// Package canvasrenderer 通过 github.com/tdewolff/canvas 把布局结果
// 绘制为 PDF。文本按文种 run 逐段绘制，每段用对应覆盖范围的字体面，
// 与排版器共享字体族缓存以保证测量和绘制一致。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
	"github.com/ByLCY/vitae/script"
	"github.com/ByLCY/vitae/theme"
	"github.com/ByLCY/vitae/typeset"
)

const defaultStrokeWidth = 0.2

// Renderer 把布局结果渲染为 PDF 字节序列。
type Renderer struct {
	ts *typeset.Typesetter
}

var _ renderer.Renderer = (*Renderer)(nil)

// New 创建渲染器。排版器必须与布局阶段使用的是同一个实例，
// 否则测量与绘制的字体可能不一致。
func New(ts *typeset.Typesetter) *Renderer {
	return &Renderer{ts: ts}
}

// Render 将布局结果渲染为单个多页 PDF。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	// 形状（线、矩形、圆）作为装饰背景先于文本绘制
	drawLines(ctx, page.Lines)
	drawRects(ctx, page.Rects)
	drawCircles(ctx, page.Circles)

	for _, tb := range page.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	return nil
}

// drawTextBox 逐行绘制文本块。每行先按文种切分，再从左到右
// 逐 run 绘制，游标按实际字形宽度推进；对齐以整行宽度计算锚点。
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	sizePt := toPt(tb.FontSize)
	col := colorOf(tb.Color)

	cursorY := tb.Y
	for _, line := range tb.Lines {
		cursorY += line.GapBefore
		lineHeight := line.Height
		if lineHeight <= 0 {
			lineHeight = tb.FontSize
		}
		if line.Content == "" {
			cursorY += lineHeight
			continue
		}

		runs := script.Segment(line.Content)
		faces := make([]*canvas.FontFace, len(runs))
		widths := make([]float64, len(runs))
		total := 0.0
		for i, run := range runs {
			face, err := r.ts.Face(tb.Font, run.Script, sizePt, col)
			if err != nil {
				return fmt.Errorf("获取字体面失败: %w", err)
			}
			faces[i] = face
			widths[i] = face.TextWidth(run.Text)
			total += widths[i]
		}

		x := tb.X
		switch strings.ToLower(tb.Align) {
		case "center":
			x = tb.X + (tb.Width-total)/2
		case "right", "end":
			x = tb.X + tb.Width - total
		}

		// 基线位置：行顶部加首个字体面的上升部（mm）。
		baseline := cursorY + faces[0].Metrics().Ascent
		for i, run := range runs {
			ctx.DrawText(x, baseline, canvas.NewTextLine(faces[i], run.Text, canvas.Left))
			x += widths[i]
		}
		cursorY += lineHeight
	}
	return nil
}

func drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetStrokeColor(colorOf(ln.Color))
		ctx.SetStrokeWidth(w)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
}

func drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		w := rc.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if rc.FillColor != nil {
			ctx.SetFillColor(colorOf(*rc.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.SetStrokeColor(colorOf(rc.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func drawCircles(ctx *canvas.Context, circles []layout.Circle) {
	for _, c := range circles {
		w := c.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if c.FillColor != nil {
			ctx.SetFillColor(colorOf(*c.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.SetStrokeColor(colorOf(c.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(c.CX-c.R, c.CY-c.R, canvas.Circle(c.R))
	}
}

func colorOf(c theme.Color) color.Color {
	return canvas.RGBA(c.R, c.G, c.B, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
