package layout

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/vitae/font"
	"github.com/ByLCY/vitae/resume"
	"github.com/ByLCY/vitae/theme"
)

// 引擎常量。所有主题共用同一状态机与游标规则，只在装饰画法上有差异。
const (
	maxHighlights = 4     // 每个条目最多渲染的亮点数
	bulletPrefix  = "• "
	railIndent    = 6.0   // timeline 装饰下条目的左缩进（mm）
	railDotX      = 2.0   // 时间轴圆点相对内容区左缘的偏移（mm）
	cardPadding   = 2.2   // card 装饰的内边距（mm）
	lineFactor    = 1.35  // 默认行高倍数
)

// 字号（pt），绘制前经 Pt 转为 mm。
const (
	sizeName     = 21.0
	sizeHeadline = 11.5
	sizeContact  = 9.5
	sizeSection  = 13.0
	sizeTitle    = 11.0
	sizeBody     = 10.0
	sizeSmall    = 9.0
)

// Engine 把简历记录、主题与排版后端组合成分页的布局结果。
// 一次 Render 拥有独立的页面与游标状态，可安全并行。
type Engine struct {
	cfg    EngineConfig
	width  float64
	height float64
}

// NewEngine 校验配置并创建引擎。未注册主题与非法页面尺寸在此失败。
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if err := cfg.Theme.Validate(); err != nil {
		return nil, fmt.Errorf("layout: 主题不可用: %w", err)
	}
	name := strings.ToUpper(strings.TrimSpace(cfg.PageSize))
	if name == "" {
		name = "A4"
	}
	size, ok := pageSizes[name]
	if !ok {
		return nil, fmt.Errorf("layout: 暂不支持的纸张尺寸 %q（仅支持 A4 与 letter）", cfg.PageSize)
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Inter"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, width: size[0], height: size[1]}, nil
}

// Render 按 页眉→摘要→教育→经历→项目→技能 的固定顺序走完简历，
// 空段落跳过；顺序不随主题变化。返回的 Result 不再被引擎修改。
func (e *Engine) Render(r *resume.Resume) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("简历记录非法: %w", err)
	}

	margin := Margin{Top: 16, Right: 18, Bottom: 16, Left: 18}
	col := newPageCollector(e.width, e.height, margin)
	f := &flow{
		eng:     e,
		col:     col,
		th:      e.cfg.Theme,
		ts:      e.cfg.Typesetter,
		x:       margin.Left,
		width:   e.width - margin.Left - margin.Right,
		cursorY: col.contentTop(),
	}

	indent := 0.0
	if f.th.Decoration == theme.DecorationTimeline {
		indent = railIndent
	}

	f.header(r.BasicInfo)

	if strings.TrimSpace(r.Summary) != "" {
		f.sectionTitle("Summary")
		f.paragraph(r.Summary, sizeBody, font.Regular, f.th.Text, "", 0)
		f.endSection()
	}

	if len(r.Education) > 0 {
		f.sectionTitle("Education")
		for i, edu := range r.Education {
			if i > 0 {
				f.cursorY += f.spacing(3.0)
			}
			f.educationItem(edu, indent)
		}
		f.endSection()
	}

	if len(r.Experience) > 0 {
		f.sectionTitle("Experience")
		for i, exp := range r.Experience {
			if i > 0 {
				f.cursorY += f.spacing(3.0)
			}
			f.experienceItem(exp, indent)
		}
		f.endSection()
	}

	if len(r.Projects) > 0 {
		f.sectionTitle("Projects")
		for i, p := range r.Projects {
			if i > 0 {
				f.cursorY += f.spacing(3.0)
			}
			f.projectItem(p, indent)
		}
		f.endSection()
	}

	if len(r.Skills) > 0 {
		f.sectionTitle("Skills")
		for i, s := range r.Skills {
			if i > 0 {
				f.cursorY += f.spacing(2.0)
			}
			f.skillGroup(s)
		}
		f.endSection()
	}

	meta := DocumentMeta{
		Title:     r.BasicInfo.Name + " - Resume",
		Author:    r.BasicInfo.Name,
		Subject:   r.BasicInfo.Headline,
		Creator:   "vitae",
		Keywords:  []string{"resume", e.cfg.Theme.Name},
		CreatedAt: time.Now(),
	}
	return &Result{Pages: col.pages(), Meta: meta}, nil
}

// flow 维护单次渲染的垂直游标与页面收集器。
type flow struct {
	eng     *Engine
	col     *pageCollector
	th      theme.Theme
	ts      Typesetter
	x       float64
	width   float64
	cursorY float64
}

func (f *flow) spacing(mm float64) float64 { return mm * f.th.Spacing }

func (f *flow) spec(w font.Weight) FontSpec {
	return FontSpec{Family: f.eng.cfg.FontFamily, Weight: w}
}

func (f *flow) pageBreak() {
	f.col.newPage()
	f.cursorY = f.col.contentTop()
}

func (f *flow) fits(h float64) bool {
	return f.cursorY+h <= f.col.contentBottom()
}

// layoutLines 折行并回填行高。排版失败是按字符串隔离的非致命错误：
// 记日志后退回单行兜底，渲染继续。
func (f *flow) layoutLines(content string, width, sizePt float64, weight font.Weight) []TextLine {
	sizeMM := Pt(sizePt)
	lh := sizeMM * lineFactor
	lines, err := f.ts.LayoutLines(content, width, f.spec(weight), sizeMM, lh)
	if err != nil || len(lines) == 0 {
		if err != nil {
			f.eng.cfg.Logger.Warn("文本排版失败，使用单行兜底", zap.Error(err))
		}
		lines = []TextLine{{Content: content, Width: width, Height: sizeMM}}
	}
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = sizeMM
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = lh - sizeMM
		}
	}
	return lines
}

func linesHeight(lines []TextLine) float64 {
	total := 0.0
	for _, ln := range lines {
		total += ln.GapBefore + ln.Height
	}
	return total
}

// writeLines 逐行写入已折行文本，按行分页：一个行组跨页时拆成多个
// TextBox，描述与亮点因此允许溢出到下一页。
func (f *flow) writeLines(lines []TextLine, sizePt float64, weight font.Weight, col theme.Color, align string, indent float64) {
	sizeMM := Pt(sizePt)
	width := f.width - indent
	start := 0
	chunkY := f.cursorY

	flush := func(end int) {
		if end <= start {
			return
		}
		chunk := make([]TextLine, end-start)
		copy(chunk, lines[start:end])
		chunk[0].GapBefore = 0
		f.col.appendText(TextBox{
			X:          f.x + indent,
			Y:          chunkY,
			Width:      width,
			LineHeight: sizeMM * lineFactor,
			Font:       f.spec(weight),
			FontSize:   sizeMM,
			Color:      col,
			Lines:      chunk,
			Height:     linesHeight(chunk),
			Align:      align,
		})
	}

	for i := range lines {
		gap := lines[i].GapBefore
		if i == start {
			gap = 0
		}
		// 单行高于整页时留在原地（容忍的溢出），否则换页继续。
		if f.cursorY+gap+lines[i].Height > f.col.contentBottom() && f.cursorY > f.col.contentTop() {
			flush(i)
			f.pageBreak()
			chunkY = f.cursorY
			start = i
			gap = 0
		}
		f.cursorY += gap + lines[i].Height
	}
	flush(len(lines))
}

// paragraph 折行并写入一段文本。
func (f *flow) paragraph(content string, sizePt float64, weight font.Weight, col theme.Color, align string, indent float64) {
	lines := f.layoutLines(content, f.width-indent, sizePt, weight)
	f.writeLines(lines, sizePt, weight, col, align, indent)
}

// titleRow 写入条目标题行（左：标题，右：右对齐日期），返回标题实际
// 落点的条目标记。标记必须在换页判定之后采集，装饰才能落在标题所在页。
// 硬规则：标题行绝不跨页——放不下时先换页再画。
func (f *flow) titleRow(left, right string, indent float64) itemMark {
	rightW := 0.0
	if right != "" {
		rightW = f.ts.TextWidth(right, f.spec(font.Regular), Pt(sizeSmall)) + 2.0
	}
	leftWidth := f.width - indent - rightW
	if leftWidth < f.width/3 {
		leftWidth = f.width / 3
	}
	lines := f.layoutLines(left, leftWidth, sizeTitle, font.Bold)
	h := linesHeight(lines)
	if !f.fits(h) && f.cursorY > f.col.contentTop() {
		f.pageBreak()
	}
	y := f.cursorY
	mark := itemMark{idx: f.col.pageIndex(), y: y}
	sizeMM := Pt(sizeTitle)
	f.col.appendText(TextBox{
		X:          f.x + indent,
		Y:          y,
		Width:      leftWidth,
		LineHeight: sizeMM * lineFactor,
		Font:       f.spec(font.Bold),
		FontSize:   sizeMM,
		Color:      f.th.Text,
		Lines:      lines,
		Height:     h,
		Align:      "left",
	})
	if right != "" {
		smallMM := Pt(sizeSmall)
		dy := lines[0].Height - smallMM
		if dy < 0 {
			dy = 0
		}
		f.col.appendText(TextBox{
			X:          f.x + indent,
			Y:          y + dy,
			Width:      f.width - indent,
			LineHeight: smallMM * lineFactor,
			Font:       f.spec(font.Regular),
			FontSize:   smallMM,
			Color:      f.th.Light,
			Lines:      []TextLine{{Content: right, Width: rightW, Height: smallMM}},
			Height:     smallMM,
			Align:      "right",
		})
	}
	f.cursorY = y + h
	return mark
}

// sectionTitle 写入主题化的节标题。标题行原子，且避免成为页尾孤行：
// 标题加一行正文放不下时整体换页。
func (f *flow) sectionTitle(title string) {
	lines := f.layoutLines(title, f.width, sizeSection, font.Bold)
	h := linesHeight(lines)
	need := h + f.spacing(2.0) + Pt(sizeBody)
	if !f.fits(need) && f.cursorY > f.col.contentTop() {
		f.pageBreak()
	}
	sizeMM := Pt(sizeSection)
	f.col.appendText(TextBox{
		X:          f.x,
		Y:          f.cursorY,
		Width:      f.width,
		LineHeight: sizeMM * lineFactor,
		Font:       f.spec(font.Bold),
		FontSize:   sizeMM,
		Color:      f.th.Primary,
		Lines:      lines,
		Height:     h,
	})
	f.cursorY += h

	if f.th.Decoration == theme.DecorationUnderline {
		y := f.cursorY + 0.8
		f.col.appendLineAt(f.col.pageIndex(), Line{
			X1: f.x, Y1: y, X2: f.x + f.width, Y2: y,
			Color: f.th.Accent, Width: 0.4,
		})
		f.cursorY += 1.6
	}
	f.cursorY += f.spacing(2.0)
}

func (f *flow) endSection() {
	f.cursorY += f.spacing(5.0)
}

// header 写入页眉区：姓名、头衔与联系方式。
func (f *flow) header(info resume.BasicInfo) {
	f.paragraph(info.Name, sizeName, font.Bold, f.th.Primary, "", 0)
	if info.Headline != "" {
		f.cursorY += f.spacing(0.8)
		f.paragraph(info.Headline, sizeHeadline, font.Regular, f.th.Secondary, "", 0)
	}
	contact := joinNonEmpty("  ·  ", info.Email, info.Phone, info.Location, info.Website)
	if contact != "" {
		f.cursorY += f.spacing(1.2)
		f.paragraph(contact, sizeContact, font.Regular, f.th.Light, "", 0)
	}
	f.cursorY += f.spacing(2.0)
	if f.th.Decoration != theme.DecorationNone {
		f.col.appendLineAt(f.col.pageIndex(), Line{
			X1: f.x, Y1: f.cursorY, X2: f.x + f.width, Y2: f.cursorY,
			Color: f.th.Accent, Width: 0.5,
		})
	}
	f.cursorY += f.spacing(4.0)
}

// itemMark 记录条目标题的实际落点（页索引与 y），供跨页装饰回填。
// 由 titleRow 在换页判定之后采集。
type itemMark struct {
	idx int
	y   float64
}

// itemEnd 按主题装饰条目：时间轴圆点/竖线或卡片底色。
// 卡片跨页时每页各画一段。
func (f *flow) itemEnd(mark itemMark, titleHeight float64) {
	switch f.th.Decoration {
	case theme.DecorationTimeline:
		cx := f.x + railDotX
		cy := mark.y + titleHeight/2
		accent := f.th.Accent
		f.col.appendCircleAt(mark.idx, Circle{
			CX: cx, CY: cy, R: 1.1,
			StrokeColor: accent, StrokeWidth: 0.3, FillColor: &accent,
		})
		lineEnd := f.cursorY
		if f.col.pageIndex() != mark.idx {
			lineEnd = f.col.contentBottom()
		}
		if lineEnd > cy+2.2 {
			f.col.appendLineAt(mark.idx, Line{
				X1: cx, Y1: cy + 2.2, X2: cx, Y2: lineEnd,
				Color: f.th.Light, Width: 0.3,
			})
		}
	case theme.DecorationCard:
		fill := blend(f.th.Accent, f.th.Background, 0.9)
		for p := mark.idx; p <= f.col.pageIndex(); p++ {
			y0 := f.col.contentTop()
			if p == mark.idx {
				y0 = mark.y - cardPadding
			}
			y1 := f.col.contentBottom()
			if p == f.col.pageIndex() {
				y1 = f.cursorY + cardPadding
			}
			if y1 <= y0 {
				continue
			}
			f.col.appendRectAt(p, Rect{
				X:           f.x - cardPadding,
				Y:           y0,
				Width:       f.width + 2*cardPadding,
				Height:      y1 - y0,
				StrokeColor: fill,
				StrokeWidth: 0,
				FillColor:   &fill,
			})
		}
	}
}

func (f *flow) experienceItem(exp resume.Experience, indent float64) {
	title := joinNonEmpty(", ", exp.Title, exp.Company)
	mark := f.titleRow(title, exp.DateRange(), indent)
	titleH := f.cursorY - mark.y
	if exp.Location != "" {
		f.cursorY += f.spacing(0.6)
		f.paragraph(exp.Location, sizeSmall, font.Regular, f.th.Light, "", indent)
	}
	if exp.Description != "" {
		f.cursorY += f.spacing(1.0)
		f.paragraph(exp.Description, sizeBody, font.Regular, f.th.Text, "", indent)
	}
	f.highlights(exp.Highlights, indent)
	f.technologies(exp.Technologies, indent)
	f.itemEnd(mark, titleH)
}

func (f *flow) projectItem(p resume.Project, indent float64) {
	mark := f.titleRow(p.Name, p.URL, indent)
	titleH := f.cursorY - mark.y
	if p.Description != "" {
		f.cursorY += f.spacing(1.0)
		f.paragraph(p.Description, sizeBody, font.Regular, f.th.Text, "", indent)
	}
	f.highlights(p.Highlights, indent)
	f.technologies(p.Technologies, indent)
	f.itemEnd(mark, titleH)
}

func (f *flow) educationItem(edu resume.Education, indent float64) {
	mark := f.titleRow(edu.Institution, edu.DateRange(), indent)
	titleH := f.cursorY - mark.y
	sub := joinNonEmpty(", ", edu.Degree, edu.Field)
	if sub != "" {
		f.cursorY += f.spacing(0.6)
		f.paragraph(sub, sizeBody, font.Regular, f.th.Secondary, "", indent)
	}
	if edu.Description != "" {
		f.cursorY += f.spacing(1.0)
		f.paragraph(edu.Description, sizeBody, font.Regular, f.th.Text, "", indent)
	}
	f.itemEnd(mark, titleH)
}

func (f *flow) skillGroup(s resume.SkillGroup) {
	content := s.Category
	items := strings.Join(s.Items, ", ")
	if content != "" && items != "" {
		content += ": " + items
	} else if items != "" {
		content = items
	}
	f.paragraph(content, sizeBody, font.Regular, f.th.Text, "", 0)
}

// highlights 渲染亮点列表，数量封顶（引擎常量）。
func (f *flow) highlights(hl []string, indent float64) {
	if len(hl) > maxHighlights {
		f.eng.cfg.Logger.Warn("亮点数量超过上限，截断渲染",
			zap.Int("total", len(hl)), zap.Int("cap", maxHighlights))
		hl = hl[:maxHighlights]
	}
	for _, h := range hl {
		if strings.TrimSpace(h) == "" {
			continue
		}
		f.cursorY += f.spacing(0.8)
		f.paragraph(bulletPrefix+h, sizeBody, font.Regular, f.th.Text, "", indent+2.5)
	}
}

func (f *flow) technologies(tech []string, indent float64) {
	if len(tech) == 0 {
		return
	}
	f.cursorY += f.spacing(0.8)
	f.paragraph(strings.Join(tech, " · "), sizeSmall, font.Regular, f.th.Light, "", indent)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// blend 把 a 向 b 按比例 k 混合（k=1 即 b）。用于卡片底色。
func blend(a, b theme.Color, k float64) theme.Color {
	return theme.Color{
		R: a.R + (b.R-a.R)*k,
		G: a.G + (b.G-a.G)*k,
		B: a.B + (b.B-a.B)*k,
	}
}
