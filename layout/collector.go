package layout

// pageAccumulator 收集单页的绘制操作。
type pageAccumulator struct {
	texts   []TextBox
	lines   []Line
	rects   []Rect
	circles []Circle
}

// pageCollector 维护页面序列与内容区域边界。
// 装饰可以按页索引回填（卡片可能跨页，圆点属于条目首页）。
type pageCollector struct {
	width   float64
	height  float64
	margin  Margin
	accs    []*pageAccumulator
	current int
}

func newPageCollector(width, height float64, margin Margin) *pageCollector {
	pc := &pageCollector{width: width, height: height, margin: margin}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() {
	pc.accs = append(pc.accs, &pageAccumulator{})
	pc.current = len(pc.accs) - 1
}

// pageIndex 返回当前页索引（0 起）。
func (pc *pageCollector) pageIndex() int { return pc.current }

func (pc *pageCollector) contentTop() float64    { return pc.margin.Top }
func (pc *pageCollector) contentBottom() float64 { return pc.height - pc.margin.Bottom }

func (pc *pageCollector) appendText(tb TextBox) {
	acc := pc.accs[pc.current]
	acc.texts = append(acc.texts, tb)
}

func (pc *pageCollector) appendLineAt(page int, ln Line) {
	if page < 0 || page >= len(pc.accs) {
		return
	}
	acc := pc.accs[page]
	acc.lines = append(acc.lines, ln)
}

func (pc *pageCollector) appendRectAt(page int, rc Rect) {
	if page < 0 || page >= len(pc.accs) {
		return
	}
	acc := pc.accs[page]
	acc.rects = append(acc.rects, rc)
}

func (pc *pageCollector) appendCircleAt(page int, c Circle) {
	if page < 0 || page >= len(pc.accs) {
		return
	}
	acc := pc.accs[page]
	acc.circles = append(acc.circles, c)
}

// pages 把累积结果固化为不可变页面序列。
func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:   pc.width,
			Height:  pc.height,
			Margin:  pc.margin,
			Texts:   acc.texts,
			Lines:   acc.lines,
			Rects:   acc.rects,
			Circles: acc.circles,
		}
	}
	return out
}
