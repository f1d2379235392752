package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

var (
	dimSeriesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	axisLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	axisLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// SeriesView is one frame of chart input: the filtered records, the
// selected metrics in selection order, the style per metric, and the
// highlight state. The chart re-derives everything else from it.
type SeriesView struct {
	Records     []YearRecord
	Selected    []MetricID
	Styles      map[MetricID]ChartStyle
	StartYear   int
	EndYear     int
	Highlight   MetricID
	Highlighted bool
	FocusYear   int // selected record's year while highlighted
}

// hitPoint is one clickable canvas cell. Marker cells are the data points
// themselves and accept near misses; body cells (bar columns, area fills)
// require an exact hit.
type hitPoint struct {
	X, Y   int
	Metric MetricID
	Record YearRecord
	Marker bool
}

// TrendChart draws the selected series onto one shared ntcharts canvas.
// Left-axis values set the canvas scale; right-axis series are rescaled
// into it point by point and the right margin carries their own labels.
// While drawing, every plotted point is recorded in a hit registry so a
// mouse click resolves to exactly one normalized event.
type TrendChart struct {
	lc     linechart.Model
	zm     *zone.Manager
	width  int
	height int

	view   SeriesView
	left   AxisDomain
	right  AxisDomain
	plane  AxisDomain // domain the canvas y-range is scaled to
	hits   []hitPoint
	gutter string
	drawn  bool
}

// NewTrendChart returns a chart bound to the zone manager for mouse
// support. Call SetSize and Draw before View.
func NewTrendChart(zm *zone.Manager) TrendChart {
	return TrendChart{zm: zm}
}

// SetSize sets the full widget size, label gutters included.
func (c *TrendChart) SetSize(width, height int) {
	if width < 24 {
		width = 24
	}
	if height < 6 {
		height = 6
	}
	c.width = width
	c.height = height
}

// ZoneID returns the id the canvas was marked with on the last Draw, for
// mouse lookups against the zone manager.
func (c *TrendChart) ZoneID() string {
	if !c.drawn {
		return ""
	}
	return c.lc.ZoneID()
}

// LeftDomain returns the left axis domain of the last Draw.
func (c *TrendChart) LeftDomain() AxisDomain {
	return c.left
}

// RightDomain returns the right axis domain of the last Draw.
func (c *TrendChart) RightDomain() AxisDomain {
	return c.right
}

// Draw recomputes axis domains, redraws the canvas and rebuilds the hit
// registry for the given frame.
func (c *TrendChart) Draw(v SeriesView) {
	c.view = v
	c.hits = nil
	c.left, c.right = AxisDomains(v.Records, v.Selected)

	// The canvas is scaled to the left domain when it has data; a chart
	// of right-axis series alone scales to the right domain directly.
	c.plane = c.left
	leftActive := !c.left.Auto
	rightActive := !c.right.Auto
	if !leftActive && rightActive {
		c.plane = c.right
	}
	if c.plane.Auto {
		c.plane = AxisDomain{Lower: 0, Upper: 1}
	}
	if c.plane.Upper == c.plane.Lower {
		// keep the canvas y-scale non-degenerate
		c.plane.Upper++
	}

	gutterWidth := 0
	if rightActive && leftActive {
		gutterWidth = c.rightGutterWidth()
	}

	maxX := float64(v.EndYear)
	if v.EndYear == v.StartYear {
		// a one-year window still needs a non-degenerate x-scale
		maxX++
	}

	lc := linechart.New(
		c.width-gutterWidth, c.height,
		float64(v.StartYear), maxX,
		float64(c.plane.Lower), float64(c.plane.Upper),
	)
	lc.AxisStyle = axisLineStyle
	lc.LabelStyle = axisLabelStyle
	lc.XLabelFormatter = func(_ int, val float64) string {
		return strconv.Itoa(int(math.Round(val)))
	}
	if leftActive || rightActive {
		lc.YLabelFormatter = func(_ int, val float64) string {
			return compactAxisLabel(val)
		}
	} else {
		lc.YLabelFormatter = func(int, float64) string { return "" }
	}
	lc.SetXStep(4)
	lc.SetZoneManager(c.zm)
	lc.UpdateGraphSizes()
	c.lc = lc
	c.drawn = true

	c.lc.DrawXYAxisAndLabel()

	highlight := v.Highlight
	dimPeers := v.Highlighted
	for _, id := range v.Selected {
		m, ok := MetricByID(id)
		if !ok {
			continue
		}
		c.drawSeries(m, v.Styles[id], dimPeers && id != highlight, v.Highlighted && id == highlight)
	}

	if rightActive && leftActive {
		c.gutter = c.renderRightGutter(gutterWidth)
	} else {
		c.gutter = ""
	}
}

// View renders the canvas, the right label gutter and the legend.
func (c *TrendChart) View() string {
	if !c.drawn {
		return ""
	}
	chart := c.lc.View()
	if c.gutter != "" {
		chart = lipgloss.JoinHorizontal(lipgloss.Top, chart, c.gutter)
	}
	return lipgloss.JoinVertical(lipgloss.Left, chart, c.legend())
}

// ResolveClick maps a click at canvas-relative coordinates to the single
// normalized event it stands for: the nearest registered data point within
// one cell, or the chart background. Exact hits beat near hits; among
// equal distances the series drawn last (topmost) wins.
func (c *TrendChart) ResolveClick(x, y int) tea.Msg {
	const tolerance = 1
	bestIdx := -1
	bestDist := tolerance + 1
	for i, h := range c.hits {
		d := chebyshev(h.X-x, h.Y-y)
		if h.Marker {
			if d > tolerance {
				continue
			}
		} else if d != 0 {
			continue
		}
		if d <= bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return backgroundClickMsg{}
	}
	h := c.hits[bestIdx]
	return pointClickMsg{Metric: h.Metric, Record: h.Record}
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}

// seriesPoints collects the present data points of one metric, rescaled
// into the canvas plane when the metric belongs to the other axis. Years
// with no value are skipped, so consecutive points bridge the gap.
func (c *TrendChart) seriesPoints(m Metric) ([]canvas.Float64Point, []YearRecord) {
	dom := c.left
	if m.Axis == AxisRight {
		dom = c.right
	}
	var pts []canvas.Float64Point
	var recs []YearRecord
	for _, r := range c.view.Records {
		v, ok := r.Value(m.ID)
		if !ok {
			continue
		}
		if !dom.Auto && dom != c.plane {
			v = Rescale(v, dom, c.plane)
		}
		pts = append(pts, canvas.Float64Point{X: float64(r.Year), Y: v})
		recs = append(recs, r)
	}
	return pts, recs
}

func (c *TrendChart) drawSeries(m Metric, style ChartStyle, dimmed, highlighted bool) {
	pts, recs := c.seriesPoints(m)
	if len(pts) == 0 {
		return
	}

	stroke := lipgloss.NewStyle().Foreground(m.Term)
	if highlighted {
		stroke = stroke.Bold(true)
	}
	if dimmed {
		stroke = dimSeriesStyle
	}

	switch style {
	case StyleBar:
		c.drawBars(m, pts, recs, stroke)
	case StyleArea:
		c.drawAreaFill(m, pts, recs, stroke)
		c.drawBrailleSeries(pts, stroke)
		c.registerMarkers(m, pts, recs)
	default:
		c.drawBrailleSeries(pts, stroke)
		c.registerMarkers(m, pts, recs)
	}

	if highlighted {
		c.drawMarkers(pts, recs, stroke)
	} else if len(pts) == 1 && style != StyleBar {
		// a single point has no segments, draw it so it is visible
		c.lc.DrawRuneWithStyle(pts[0], '●', stroke)
	}
}

// drawBars draws one single-cell column per present year, from the plane
// floor up to the value.
func (c *TrendChart) drawBars(m Metric, pts []canvas.Float64Point, recs []YearRecord, stroke lipgloss.Style) {
	base := float64(c.plane.Lower)
	for i, f := range pts {
		c.lc.DrawRuneLineWithStyle(canvas.Float64Point{X: f.X, Y: base}, f, '█', stroke)
		top := c.cellFor(f)
		bottom := c.cellFor(canvas.Float64Point{X: f.X, Y: base})
		for y := top.Y; y <= bottom.Y; y++ {
			c.addHit(canvas.Point{X: top.X, Y: y}, m.ID, recs[i], y == top.Y)
		}
	}
}

// drawAreaFill shades every cell column under the series line down to the
// plane floor, interpolating between neighboring points.
func (c *TrendChart) drawAreaFill(m Metric, pts []canvas.Float64Point, recs []YearRecord, stroke lipgloss.Style) {
	baseY := c.cellFor(canvas.Float64Point{X: float64(c.view.StartYear), Y: float64(c.plane.Lower)}).Y
	fill := canvas.NewCellWithStyle('░', stroke)

	column := func(x, topY int, id MetricID, rec YearRecord) {
		for y := topY; y <= baseY; y++ {
			p := canvas.Point{X: x, Y: y}
			if !c.inGraph(p) {
				continue
			}
			c.lc.Canvas.SetCell(p, fill)
			c.addHit(p, id, rec, false)
		}
	}

	if len(pts) == 1 {
		p := c.cellFor(pts[0])
		column(p.X, p.Y, m.ID, recs[0])
		return
	}
	for i := 0; i < len(pts)-1; i++ {
		pa := c.cellFor(pts[i])
		pb := c.cellFor(pts[i+1])
		for x := pa.X; x <= pb.X; x++ {
			t := 0.0
			if pb.X != pa.X {
				t = float64(x-pa.X) / float64(pb.X-pa.X)
			}
			topY := int(math.Round(float64(pa.Y) + t*float64(pb.Y-pa.Y)))
			rec := recs[i]
			if t > 0.5 {
				rec = recs[i+1]
			}
			column(x, topY, m.ID, rec)
		}
	}
}

// drawBrailleSeries connects consecutive present points with braille line
// segments accumulated on one grid, so segment junctions keep their dots.
func (c *TrendChart) drawBrailleSeries(pts []canvas.Float64Point, stroke lipgloss.Style) {
	if len(pts) < 2 {
		return
	}
	bGrid := graph.NewBrailleGrid(
		c.lc.GraphWidth(), c.lc.GraphHeight(),
		c.lc.MinX(), c.lc.MaxX(), c.lc.MinY(), c.lc.MaxY(),
	)
	prev := bGrid.GridPoint(pts[0])
	for _, f := range pts[1:] {
		cur := bGrid.GridPoint(f)
		for _, p := range graph.GetLinePoints(prev, cur) {
			bGrid.Set(p)
		}
		prev = cur
	}
	startX := 0
	if c.lc.YStep() > 0 {
		startX = c.lc.Origin().X + 1
	}
	graph.DrawBraillePatterns(&c.lc.Canvas, canvas.Point{X: startX, Y: 0}, bGrid.BraillePatterns(), stroke)
}

// drawMarkers draws the highlighted series' data points, with the selected
// year's point emphasized.
func (c *TrendChart) drawMarkers(pts []canvas.Float64Point, recs []YearRecord, stroke lipgloss.Style) {
	for i, f := range pts {
		r := '●'
		if recs[i].Year == c.view.FocusYear {
			r = '◉'
		}
		c.lc.DrawRuneWithStyle(f, r, stroke)
	}
}

func (c *TrendChart) registerMarkers(m Metric, pts []canvas.Float64Point, recs []YearRecord) {
	for i, f := range pts {
		c.addHit(c.cellFor(f), m.ID, recs[i], true)
	}
}

// cellFor maps a data point to its canvas cell the same way the linechart
// draw calls do, axis-avoidance offsets included.
func (c *TrendChart) cellFor(f canvas.Float64Point) canvas.Point {
	sf := c.lc.ScaleFloat64Point(f)
	p := canvas.CanvasPointFromFloat64Point(c.lc.Origin(), sf)
	if c.lc.YStep() > 0 {
		p.X++
	}
	if c.lc.XStep() > 0 {
		p.Y--
	}
	return p
}

func (c *TrendChart) inGraph(p canvas.Point) bool {
	origin := c.lc.Origin()
	return p.X > origin.X && p.X < c.lc.Width() && p.Y >= 0 && p.Y < origin.Y
}

func (c *TrendChart) addHit(p canvas.Point, id MetricID, rec YearRecord, marker bool) {
	if !c.inGraph(p) {
		return
	}
	c.hits = append(c.hits, hitPoint{X: p.X, Y: p.Y, Metric: id, Record: rec, Marker: marker})
}

// rightGutterWidth sizes the right label margin from the widest label the
// right domain can produce.
func (c *TrendChart) rightGutterWidth() int {
	w := len(compactAxisLabel(float64(c.right.Lower)))
	if n := len(compactAxisLabel(float64(c.right.Upper))); n > w {
		w = n
	}
	if n := len(compactAxisLabel(float64(c.right.Lower) + c.right.Span()/2)); n > w {
		w = n
	}
	return w + 1
}

// renderRightGutter draws the right axis labels at the same rows the
// canvas uses for the left axis, top-down.
func (c *TrendChart) renderRightGutter(width int) string {
	lines := make([]string, c.height)
	origin := c.lc.Origin()
	graphHeight := c.lc.GraphHeight()
	if graphHeight < 1 {
		graphHeight = 1
	}
	increment := c.right.Span() / float64(graphHeight)
	step := c.lc.YStep()
	if step <= 0 {
		step = 2
	}
	var lastVal string
	for i := 0; i <= graphHeight; i += step {
		row := origin.Y - i
		if row < 0 || row >= c.height {
			continue
		}
		v := float64(c.right.Lower) + increment*float64(i)
		s := compactAxisLabel(v)
		if s == lastVal {
			continue
		}
		lastVal = s
		lines[row] = " " + s
	}
	for i, s := range lines {
		lines[i] = axisLabelStyle.Render(padRight(s, width))
	}
	return strings.Join(lines, "\n")
}

// legend renders one colored bullet per selected series with its style
// label; the highlighted series is bold.
func (c *TrendChart) legend() string {
	var parts []string
	for _, id := range c.view.Selected {
		m, ok := MetricByID(id)
		if !ok {
			continue
		}
		st := lipgloss.NewStyle().Foreground(m.Term)
		name := m.Name
		if c.view.Highlighted && id == c.view.Highlight {
			st = st.Bold(true)
			name = "▶" + name
		}
		parts = append(parts, st.Render("● "+name+"("+c.view.Styles[id].Label()+")"))
	}
	return strings.Join(parts, "  ")
}

func compactAxisLabel(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100000:
		return fmt.Sprintf("%.0fk", v/1000)
	case av >= 10000:
		return fmt.Sprintf("%.1fk", v/1000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PlaceholderBox fills the chart pane when no metric is selected; the
// chart itself is not drawn at all in that state.
func PlaceholderBox(width, height int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Foreground(lipgloss.Color("241")).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render("尚未選擇統計項目\n\n請以空白鍵或滑鼠點選指標")
}

// DetailPanel shows every metric with a present value for the selected
// year: color swatch, display name and formatted value. Metrics without
// data that year are omitted entirely. The highlighted metric's row is
// bold.
func DetailPanel(rec YearRecord, highlight MetricID, width int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	nameWidth := 18
	valueWidth := width - nameWidth - 6
	if valueWidth < 8 {
		valueWidth = 8
	}

	rows := []string{titleStyle.Render(fmt.Sprintf("%d 年統計", rec.Year))}
	for _, m := range Metrics {
		v, ok := rec.Value(m.ID)
		if !ok {
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(m.Term).Render("●")
		nameStyle := lipgloss.NewStyle().Width(nameWidth)
		valueStyle := lipgloss.NewStyle().Width(valueWidth).Align(lipgloss.Right)
		if m.ID == highlight {
			nameStyle = nameStyle.Bold(true)
			valueStyle = valueStyle.Bold(true).Foreground(m.Term)
		}
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			swatch+" ",
			nameStyle.Render(m.Name),
			valueStyle.Render(FormatValue(m.ID, v)),
		))
	}
	rows = append(rows, hintStyle.Render("Esc 關閉 · c 複製"))

	m, _ := MetricByID(highlight)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Term).
		Padding(0, 1).
		Width(width)
	return boxStyle.Render(strings.Join(rows, "\n"))
}

// DetailPanelText is the plain-text detail panel used for clipboard copy.
func DetailPanelText(rec YearRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d 年統計\n", rec.Year)
	for _, m := range Metrics {
		v, ok := rec.Value(m.ID)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", m.Name, FormatValue(m.ID, v))
	}
	return b.String()
}
