package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WebHandler serves the browser chart page.
type WebHandler struct{}

// ChartPage renders the trend chart for the selection encoded in the query
// string. A request that deselects every metric gets a notice page instead
// of an empty chart.
func (h *WebHandler) ChartPage(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(sel.Metrics) == 0 {
		fmt.Fprint(w, emptyChartPage)
		return
	}

	chart := buildWebChart(sel)
	if err := chart.Render(w); err != nil {
		log.Printf("Chart render error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

const emptyChartPage = `<!DOCTYPE html>
<html lang="zh-Hant">
<head><meta charset="utf-8"><title>天主教學校統計趨勢</title></head>
<body>
<h1>天主教學校統計趨勢</h1>
<p>尚未選擇統計項目。請在網址加上 metrics 參數，例如 ?metrics=students,schools</p>
</body>
</html>
`

// selectionFromQuery builds a Selection from the start, end, metrics and
// styles query parameters. Absent parameters keep the defaults. Unknown
// metric or style names are ignored, and a metrics parameter that names
// nothing valid yields an empty selection.
func selectionFromQuery(r *http.Request) Selection {
	sel := NewSelection()
	q := r.URL.Query()

	if v := q.Get("start"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			sel.SetStartYear(year)
		}
	}
	if v := q.Get("end"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			sel.SetEndYear(year)
		}
	}

	if q.Has("metrics") {
		sel.Metrics = parseMetricList(q.Get("metrics"))
	}

	for _, part := range strings.Split(q.Get("styles"), ",") {
		name, style, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		id := MetricID(strings.TrimSpace(name))
		if _, found := MetricByID(id); !found {
			continue
		}
		switch ChartStyle(strings.TrimSpace(style)) {
		case StyleLine, StyleBar, StyleArea:
			sel.Styles[id] = ChartStyle(strings.TrimSpace(style))
		}
	}

	return sel
}

// parseMetricList parses a comma separated list of metric IDs, dropping
// unknown names and duplicates while keeping first-seen order.
func parseMetricList(value string) []MetricID {
	var metrics []MetricID
	for _, part := range strings.Split(value, ",") {
		id := MetricID(strings.TrimSpace(part))
		if _, ok := MetricByID(id); !ok {
			continue
		}
		seen := false
		for _, existing := range metrics {
			if existing == id {
				seen = true
				break
			}
		}
		if !seen {
			metrics = append(metrics, id)
		}
	}
	return metrics
}

// buildWebChart assembles the dual-axis ECharts chart for a selection. The
// same chart backs the web page and the HTML export. Bar series live on an
// overlapped bar chart; line and area series go on the base line chart.
// Missing values are emitted as nil so the renderer leaves a gap instead of
// dropping to zero.
func buildWebChart(sel Selection) *charts.Line {
	records := sel.Records()
	leftDomain, rightDomain := AxisDomains(records, sel.Metrics)

	years := make([]string, len(records))
	for i, rec := range records {
		years[i] = strconv.Itoa(rec.Year)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "天主教學校統計趨勢",
			Width:     "1200px",
			Height:    "640px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "天主教學校統計趨勢",
			Subtitle: fmt.Sprintf("%d-%d 學年度", sel.StartYear, sel.EndYear),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "6%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "學年度",
		}),
		charts.WithYAxisOpts(axisOptions("人數", leftDomain)),
		charts.WithGridOpts(opts.Grid{
			Top:    "18%",
			Bottom: "10%",
		}),
	)
	right := axisOptions("數量 / 百分比", rightDomain)
	right.Position = "right"
	line.ExtendYAxis(right)
	line.SetXAxis(years)

	bar := charts.NewBar()
	bar.SetXAxis(years)
	hasBars := false

	for _, id := range sel.Metrics {
		m, ok := MetricByID(id)
		if !ok {
			continue
		}
		axisIndex := 0
		if m.Axis == AxisRight {
			axisIndex = 1
		}

		if sel.Styles[id] == StyleBar {
			bar.AddSeries(m.Name, barSeriesData(records, id),
				charts.WithBarChartOpts(opts.BarChart{YAxisIndex: axisIndex}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: m.Hex}),
			)
			hasBars = true
			continue
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: axisIndex}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: m.Hex}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: m.Hex}),
		}
		if sel.Styles[id] == StyleArea {
			seriesOpts = append(seriesOpts,
				charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.35)}))
		}
		line.AddSeries(m.Name, lineSeriesData(records, id), seriesOpts...)
	}

	if hasBars {
		line.Overlap(bar)
	}
	return line
}

// axisOptions fixes the axis to the computed domain. An auto domain leaves
// Min and Max unset so ECharts picks its own scale.
func axisOptions(name string, d AxisDomain) opts.YAxis {
	axis := opts.YAxis{Name: name}
	if !d.Auto {
		axis.Min = d.Lower
		axis.Max = d.Upper
	}
	return axis
}

func lineSeriesData(records []YearRecord, id MetricID) []opts.LineData {
	data := make([]opts.LineData, len(records))
	for i, rec := range records {
		if v, ok := rec.Value(id); ok {
			data[i] = opts.LineData{Value: v}
		} else {
			data[i] = opts.LineData{Value: nil}
		}
	}
	return data
}

func barSeriesData(records []YearRecord, id MetricID) []opts.BarData {
	data := make([]opts.BarData, len(records))
	for i, rec := range records {
		if v, ok := rec.Value(id); ok {
			data[i] = opts.BarData{Value: v}
		} else {
			data[i] = opts.BarData{Value: nil}
		}
	}
	return data
}
