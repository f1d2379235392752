package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"

	"schooltrends/cmd"
)

// runExport writes the selected data to a file and returns the path. The
// selection is assembled from the options the same way the web page reads
// its query string: zero years keep the dataset bounds, an empty metric
// list keeps the default selection.
func runExport(opts cmd.ExportOptions) (string, error) {
	sel := NewSelection()
	if opts.StartYear != 0 {
		sel.SetStartYear(opts.StartYear)
	}
	if opts.EndYear != 0 {
		sel.SetEndYear(opts.EndYear)
	}
	if len(opts.Metrics) > 0 {
		metrics := parseMetricList(strings.Join(opts.Metrics, ","))
		if len(metrics) == 0 {
			return "", fmt.Errorf("no valid metrics in %v", opts.Metrics)
		}
		sel.Metrics = metrics
	}

	format := strings.ToLower(opts.Format)
	path := opts.Path
	if path == "" {
		path = filepath.Join(opts.DataDir, "schooltrends."+format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	var err error
	switch format {
	case "xlsx":
		err = exportXLSX(sel, path)
	case "png":
		err = exportPNG(sel, path)
	case "html":
		err = exportHTML(sel, path)
	default:
		return "", fmt.Errorf("unsupported export format %q (use xlsx, png or html)", opts.Format)
	}
	if err != nil {
		return "", err
	}

	if logger != nil {
		logger.Info("Export written", "format", format, "path", path,
			"start", sel.StartYear, "end", sel.EndYear, "metrics", len(sel.Metrics))
	}
	return path, nil
}

// exportXLSX writes a data sheet with one row per year and one column per
// selected metric, plus a summary sheet of per-metric aggregates. Years
// where a metric has no data leave the cell blank.
func exportXLSX(sel Selection, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const dataSheet = "統計資料"
	f.SetSheetName("Sheet1", dataSheet)

	f.SetCellValue(dataSheet, "A1", "學年度")
	f.SetColWidth(dataSheet, "A", "A", 10)
	for i, id := range sel.Metrics {
		m, ok := MetricByID(id)
		if !ok {
			continue
		}
		col, _ := excelize.ColumnNumberToName(i + 2)
		f.SetCellValue(dataSheet, col+"1", m.Name)
		f.SetColWidth(dataSheet, col, col, 18)
	}

	for rowIdx, rec := range sel.Records() {
		row := rowIdx + 2
		f.SetCellValue(dataSheet, fmt.Sprintf("A%d", row), rec.Year)
		for i, id := range sel.Metrics {
			v, ok := rec.Value(id)
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+2, row)
			f.SetCellValue(dataSheet, cell, v)
		}
	}

	if err := addSummarySheet(f, sel); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// addSummarySheet appends per-metric aggregates for the exported range.
func addSummarySheet(f *excelize.File, sel Selection) error {
	db, err := NewStatsDB()
	if err != nil {
		return fmt.Errorf("failed to open stats store: %w", err)
	}
	defer db.Close()

	summaries, err := db.SummarizeRange(sel.StartYear, sel.EndYear)
	if err != nil {
		return fmt.Errorf("failed to summarize range: %w", err)
	}

	const sheet = "統計摘要"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"統計項目", "年數", "最小值", "最大值", "平均值", "期初", "期末", "變化率 (%)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 16)
	}

	selected := make(map[string]bool, len(sel.Metrics))
	for _, id := range sel.Metrics {
		selected[string(id)] = true
	}

	row := 2
	for _, s := range summaries {
		if !selected[s.Metric] {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.Years)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), s.Min)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.Max)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), s.Mean)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), s.First)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), s.Last)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), s.Change)
		row++
	}
	return nil
}

// exportPNG renders the selection as a static image. Every series is drawn
// as a line (area metrics keep their fill); the secondary y-axis is used
// only when the selection mixes left- and right-axis metrics, otherwise
// everything scales against the primary axis.
func exportPNG(sel Selection, path string) error {
	records := sel.Records()
	leftDomain, rightDomain := AxisDomains(records, sel.Metrics)

	hasLeft, hasRight := false, false
	for _, id := range sel.Metrics {
		if AxisOf(id) == AxisRight {
			hasRight = true
		} else {
			hasLeft = true
		}
	}
	useSecondary := hasLeft && hasRight

	var series []chart.Series
	for _, id := range sel.Metrics {
		m, ok := MetricByID(id)
		if !ok {
			continue
		}

		var xs, ys []float64
		for _, rec := range records {
			if v, present := rec.Value(id); present {
				xs = append(xs, float64(rec.Year))
				ys = append(ys, v)
			}
		}
		if len(xs) == 0 {
			continue
		}
		// Pad to at least two X values for go-chart
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}

		col := drawing.ColorFromHex(strings.TrimPrefix(m.Hex, "#"))
		st := chart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 2}
		if sel.Styles[id] == StyleArea {
			st.FillColor = col.WithAlpha(80)
		}

		s := chart.ContinuousSeries{Name: m.Name, XValues: xs, YValues: ys, Style: st}
		if useSecondary && m.Axis == AxisRight {
			s.YAxis = chart.YAxisSecondary
		}
		series = append(series, s)
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot for %d-%d", sel.StartYear, sel.EndYear)
	}

	primaryDomain := leftDomain
	if !hasLeft {
		primaryDomain = rightDomain
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("天主教學校統計趨勢 %d-%d", sel.StartYear, sel.EndYear),
		Width:      1200,
		Height:     640,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f + 0.5))
				}
				return ""
			},
		},
		YAxis:  chart.YAxis{Range: axisRange(primaryDomain)},
		Series: series,
	}
	if useSecondary {
		ch.YAxisSecondary = chart.YAxis{Range: axisRange(rightDomain)}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := ch.Render(chart.PNG, out); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// axisRange fixes a go-chart axis to the computed domain. Auto and
// degenerate domains return nil so the library picks its own scale.
func axisRange(d AxisDomain) chart.Range {
	if d.Auto || d.Lower == d.Upper {
		return nil
	}
	return &chart.ContinuousRange{Min: float64(d.Lower), Max: float64(d.Upper)}
}

// exportHTML writes the same interactive chart the web server serves.
func exportHTML(sel Selection, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := buildWebChart(sel).Render(out); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
