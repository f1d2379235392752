package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MetricID identifies one plottable statistical series.
type MetricID string

const (
	MetricSchools       MetricID = "schools"
	MetricStudents      MetricID = "students"
	MetricStaff         MetricID = "staff"
	MetricCatholicStaff MetricID = "catholicStaff"
	MetricLayStaff      MetricID = "layStaff"
	MetricCatholicRate  MetricID = "catholicRate"
)

// Axis is the y-axis a metric is scaled against.
type Axis int

const (
	AxisLeft Axis = iota
	AxisRight
)

// ChartStyle selects how a series is drawn.
type ChartStyle string

const (
	StyleLine ChartStyle = "line"
	StyleBar  ChartStyle = "bar"
	StyleArea ChartStyle = "area"
)

// Next cycles line -> bar -> area -> line.
func (s ChartStyle) Next() ChartStyle {
	switch s {
	case StyleLine:
		return StyleBar
	case StyleBar:
		return StyleArea
	default:
		return StyleLine
	}
}

// Label returns the fixed display label for a style.
func (s ChartStyle) Label() string {
	switch s {
	case StyleBar:
		return "柱狀"
	case StyleArea:
		return "面積"
	default:
		return "折線"
	}
}

// Metric describes one entry of the closed metric registry. Display name,
// colors, axis side and default style are fixed at compile time.
type Metric struct {
	ID           MetricID
	Name         string
	Hex          string         // web and image exports
	Term         lipgloss.Color // terminal rendering
	Axis         Axis
	DefaultStyle ChartStyle
	Percent      bool
}

// Metrics is the registry, in fixed display order. Small-magnitude counts
// (school count) and percentages scale against the right axis; absolute
// magnitudes (students, staff) against the left.
var Metrics = []Metric{
	{ID: MetricSchools, Name: "學校數量", Hex: "#1f77b4", Term: lipgloss.Color("33"), Axis: AxisRight, DefaultStyle: StyleBar},
	{ID: MetricStudents, Name: "學生人數", Hex: "#2ca02c", Term: lipgloss.Color("82"), Axis: AxisLeft, DefaultStyle: StyleArea},
	{ID: MetricStaff, Name: "教職員總數", Hex: "#ff7f0e", Term: lipgloss.Color("208"), Axis: AxisLeft, DefaultStyle: StyleLine},
	{ID: MetricCatholicStaff, Name: "天主教教職員", Hex: "#9467bd", Term: lipgloss.Color("141"), Axis: AxisLeft, DefaultStyle: StyleLine},
	{ID: MetricLayStaff, Name: "非天主教教職員", Hex: "#8c564b", Term: lipgloss.Color("94"), Axis: AxisLeft, DefaultStyle: StyleLine},
	{ID: MetricCatholicRate, Name: "天主教教職員百分比", Hex: "#d62728", Term: lipgloss.Color("196"), Axis: AxisRight, DefaultStyle: StyleLine, Percent: true},
}

// MetricByID looks a metric up in the registry.
func MetricByID(id MetricID) (Metric, bool) {
	for _, m := range Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// AxisOf returns the static axis assignment for a metric. Unknown metrics
// fall back to the left axis.
func AxisOf(id MetricID) Axis {
	if m, ok := MetricByID(id); ok {
		return m.Axis
	}
	return AxisLeft
}

// DefaultStyles returns a fresh style map with every metric on its default.
func DefaultStyles() map[MetricID]ChartStyle {
	styles := make(map[MetricID]ChartStyle, len(Metrics))
	for _, m := range Metrics {
		styles[m.ID] = m.DefaultStyle
	}
	return styles
}

/// DefaultMetrics returns the default selection: student enrollment only.
func DefaultMetrics() []MetricID {
	return []MetricID{MetricStudents}
}

// YearRecord holds one school year's statistics. A metric missing from
// Values has no data for that year, which is different from zero.
type YearRecord struct {
	Year   int                  `json:"year"`
	Values map[MetricID]float64 `json:"values"`
}

// Value returns the metric's value and whether it is present.
func (r YearRecord) Value(id MetricID) (float64, bool) {
	v, ok := r.Values[id]
	return v, ok
}

// Has reports whether the metric has data for this year.
func (r YearRecord) Has(id MetricID) bool {
	_, ok := r.Values[id]
	return ok
}

// yearRecords is the compiled-in dataset, ordered by year. School and
// student counts run the full range; staff breakdowns begin in 1985.
var yearRecords = []YearRecord{
	{Year: 1970, Values: map[MetricID]float64{MetricSchools: 277, MetricStudents: 221000}},
	{Year: 1971, Values: map[MetricID]float64{MetricSchools: 285, MetricStudents: 233280}},
	{Year: 1972, Values: map[MetricID]float64{MetricSchools: 284, MetricStudents: 239440}},
	{Year: 1973, Values: map[MetricID]float64{MetricSchools: 285, MetricStudents: 253240}},
	{Year: 1974, Values: map[MetricID]float64{MetricSchools: 295, MetricStudents: 261970}},
	{Year: 1975, Values: map[MetricID]float64{MetricSchools: 300, MetricStudents: 268320}},
	{Year: 1976, Values: map[MetricID]float64{MetricSchools: 298, MetricStudents: 280960}},
	{Year: 1977, Values: map[MetricID]float64{MetricSchools: 302, MetricStudents: 285200}},
	{Year: 1978, Values: map[MetricID]float64{MetricSchools: 311, MetricStudents: 291560}},
	{Year: 1979, Values: map[MetricID]float64{MetricSchools: 313, MetricStudents: 300340}},
	{Year: 1980, Values: map[MetricID]float64{MetricSchools: 311, MetricStudents: 300320}},
	{Year: 1981, Values: map[MetricID]float64{MetricSchools: 317, MetricStudents: 305870}},
	{Year: 1982, Values: map[MetricID]float64{MetricSchools: 325, MetricStudents: 308860}},
	{Year: 1983, Values: map[MetricID]float64{MetricSchools: 323, MetricStudents: 305600}},
	{Year: 1984, Values: map[MetricID]float64{MetricSchools: 322, MetricStudents: 307090}},
	{Year: 1985, Values: map[MetricID]float64{MetricSchools: 330, MetricStudents: 302940, MetricStaff: 10400, MetricCatholicStaff: 3650, MetricLayStaff: 6750, MetricCatholicRate: 35.1}},
	{Year: 1986, Values: map[MetricID]float64{MetricSchools: 334, MetricStudents: 298320, MetricStaff: 10779, MetricCatholicStaff: 3671, MetricLayStaff: 7108, MetricCatholicRate: 34.1}},
	{Year: 1987, Values: map[MetricID]float64{MetricSchools: 330, MetricStudents: 299970, MetricStaff: 11106, MetricCatholicStaff: 3652, MetricLayStaff: 7454, MetricCatholicRate: 32.9}},
	{Year: 1988, Values: map[MetricID]float64{MetricSchools: 331, MetricStudents: 293730, MetricStaff: 11339, MetricCatholicStaff: 3579, MetricLayStaff: 7760, MetricCatholicRate: 31.6}},
	{Year: 1989, Values: map[MetricID]float64{MetricSchools: 339, MetricStudents: 291730, MetricStaff: 11456, MetricCatholicStaff: 3469, MetricLayStaff: 7987, MetricCatholicRate: 30.3}},
	{Year: 1990, Values: map[MetricID]float64{MetricSchools: 339, MetricStudents: 291960, MetricStaff: 11457, MetricCatholicStaff: 3362, MetricLayStaff: 8095, MetricCatholicRate: 29.3}},
	{Year: 1991, Values: map[MetricID]float64{MetricSchools: 334, MetricStudents: 284980, MetricStaff: 11364, MetricCatholicStaff: 3296, MetricLayStaff: 8068, MetricCatholicRate: 29.0}},
	{Year: 1992, Values: map[MetricID]float64{MetricSchools: 337, MetricStudents: 285390, MetricStaff: 11221, MetricCatholicStaff: 3285, MetricLayStaff: 7936, MetricCatholicRate: 29.3}},
	{Year: 1993, Values: map[MetricID]float64{MetricSchools: 343, MetricStudents: 283170, MetricStaff: 11078, MetricCatholicStaff: 3308, MetricLayStaff: 7770, MetricCatholicRate: 29.9}},
	{Year: 1994, Values: map[MetricID]float64{MetricSchools: 339, MetricStudents: 277060, MetricStaff: 10989, MetricCatholicStaff: 3325, MetricLayStaff: 7664, MetricCatholicRate: 30.3}},
	{Year: 1995, Values: map[MetricID]float64{MetricSchools: 332, MetricStudents: 278750, MetricStaff: 10993, MetricCatholicStaff: 3299, MetricLayStaff: 7694, MetricCatholicRate: 30.0}},
	{Year: 1996, Values: map[MetricID]float64{MetricSchools: 334, MetricStudents: 273940, MetricStaff: 11115, MetricCatholicStaff: 3219, MetricLayStaff: 7896, MetricCatholicRate: 29.0}},
	{Year: 1997, Values: map[MetricID]float64{MetricSchools: 334, MetricStudents: 270000, MetricStaff: 11352, MetricCatholicStaff: 3106, MetricLayStaff: 8246, MetricCatholicRate: 27.4}},
	{Year: 1998, Values: map[MetricID]float64{MetricSchools: 326, MetricStudents: 271400, MetricStaff: 11682, MetricCatholicStaff: 3003, MetricLayStaff: 8679, MetricCatholicRate: 25.7}},
	{Year: 1999, Values: map[MetricID]float64{MetricSchools: 322, MetricStudents: 264810, MetricStaff: 12062, MetricCatholicStaff: 2946, MetricLayStaff: 9116, MetricCatholicRate: 24.4}},
	{Year: 2000, Values: map[MetricID]float64{MetricSchools: 325, MetricStudents: 263520, MetricStaff: 12440, MetricCatholicStaff: 2942, MetricLayStaff: 9498, MetricCatholicRate: 23.6}},
	{Year: 2001, Values: map[MetricID]float64{MetricSchools: 322, MetricStudents: 263160, MetricStaff: 12764, MetricCatholicStaff: 2967, MetricLayStaff: 9797, MetricCatholicRate: 23.2}},
	{Year: 2002, Values: map[MetricID]float64{MetricSchools: 313, MetricStudents: 256260, MetricStaff: 12994, MetricCatholicStaff: 2979, MetricLayStaff: 10015, MetricCatholicRate: 22.9}},
	{Year: 2003, Values: map[MetricID]float64{MetricSchools: 312, MetricStudents: 257150, MetricStaff: 13106, MetricCatholicStaff: 2945, MetricLayStaff: 10161, MetricCatholicRate: 22.5}},
	{Year: 2004, Values: map[MetricID]float64{MetricSchools: 315, MetricStudents: 255100, MetricStaff: 13102, MetricCatholicStaff: 2858, MetricLayStaff: 10244, MetricCatholicRate: 21.8}},
	{Year: 2005, Values: map[MetricID]float64{MetricSchools: 309, MetricStudents: 250380, MetricStaff: 13007, MetricCatholicStaff: 2744, MetricLayStaff: 10263, MetricCatholicRate: 21.1}},
	{Year: 2006, Values: map[MetricID]float64{MetricSchools: 301, MetricStudents: 253060, MetricStaff: 12863, MetricCatholicStaff: 2646, MetricLayStaff: 10217, MetricCatholicRate: 20.6}},
	{Year: 2007, Values: map[MetricID]float64{MetricSchools: 303, MetricStudents: 248540, MetricStaff: 12721, MetricCatholicStaff: 2597, MetricLayStaff: 10124, MetricCatholicRate: 20.4}},
	{Year: 2008, Values: map[MetricID]float64{MetricSchools: 304, MetricStudents: 246220, MetricStaff: 12635, MetricCatholicStaff: 2599, MetricLayStaff: 10036, MetricCatholicRate: 20.6}},
	{Year: 2009, Values: map[MetricID]float64{MetricSchools: 296, MetricStudents: 248170, MetricStaff: 12643, MetricCatholicStaff: 2625, MetricLayStaff: 10018, MetricCatholicRate: 20.8}},
	{Year: 2010, Values: map[MetricID]float64{MetricSchools: 291, MetricStudents: 242230, MetricStaff: 12769, MetricCatholicStaff: 2632, MetricLayStaff: 10137, MetricCatholicRate: 20.6}},
	{Year: 2011, Values: map[MetricID]float64{MetricSchools: 294, MetricStudents: 242530, MetricStaff: 13011, MetricCatholicStaff: 2590, MetricLayStaff: 10421, MetricCatholicRate: 19.9}},
	{Year: 2012, Values: map[MetricID]float64{MetricSchools: 292, MetricStudents: 234300, MetricStaff: 13343, MetricCatholicStaff: 2496, MetricLayStaff: 10847, MetricCatholicRate: 18.7}},
	{Year: 2013, Values: map[MetricID]float64{MetricSchools: 283, MetricStudents: 227600, MetricStaff: 13724, MetricCatholicStaff: 2382, MetricLayStaff: 11342, MetricCatholicRate: 17.4}},
	{Year: 2014, Values: map[MetricID]float64{MetricSchools: 281, MetricStudents: 228890, MetricStaff: 14101, MetricCatholicStaff: 2290, MetricLayStaff: 11811, MetricCatholicRate: 16.2}},
	{Year: 2015, Values: map[MetricID]float64{MetricSchools: 284, MetricStudents: 225210, MetricStaff: 14422, MetricCatholicStaff: 2248, MetricLayStaff: 12174, MetricCatholicRate: 15.6}},
	{Year: 2016, Values: map[MetricID]float64{MetricSchools: 279, MetricStudents: 220160, MetricStaff: 14648, MetricCatholicStaff: 2257, MetricLayStaff: 12391, MetricCatholicRate: 15.4}},
	{Year: 2017, Values: map[MetricID]float64{MetricSchools: 271, MetricStudents: 221900, MetricStaff: 14755, MetricCatholicStaff: 2283, MetricLayStaff: 12472, MetricCatholicRate: 15.5}},
	{Year: 2018, Values: map[MetricID]float64{MetricSchools: 271, MetricStudents: 215970, MetricStaff: 14748, MetricCatholicStaff: 2284, MetricLayStaff: 12464, MetricCatholicRate: 15.5}},
	{Year: 2019, Values: map[MetricID]float64{MetricSchools: 273, MetricStudents: 213470, MetricStaff: 14650, MetricCatholicStaff: 2233, MetricLayStaff: 12417, MetricCatholicRate: 15.2}},
	{Year: 2020, Values: map[MetricID]float64{MetricSchools: 265, MetricStudents: 214070, MetricStaff: 14505, MetricCatholicStaff: 2134, MetricLayStaff: 12371, MetricCatholicRate: 14.7}},
	{Year: 2021, Values: map[MetricID]float64{MetricSchools: 260, MetricStudents: 207110, MetricStaff: 14365, MetricCatholicStaff: 2021, MetricLayStaff: 12344, MetricCatholicRate: 14.1}},
	{Year: 2022, Values: map[MetricID]float64{MetricSchools: 262, MetricStudents: 207120, MetricStaff: 14281, MetricCatholicStaff: 1935, MetricLayStaff: 12346, MetricCatholicRate: 13.5}},
	{Year: 2023, Values: map[MetricID]float64{MetricSchools: 261, MetricStudents: 205400, MetricStaff: 14294, MetricCatholicStaff: 1902, MetricLayStaff: 12392, MetricCatholicRate: 13.3}},
}

// Derived dataset constants.
var (
	MinYear = yearRecords[0].Year
	MaxYear = yearRecords[len(yearRecords)-1].Year
	Years   = allYears()
)

func allYears() []int {
	years := make([]int, len(yearRecords))
	for i, r := range yearRecords {
		years[i] = r.Year
	}
	return years
}

// AllRecords returns the full ordered dataset.
func AllRecords() []YearRecord {
	return yearRecords
}

// FilterRecords returns the contiguous run of records with
// start <= Year <= end, in dataset order.
func FilterRecords(start, end int) []YearRecord {
	var out []YearRecord
	for _, r := range yearRecords {
		if r.Year >= start && r.Year <= end {
			out = append(out, r)
		}
	}
	return out
}

// RecordForYear returns the record for one year.
func RecordForYear(year int) (YearRecord, bool) {
	for _, r := range yearRecords {
		if r.Year == year {
			return r, true
		}
	}
	return YearRecord{}, false
}

/// FormatValue renders a metric value for display: percentages with one
// decimal and a % suffix, counts with thousands grouping.
func FormatValue(id MetricID, v float64) string {
	if m, ok := MetricByID(id); ok && m.Percent {
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	}
	return groupThousands(int64(v + 0.5))
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
