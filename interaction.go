package main

// pointClickMsg is the single normalized event every series style produces
// when one of its plotted data points is clicked. Bar columns, area fills
// and line markers all resolve to this shape before any state changes, so
// the state machine never branches on series style.
type pointClickMsg struct {
	Metric MetricID
	Record YearRecord
}

// backgroundClickMsg reports a click inside the chart that hit no data
// point. A click resolves to exactly one of pointClickMsg or
// backgroundClickMsg, never both.
type backgroundClickMsg struct{}

// Interaction is the chart's transient highlight state: at most one
// highlighted metric and one selected record, set together by a point
// click and cleared together by a background click or dismiss. Never
// persisted.
type Interaction struct {
	metric MetricID
	record YearRecord
	active bool
}

// Activate moves to the active state for the clicked point. Clicking
// another point while already active replaces the pair directly, with no
// intermediate idle step.
func (in *Interaction) Activate(id MetricID, r YearRecord) {
	in.metric = id
	in.record = r
	in.active = true
}

// Clear returns to idle.
func (in *Interaction) Clear() {
	*in = Interaction{}
}

// Active reports whether a point is selected.
func (in Interaction) Active() bool {
	return in.active
}

// Metric returns the highlighted metric while active.
func (in Interaction) Metric() (MetricID, bool) {
	return in.metric, in.active
}

// Record returns the selected record while active.
func (in Interaction) Record() (YearRecord, bool) {
	return in.record, in.active
}
