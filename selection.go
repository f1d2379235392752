package main

// Selection is the user's chosen year range, plotted metric set and chart
// style per metric. It is owned by the top-level model and handed to the
// renderer as read-only data.
type Selection struct {
	StartYear int
	EndYear   int
	Metrics   []MetricID // selection order, kept for stable series ordering
	Styles    map[MetricID]ChartStyle
}

// NewSelection returns the default selection: the full dataset range with
// student enrollment plotted and every metric on its default style.
func NewSelection() Selection {
	return Selection{
		StartYear: MinYear,
		EndYear:   MaxYear,
		Metrics:   DefaultMetrics(),
		Styles:    DefaultStyles(),
	}
}

// Reset restores the defaults.
func (s *Selection) Reset() {
	*s = NewSelection()
}

// SetStartYear clamps the start year to the dataset range. Raising it above
// the current end year drags the end year up to match, so start <= end
// always holds.
func (s *Selection) SetStartYear(year int) {
	s.StartYear = clampYear(year)
	if s.StartYear > s.EndYear {
		s.EndYear = s.StartYear
	}
}

// SetEndYear clamps the end year to [start year, dataset max]. Values below
// the start year are disallowed rather than moving the start.
func (s *Selection) SetEndYear(year int) {
	s.EndYear = clampYear(year)
	if s.EndYear < s.StartYear {
		s.EndYear = s.StartYear
	}
}

func clampYear(year int) int {
	if year < MinYear {
		return MinYear
	}
	if year > MaxYear {
		return MaxYear
	}
	return year
}

// IsSelected reports whether the metric is currently plotted.
func (s *Selection) IsSelected(id MetricID) bool {
	for _, m := range s.Metrics {
		if m == id {
			return true
		}
	}
	return false
}

// ToggleMetric adds the metric to the plotted set, or removes it if already
// present. Remaining metrics keep their selection order.
func (s *Selection) ToggleMetric(id MetricID) {
	for i, m := range s.Metrics {
		if m == id {
			s.Metrics = append(s.Metrics[:i], s.Metrics[i+1:]...)
			return
		}
	}
	s.Metrics = append(s.Metrics, id)
}

// CycleStyle advances the metric's chart style. It does nothing unless the
// metric is selected; the style selector is disabled otherwise.
func (s *Selection) CycleStyle(id MetricID) {
	if !s.IsSelected(id) {
		return
	}
	s.Styles[id] = s.Styles[id].Next()
}

// Records returns the contiguous dataset slice for the chosen year range.
func (s *Selection) Records() []YearRecord {
	return FilterRecords(s.StartYear, s.EndYear)
}
