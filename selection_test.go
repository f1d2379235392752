package main

import (
	"testing"
)

// TestNewSelection tests the default selection
func TestNewSelection(t *testing.T) {
	sel := NewSelection()

	if sel.StartYear != MinYear {
		t.Errorf("Expected start year %d, got %d", MinYear, sel.StartYear)
	}
	if sel.EndYear != MaxYear {
		t.Errorf("Expected end year %d, got %d", MaxYear, sel.EndYear)
	}
	if len(sel.Metrics) != 1 || sel.Metrics[0] != MetricStudents {
		t.Errorf("Expected student enrollment selected by default, got %v", sel.Metrics)
	}
	if len(sel.Styles) != len(Metrics) {
		t.Errorf("Expected a style for every metric, got %d", len(sel.Styles))
	}
}

// TestSetStartYear tests start year clamping and end year dragging
func TestSetStartYear(t *testing.T) {
	testCases := []struct {
		name          string
		year          int
		expectedStart int
		expectedEnd   int
	}{
		{"within range", 1990, 1990, MaxYear},
		{"below dataset minimum", 1900, MinYear, MaxYear},
		{"above dataset maximum", 2500, MaxYear, MaxYear},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sel := NewSelection()
			sel.SetStartYear(tc.year)

			if sel.StartYear != tc.expectedStart {
				t.Errorf("Expected start year %d, got %d", tc.expectedStart, sel.StartYear)
			}
			if sel.EndYear != tc.expectedEnd {
				t.Errorf("Expected end year %d, got %d", tc.expectedEnd, sel.EndYear)
			}
		})
	}
}

// TestSetStartYearDragsEnd tests the start <= end invariant
func TestSetStartYearDragsEnd(t *testing.T) {
	sel := NewSelection()
	sel.SetEndYear(2000)
	sel.SetStartYear(2010)

	if sel.StartYear != 2010 {
		t.Errorf("Expected start year 2010, got %d", sel.StartYear)
	}
	if sel.EndYear != 2010 {
		t.Errorf("Expected end year dragged to 2010, got %d", sel.EndYear)
	}
}

// TestSetEndYear tests end year clamping against the start
func TestSetEndYear(t *testing.T) {
	sel := NewSelection()
	sel.SetStartYear(1990)

	sel.SetEndYear(1980)
	if sel.EndYear != 1990 {
		t.Errorf("Expected end year held at start 1990, got %d", sel.EndYear)
	}
	if sel.StartYear != 1990 {
		t.Errorf("Expected start year unchanged, got %d", sel.StartYear)
	}

	sel.SetEndYear(2500)
	if sel.EndYear != MaxYear {
		t.Errorf("Expected end year clamped to %d, got %d", MaxYear, sel.EndYear)
	}
}

// TestToggleMetric tests order-preserving selection toggling
func TestToggleMetric(t *testing.T) {
	sel := NewSelection()

	sel.ToggleMetric(MetricSchools)
	sel.ToggleMetric(MetricStaff)

	expected := []MetricID{MetricStudents, MetricSchools, MetricStaff}
	if len(sel.Metrics) != len(expected) {
		t.Fatalf("Expected %d metrics, got %d", len(expected), len(sel.Metrics))
	}
	for i, id := range expected {
		if sel.Metrics[i] != id {
			t.Errorf("Expected %s at position %d, got %s", id, i, sel.Metrics[i])
		}
	}

	// Removing the middle entry keeps the order of the rest.
	sel.ToggleMetric(MetricSchools)
	expected = []MetricID{MetricStudents, MetricStaff}
	if len(sel.Metrics) != len(expected) {
		t.Fatalf("Expected %d metrics after removal, got %d", len(expected), len(sel.Metrics))
	}
	for i, id := range expected {
		if sel.Metrics[i] != id {
			t.Errorf("Expected %s at position %d, got %s", id, i, sel.Metrics[i])
		}
	}

	if sel.IsSelected(MetricSchools) {
		t.Error("Expected schools deselected")
	}
	if !sel.IsSelected(MetricStaff) {
		t.Error("Expected staff still selected")
	}
}

// TestToggleMetricEmptiesSelection tests that the last metric can be removed
func TestToggleMetricEmptiesSelection(t *testing.T) {
	sel := NewSelection()
	sel.ToggleMetric(MetricStudents)

	if len(sel.Metrics) != 0 {
		t.Errorf("Expected empty selection, got %v", sel.Metrics)
	}
}

// TestCycleStyle tests style cycling for selected metrics only
func TestCycleStyle(t *testing.T) {
	sel := NewSelection()

	sel.CycleStyle(MetricStudents)
	if sel.Styles[MetricStudents] != StyleLine {
		t.Errorf("Expected area to cycle to line, got %s", sel.Styles[MetricStudents])
	}
	sel.CycleStyle(MetricStudents)
	if sel.Styles[MetricStudents] != StyleBar {
		t.Errorf("Expected line to cycle to bar, got %s", sel.Styles[MetricStudents])
	}

	// Deselected metrics keep their style.
	sel.CycleStyle(MetricSchools)
	if sel.Styles[MetricSchools] != StyleBar {
		t.Errorf("Expected deselected schools to keep bar, got %s", sel.Styles[MetricSchools])
	}
}

// TestSelectionReset tests restoring the defaults
func TestSelectionReset(t *testing.T) {
	sel := NewSelection()
	sel.SetStartYear(1990)
	sel.SetEndYear(2000)
	sel.ToggleMetric(MetricSchools)
	sel.CycleStyle(MetricSchools)

	sel.Reset()

	if sel.StartYear != MinYear || sel.EndYear != MaxYear {
		t.Errorf("Expected full range after reset, got %d-%d", sel.StartYear, sel.EndYear)
	}
	if len(sel.Metrics) != 1 || sel.Metrics[0] != MetricStudents {
		t.Errorf("Expected default metric after reset, got %v", sel.Metrics)
	}
	if sel.Styles[MetricSchools] != StyleBar {
		t.Errorf("Expected default style after reset, got %s", sel.Styles[MetricSchools])
	}
}

// TestSelectionRecords tests the filtered record window
func TestSelectionRecords(t *testing.T) {
	sel := MockSelection(1980, 1989, MetricStudents)

	records := sel.Records()
	if len(records) != 10 {
		t.Fatalf("Expected 10 records, got %d", len(records))
	}
	if records[0].Year != 1980 || records[9].Year != 1989 {
		t.Errorf("Expected window 1980-1989, got %d-%d", records[0].Year, records[9].Year)
	}
}
