package main

import (
	"testing"
)

// TestInteractionIdle tests the zero value
func TestInteractionIdle(t *testing.T) {
	var in Interaction

	if in.Active() {
		t.Error("Expected idle interaction")
	}
	if _, ok := in.Metric(); ok {
		t.Error("Expected no highlighted metric while idle")
	}
	if _, ok := in.Record(); ok {
		t.Error("Expected no selected record while idle")
	}
}

// TestInteractionActivate tests entering the active state
func TestInteractionActivate(t *testing.T) {
	var in Interaction
	rec, _ := RecordForYear(1993)

	in.Activate(MetricSchools, rec)

	if !in.Active() {
		t.Fatal("Expected active interaction")
	}
	id, ok := in.Metric()
	if !ok || id != MetricSchools {
		t.Errorf("Expected schools highlighted, got %s (ok=%v)", id, ok)
	}
	got, ok := in.Record()
	if !ok || got.Year != 1993 {
		t.Errorf("Expected 1993 selected, got %d (ok=%v)", got.Year, ok)
	}
}

// TestInteractionReplace tests clicking another point while active
func TestInteractionReplace(t *testing.T) {
	var in Interaction
	first, _ := RecordForYear(1980)
	second, _ := RecordForYear(2000)

	in.Activate(MetricSchools, first)
	in.Activate(MetricStudents, second)

	if !in.Active() {
		t.Fatal("Expected interaction to stay active across replacement")
	}
	id, _ := in.Metric()
	if id != MetricStudents {
		t.Errorf("Expected students after replacement, got %s", id)
	}
	rec, _ := in.Record()
	if rec.Year != 2000 {
		t.Errorf("Expected 2000 after replacement, got %d", rec.Year)
	}
}

// TestInteractionClear tests returning to idle
func TestInteractionClear(t *testing.T) {
	var in Interaction
	rec, _ := RecordForYear(1985)

	in.Activate(MetricStaff, rec)
	in.Clear()

	if in.Active() {
		t.Error("Expected idle interaction after clear")
	}
	if id, _ := in.Metric(); id != "" {
		t.Errorf("Expected metric wiped after clear, got %s", id)
	}
}
