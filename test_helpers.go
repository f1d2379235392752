package main

import (
	"testing"
)

// SetupTestDB opens an in-memory statistics database seeded with the full
// dataset.
func SetupTestDB(t *testing.T) (*StatsDB, func()) {
	t.Helper()

	db, err := NewStatsDB()
	if err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

// MockRecords builds synthetic records for one metric, one record per year
// starting at startYear.
func MockRecords(id MetricID, startYear int, values ...float64) []YearRecord {
	records := make([]YearRecord, len(values))
	for i, v := range values {
		records[i] = YearRecord{
			Year:   startYear + i,
			Values: map[MetricID]float64{id: v},
		}
	}
	return records
}

// MockSelection returns a selection over the given range with exactly the
// given metrics plotted, every style on its default.
func MockSelection(start, end int, metrics ...MetricID) Selection {
	sel := NewSelection()
	sel.SetStartYear(start)
	sel.SetEndYear(end)
	sel.Metrics = metrics
	return sel
}
