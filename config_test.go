package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfigMissingFile tests that a missing config is not an error
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for missing config, got %v", err)
	}
	if cfg.StartYear != 0 || cfg.EndYear != 0 {
		t.Errorf("Expected zero-value config, got %+v", cfg)
	}
	if len(cfg.Metrics) != 0 {
		t.Errorf("Expected no configured metrics, got %v", cfg.Metrics)
	}
}

// TestLoadConfig tests reading a well-formed config file
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `start_year: 1990
end_year: 2010
metrics:
  - students
  - catholicRate
styles:
  students: line
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.StartYear != 1990 {
		t.Errorf("Expected start year 1990, got %d", cfg.StartYear)
	}
	if cfg.EndYear != 2010 {
		t.Errorf("Expected end year 2010, got %d", cfg.EndYear)
	}
	if len(cfg.Metrics) != 2 {
		t.Fatalf("Expected 2 metrics, got %d", len(cfg.Metrics))
	}
	if cfg.Styles["students"] != "line" {
		t.Errorf("Expected line style for students, got %s", cfg.Styles["students"])
	}
}

// TestLoadConfigInvalidYAML tests the parse error fallback
func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("metrics: [unclosed"), 0644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("Expected parse error for broken YAML")
	}
	if cfg.StartYear != 0 || len(cfg.Metrics) != 0 {
		t.Errorf("Expected defaults on parse failure, got %+v", cfg)
	}
}

// TestConfigApply tests overlaying config values onto a selection
func TestConfigApply(t *testing.T) {
	testCases := []struct {
		name            string
		cfg             Config
		expectedStart   int
		expectedEnd     int
		expectedMetrics []MetricID
	}{
		{
			name:            "zero config keeps defaults",
			cfg:             Config{},
			expectedStart:   MinYear,
			expectedEnd:     MaxYear,
			expectedMetrics: []MetricID{MetricStudents},
		},
		{
			name:            "years applied with clamping",
			cfg:             Config{StartYear: 1900, EndYear: 2010},
			expectedStart:   MinYear,
			expectedEnd:     2010,
			expectedMetrics: []MetricID{MetricStudents},
		},
		{
			name:            "metrics replace the default set",
			cfg:             Config{Metrics: []string{"schools", "staff"}},
			expectedStart:   MinYear,
			expectedEnd:     MaxYear,
			expectedMetrics: []MetricID{MetricSchools, MetricStaff},
		},
		{
			name:            "unknown metrics dropped, duplicates collapsed",
			cfg:             Config{Metrics: []string{"schools", "nonsense", "schools"}},
			expectedStart:   MinYear,
			expectedEnd:     MaxYear,
			expectedMetrics: []MetricID{MetricSchools},
		},
		{
			name:            "all-invalid metric list keeps the default",
			cfg:             Config{Metrics: []string{"nonsense", "bogus"}},
			expectedStart:   MinYear,
			expectedEnd:     MaxYear,
			expectedMetrics: []MetricID{MetricStudents},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sel := NewSelection()
			tc.cfg.Apply(&sel)

			if sel.StartYear != tc.expectedStart {
				t.Errorf("Expected start year %d, got %d", tc.expectedStart, sel.StartYear)
			}
			if sel.EndYear != tc.expectedEnd {
				t.Errorf("Expected end year %d, got %d", tc.expectedEnd, sel.EndYear)
			}
			if len(sel.Metrics) != len(tc.expectedMetrics) {
				t.Fatalf("Expected %d metrics, got %d (%v)", len(tc.expectedMetrics), len(sel.Metrics), sel.Metrics)
			}
			for i, id := range tc.expectedMetrics {
				if sel.Metrics[i] != id {
					t.Errorf("Expected metric %s at position %d, got %s", id, i, sel.Metrics[i])
				}
			}
		})
	}
}

// TestConfigApplyStyles tests style overrides from config
func TestConfigApplyStyles(t *testing.T) {
	cfg := Config{
		Styles: map[string]string{
			"students": "bar",
			"schools":  "nonsense",
			"bogus":    "line",
		},
	}

	sel := NewSelection()
	cfg.Apply(&sel)

	if sel.Styles[MetricStudents] != StyleBar {
		t.Errorf("Expected bar override for students, got %s", sel.Styles[MetricStudents])
	}
	if sel.Styles[MetricSchools] != StyleBar {
		t.Errorf("Expected schools default untouched by invalid style, got %s", sel.Styles[MetricSchools])
	}
	if _, ok := sel.Styles["bogus"]; ok {
		t.Error("Expected unknown metric style dropped")
	}
}
