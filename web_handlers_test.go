package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestSelectionFromQuery tests query string parsing into a selection
func TestSelectionFromQuery(t *testing.T) {
	testCases := []struct {
		name          string
		url           string
		expectedStart int
		expectedEnd   int
		expectedIDs   []MetricID
	}{
		{
			name:          "no parameters keeps defaults",
			url:           "/",
			expectedStart: MinYear,
			expectedEnd:   MaxYear,
			expectedIDs:   []MetricID{MetricStudents},
		},
		{
			name:          "explicit year range",
			url:           "/?start=1990&end=2000",
			expectedStart: 1990,
			expectedEnd:   2000,
			expectedIDs:   []MetricID{MetricStudents},
		},
		{
			name:          "years clamped to dataset bounds",
			url:           "/?start=1800&end=3000",
			expectedStart: MinYear,
			expectedEnd:   MaxYear,
			expectedIDs:   []MetricID{MetricStudents},
		},
		{
			name:          "end below start is raised to start",
			url:           "/?start=2000&end=1990",
			expectedStart: 2000,
			expectedEnd:   2000,
			expectedIDs:   []MetricID{MetricStudents},
		},
		{
			name:          "unparseable years ignored",
			url:           "/?start=abc&end=xyz",
			expectedStart: MinYear,
			expectedEnd:   MaxYear,
			expectedIDs:   []MetricID{MetricStudents},
		},
		{
			name:          "metrics list with duplicates and spaces",
			url:           "/?metrics=schools,%20students,schools",
			expectedStart: MinYear,
			expectedEnd:   MaxYear,
			expectedIDs:   []MetricID{MetricSchools, MetricStudents},
		},
		{
			name:          "unknown metrics dropped",
			url:           "/?metrics=schools,nonsense",
			expectedStart: MinYear,
			expectedEnd:   MaxYear,
			expectedIDs:   []MetricID{MetricSchools},
		},
		{
			name:          "empty metrics parameter deselects everything",
			url:           "/?metrics=",
			expectedStart: MinYear,
			expectedEnd:   MaxYear,
			expectedIDs:   nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			sel := selectionFromQuery(req)

			if sel.StartYear != tc.expectedStart {
				t.Errorf("Expected start year %d, got %d", tc.expectedStart, sel.StartYear)
			}
			if sel.EndYear != tc.expectedEnd {
				t.Errorf("Expected end year %d, got %d", tc.expectedEnd, sel.EndYear)
			}
			if len(sel.Metrics) != len(tc.expectedIDs) {
				t.Fatalf("Expected %d metrics, got %d (%v)", len(tc.expectedIDs), len(sel.Metrics), sel.Metrics)
			}
			for i, id := range tc.expectedIDs {
				if sel.Metrics[i] != id {
					t.Errorf("Expected metric %s at position %d, got %s", id, i, sel.Metrics[i])
				}
			}
		})
	}
}

// TestSelectionFromQueryStyles tests style overrides in the query string
func TestSelectionFromQueryStyles(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/?metrics=students,schools&styles=students:bar,schools:nonsense,bogus:line,plain", nil)
	sel := selectionFromQuery(req)

	if sel.Styles[MetricStudents] != StyleBar {
		t.Errorf("Expected bar style override for students, got %s", sel.Styles[MetricStudents])
	}
	// Invalid style names leave the default untouched.
	if sel.Styles[MetricSchools] != StyleBar {
		t.Errorf("Expected default bar style for schools, got %s", sel.Styles[MetricSchools])
	}
	if _, ok := sel.Styles["bogus"]; ok {
		t.Error("Expected unknown metric in styles to be dropped")
	}
}

// TestBuildWebChart tests the rendered chart document
func TestBuildWebChart(t *testing.T) {
	sel := MockSelection(1985, 2000, MetricStudents, MetricSchools, MetricCatholicRate)

	var buf bytes.Buffer
	if err := buildWebChart(sel).Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "echarts") {
		t.Error("Expected rendered page to reference echarts")
	}
	if !strings.Contains(output, "天主教學校統計趨勢") {
		t.Error("Expected rendered page to contain the title")
	}
	if !strings.Contains(output, "學生人數") {
		t.Error("Expected rendered page to contain the student series")
	}
}

// TestChartPageRoute tests the chart page over HTTP
func TestChartPageRoute(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	resp, err := http.Get(server.URL + "/?metrics=students&start=1990&end=2010")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Expected HTML content type, got %s", ct)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Reading body failed: %v", err)
	}
	if !strings.Contains(buf.String(), "1990-2010 學年度") {
		t.Error("Expected page subtitle with the requested range")
	}
}

// TestChartPageRouteEmptySelection tests the notice page for empty selections
func TestChartPageRouteEmptySelection(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	resp, err := http.Get(server.URL + "/?metrics=")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Reading body failed: %v", err)
	}
	if !strings.Contains(buf.String(), "尚未選擇統計項目") {
		t.Error("Expected notice page when nothing is selected")
	}
}

// TestRecordsEndpoint tests the records API
func TestRecordsEndpoint(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/records?start=1980&end=1985")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Records []YearRecord `json:"records"`
		Count   int          `json:"count"`
		Start   int          `json:"start"`
		End     int          `json:"end"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}

	if payload.Count != 6 {
		t.Errorf("Expected 6 records, got %d", payload.Count)
	}
	if len(payload.Records) != 6 {
		t.Fatalf("Expected 6 records in body, got %d", len(payload.Records))
	}
	if payload.Records[0].Year != 1980 {
		t.Errorf("Expected first record 1980, got %d", payload.Records[0].Year)
	}
	if payload.Start != 1980 || payload.End != 1985 {
		t.Errorf("Expected echoed range 1980-1985, got %d-%d", payload.Start, payload.End)
	}
}

// TestMetricsEndpoint tests the metric catalog API
func TestMetricsEndpoint(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Metrics []struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			Color        string `json:"color"`
			Axis         string `json:"axis"`
			DefaultStyle string `json:"defaultStyle"`
			Percent      bool   `json:"percent"`
		} `json:"metrics"`
		MinYear int `json:"minYear"`
		MaxYear int `json:"maxYear"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}

	if len(payload.Metrics) != len(Metrics) {
		t.Errorf("Expected %d metrics, got %d", len(Metrics), len(payload.Metrics))
	}
	if payload.MinYear != MinYear || payload.MaxYear != MaxYear {
		t.Errorf("Expected year bounds %d-%d, got %d-%d", MinYear, MaxYear, payload.MinYear, payload.MaxYear)
	}

	byID := make(map[string]string)
	for _, m := range payload.Metrics {
		byID[m.ID] = m.Axis
	}
	if byID["students"] != "left" {
		t.Errorf("Expected students on the left axis, got %s", byID["students"])
	}
	if byID["catholicRate"] != "right" {
		t.Errorf("Expected catholicRate on the right axis, got %s", byID["catholicRate"])
	}
}

// TestDomainsEndpoint tests the axis domain API
func TestDomainsEndpoint(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/domains?metrics=students")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Left  AxisDomain `json:"left"`
		Right AxisDomain `json:"right"`
		Start int        `json:"start"`
		End   int        `json:"end"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}

	if payload.Left.Auto {
		t.Error("Expected fixed left domain for student counts")
	}
	if payload.Left.Upper <= payload.Left.Lower {
		t.Errorf("Expected increasing left domain, got [%f, %f]", payload.Left.Lower, payload.Left.Upper)
	}
	if !payload.Right.Auto {
		t.Error("Expected auto right domain with no right-axis metric")
	}
}

// TestSummaryEndpoint tests the summary API
func TestSummaryEndpoint(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/summary?start=1985&end=2023")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Summaries []MetricSummary `json:"summaries"`
		Start     int             `json:"start"`
		End       int             `json:"end"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}

	if len(payload.Summaries) != len(Metrics) {
		t.Errorf("Expected %d summaries, got %d", len(Metrics), len(payload.Summaries))
	}
	for _, s := range payload.Summaries {
		if s.Years != 39 {
			t.Errorf("Expected 39 years for %s, got %d", s.Metric, s.Years)
		}
	}
}

// TestYearEndpoint tests the single year API
func TestYearEndpoint(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/years/1985")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var rec YearRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}

	if rec.Year != 1985 {
		t.Errorf("Expected year 1985, got %d", rec.Year)
	}
	if rec.Values[MetricStaff] != 10400 {
		t.Errorf("Expected 10400 staff in 1985, got %f", rec.Values[MetricStaff])
	}
}

// TestYearEndpointErrors tests year API error responses
func TestYearEndpointErrors(t *testing.T) {
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(newRouter(db))
	defer server.Close()

	testCases := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"year outside dataset", "/api/years/1800", http.StatusNotFound},
		{"unparseable year", "/api/years/abc", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tc.path)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, resp.StatusCode)
			}
		})
	}
}
