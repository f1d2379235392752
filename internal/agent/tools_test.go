package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"charm.land/fantasy"
)

// mockSource is a small in-memory DataSource for tool tests.
type mockSource struct {
	lastQuery string
	queryErr  error
}

func (m *mockSource) YearRange() (int, int) {
	return 2000, 2002
}

func (m *mockSource) MetricInfo() []MetricInfo {
	return []MetricInfo{
		{ID: "students", Name: "學生人數", Column: "students", Unit: "count"},
		{ID: "catholicRate", Name: "天主教教職員百分比", Column: "catholic_rate", Unit: "percent"},
	}
}

func (m *mockSource) Stats(startYear, endYear int) []YearStat {
	var stats []YearStat
	for year := startYear; year <= endYear; year++ {
		stats = append(stats, YearStat{
			Year:   year,
			Values: map[string]float64{"students": float64(year)},
		})
	}
	return stats
}

func (m *mockSource) Query(query string) ([]map[string]interface{}, error) {
	m.lastQuery = query
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return []map[string]interface{}{{"n": 54}}, nil
}

// runTool invokes a tool the way fantasy does: parameters arrive as a
// JSON payload on the tool call.
func runTool(ctx context.Context, tool fantasy.AgentTool, params map[string]interface{}) (string, error) {
	input, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	resp, err := tool.Run(ctx, fantasy.ToolCall{Input: string(input)})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// TestBuildTools tests that all dataset tools are created
func TestBuildTools(t *testing.T) {
	tools := buildTools(&mockSource{})

	if len(tools) != 3 {
		t.Fatalf("Expected 3 tools (metrics, stats, query), got %d", len(tools))
	}

	for i, tool := range tools {
		if tool == nil {
			t.Errorf("Tool at index %d is nil", i)
		}
	}
}

// TestMetricsToolExecution tests the metric catalog tool
func TestMetricsToolExecution(t *testing.T) {
	tool := metricsTool(&mockSource{})

	result, err := runTool(context.Background(), tool, map[string]interface{}{})
	if err != nil {
		t.Fatalf("Metrics tool execution failed: %v", err)
	}

	if !strings.Contains(result, `"min_year": 2000`) {
		t.Errorf("Expected min_year in result, got %s", result)
	}
	if !strings.Contains(result, `"max_year": 2002`) {
		t.Errorf("Expected max_year in result, got %s", result)
	}
	if !strings.Contains(result, `"catholic_rate"`) {
		t.Errorf("Expected column names in result, got %s", result)
	}
	if !strings.Contains(result, "學生人數") {
		t.Errorf("Expected metric display names in result, got %s", result)
	}
}

// TestStatsToolExecution tests the year slice tool
func TestStatsToolExecution(t *testing.T) {
	tool := statsTool(&mockSource{})
	ctx := context.Background()

	t.Run("DefaultRange", func(t *testing.T) {
		result, err := runTool(ctx, tool, map[string]interface{}{})
		if err != nil {
			t.Fatalf("Stats tool execution failed: %v", err)
		}

		// The full mock range is three years.
		for _, year := range []string{"2000", "2001", "2002"} {
			if !strings.Contains(result, `"year": `+year) {
				t.Errorf("Expected year %s in result, got %s", year, result)
			}
		}
	})

	t.Run("ExplicitRange", func(t *testing.T) {
		// JSON numbers arrive as float64.
		params := map[string]interface{}{
			"start_year": float64(2001),
			"end_year":   float64(2001),
		}

		result, err := runTool(ctx, tool, params)
		if err != nil {
			t.Fatalf("Stats tool execution failed: %v", err)
		}

		if !strings.Contains(result, `"year": 2001`) {
			t.Errorf("Expected 2001 in result, got %s", result)
		}
		if strings.Contains(result, `"year": 2000`) || strings.Contains(result, `"year": 2002`) {
			t.Errorf("Expected only the requested year, got %s", result)
		}
	})

	t.Run("InvertedRange", func(t *testing.T) {
		params := map[string]interface{}{
			"start_year": float64(2002),
			"end_year":   float64(2000),
		}

		_, err := runTool(ctx, tool, params)
		if err == nil {
			t.Fatal("Expected error for inverted range, got nil")
		}
		if !strings.Contains(err.Error(), "start_year must not exceed end_year") {
			t.Errorf("Expected range error, got %v", err)
		}
	})
}

// TestQueryToolExecution tests the SQL tool
func TestQueryToolExecution(t *testing.T) {
	ctx := context.Background()

	t.Run("PassesQueryThrough", func(t *testing.T) {
		source := &mockSource{}
		tool := queryTool(source)

		params := map[string]interface{}{
			"sql": "SELECT count(*) AS n FROM year_stats",
		}

		result, err := runTool(ctx, tool, params)
		if err != nil {
			t.Fatalf("Query tool execution failed: %v", err)
		}

		if source.lastQuery != "SELECT count(*) AS n FROM year_stats" {
			t.Errorf("Expected query passed through, got %s", source.lastQuery)
		}
		if !strings.Contains(result, "54") {
			t.Errorf("Expected row values in result, got %s", result)
		}
	})

	t.Run("MissingSQLParameter", func(t *testing.T) {
		tool := queryTool(&mockSource{})

		_, err := runTool(ctx, tool, map[string]interface{}{})
		if err == nil {
			t.Fatal("Expected error for missing sql parameter, got nil")
		}
		if !strings.Contains(err.Error(), "sql parameter is required") {
			t.Errorf("Expected missing parameter error, got %v", err)
		}
	})

	t.Run("EmptySQLParameter", func(t *testing.T) {
		tool := queryTool(&mockSource{})

		_, err := runTool(ctx, tool, map[string]interface{}{"sql": ""})
		if err == nil {
			t.Error("Expected error for empty sql parameter, got nil")
		}
	})

	t.Run("QueryFailure", func(t *testing.T) {
		source := &mockSource{queryErr: fmt.Errorf("table does not exist")}
		tool := queryTool(source)

		_, err := runTool(ctx, tool, map[string]interface{}{"sql": "SELECT 1"})
		if err == nil {
			t.Fatal("Expected error from failing query, got nil")
		}
		if !strings.Contains(err.Error(), "query failed") {
			t.Errorf("Expected wrapped query error, got %v", err)
		}
	})
}

// TestOptionValidation tests the agent option checks
func TestOptionValidation(t *testing.T) {
	config := &Config{}

	if err := WithAPIKey("")(config); err == nil {
		t.Error("Expected error for empty API key")
	}
	if err := WithAPIKey("test-key")(config); err != nil {
		t.Errorf("Expected valid key accepted, got %v", err)
	}

	if err := WithModel("")(config); err == nil {
		t.Error("Expected error for empty model")
	}

	if err := WithDataSource(nil)(config); err == nil {
		t.Error("Expected error for nil data source")
	}
	if err := WithDataSource(&mockSource{})(config); err != nil {
		t.Errorf("Expected valid source accepted, got %v", err)
	}
}

// TestNewTrendAgentValidation tests required configuration
func TestNewTrendAgentValidation(t *testing.T) {
	_, err := NewTrendAgent(WithDataSource(&mockSource{}))
	if err == nil {
		t.Fatal("Expected error without API key")
	}
	if !strings.Contains(err.Error(), "API key is required") {
		t.Errorf("Expected missing key error, got %v", err)
	}

	_, err = NewTrendAgent(WithAPIKey("test-key"))
	if err == nil {
		t.Fatal("Expected error without data source")
	}
	if !strings.Contains(err.Error(), "data source is required") {
		t.Errorf("Expected missing source error, got %v", err)
	}

	_, err = NewTrendAgent(WithAPIKey(""))
	if err == nil {
		t.Fatal("Expected error from invalid option")
	}
	if !strings.Contains(err.Error(), "failed to apply option") {
		t.Errorf("Expected option error, got %v", err)
	}
}
