package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"charm.land/fantasy"
)

// buildTools exposes the dataset to the model three ways: the metric
// catalog, year slices of the raw records and arbitrary SQL over the
// year_stats table.
func buildTools(source DataSource) []fantasy.AgentTool {
	return []fantasy.AgentTool{
		metricsTool(source),
		statsTool(source),
		queryTool(source),
	}
}

type metricsInput struct{}

func metricsTool(source DataSource) fantasy.AgentTool {
	toolFunc := func(ctx context.Context, input metricsInput, call fantasy.ToolCall) (fantasy.ToolResponse, error) {
		minYear, maxYear := source.YearRange()
		payload := struct {
			MinYear int          `json:"min_year"`
			MaxYear int          `json:"max_year"`
			Metrics []MetricInfo `json:"metrics"`
		}{
			MinYear: minYear,
			MaxYear: maxYear,
			Metrics: source.MetricInfo(),
		}
		result, err := marshalResult(payload)
		if err != nil {
			return fantasy.ToolResponse{}, err
		}
		return fantasy.NewTextResponse(result), nil
	}

	return fantasy.NewAgentTool(
		"metrics",
		"List the available metrics, their year_stats column names, units and the covered year range",
		toolFunc,
	)
}

type statsInput struct {
	StartYear *int `json:"start_year,omitempty" description:"First year of the range, inclusive (default: earliest year)"`
	EndYear   *int `json:"end_year,omitempty" description:"Last year of the range, inclusive (default: latest year)"`
}

func statsTool(source DataSource) fantasy.AgentTool {
	toolFunc := func(ctx context.Context, input statsInput, call fantasy.ToolCall) (fantasy.ToolResponse, error) {
		minYear, maxYear := source.YearRange()

		start := minYear
		if input.StartYear != nil {
			start = *input.StartYear
		}
		end := maxYear
		if input.EndYear != nil {
			end = *input.EndYear
		}
		if start > end {
			return fantasy.ToolResponse{}, fmt.Errorf("start_year must not exceed end_year")
		}

		result, err := marshalResult(source.Stats(start, end))
		if err != nil {
			return fantasy.ToolResponse{}, err
		}
		return fantasy.NewTextResponse(result), nil
	}

	return fantasy.NewAgentTool(
		"stats",
		"Fetch the yearly statistics for a year range. Metrics not collected in a year are omitted from that year's values",
		toolFunc,
	)
}

type queryInput struct {
	SQL string `json:"sql" description:"DuckDB SQL over the year_stats table (columns: year, schools, students, staff, catholic_staff, lay_staff, catholic_rate; uncollected values are NULL)"`
}

func queryTool(source DataSource) fantasy.AgentTool {
	toolFunc := func(ctx context.Context, input queryInput, call fantasy.ToolCall) (fantasy.ToolResponse, error) {
		if input.SQL == "" {
			return fantasy.ToolResponse{}, fmt.Errorf("sql parameter is required")
		}

		rows, err := source.Query(input.SQL)
		if err != nil {
			return fantasy.ToolResponse{}, fmt.Errorf("query failed: %v", err)
		}

		result, err := marshalResult(rows)
		if err != nil {
			return fantasy.ToolResponse{}, err
		}
		return fantasy.NewTextResponse(result), nil
	}

	return fantasy.NewAgentTool(
		"query",
		"Run a DuckDB SQL query against the year_stats table for aggregates, comparisons or filtered slices",
		toolFunc,
	)
}

func marshalResult(v interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result as JSON: %v", err)
	}
	return string(jsonBytes), nil
}
