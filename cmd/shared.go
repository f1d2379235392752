package cmd

import (
	"context"
	"fmt"
	"os"

	"schooltrends/internal/agent"
)

// MetricSummary aggregates one metric over a year range (matches the main
// package's summary type). Change is the percentage difference between the
// first and last collected values.
type MetricSummary struct {
	Metric string  `json:"metric"`
	Name   string  `json:"name"`
	Years  int     `json:"years"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	First  float64 `json:"first"`
	Last   float64 `json:"last"`
	Change float64 `json:"change_pct"`
}

// ExportOptions selects what the export command writes and where.
type ExportOptions struct {
	Format    string
	Path      string
	DataDir   string
	StartYear int
	EndYear   int
	Metrics   []string
}

// StatsStore wraps database operations for CLI commands.
type StatsStore interface {
	ExecuteQuery(query string) ([]map[string]interface{}, error)
	SummarizeRange(start, end int) ([]MetricSummary, error)
	Close() error
}

// InsightRunner generates AI trend reports. Zero years mean the dataset
// bounds.
type InsightRunner interface {
	TrendReport(ctx context.Context, start, end int) (string, error)
}

// These variables are set by the main package.
var (
	LaunchTUI      func(dataDir string, configPath string)
	InitStore      func() (StatsStore, func(), error)
	InitInsights   func() (InsightRunner, error)
	NewAgentSource func() (agent.DataSource, func(), error)
	StartServer    func(port int) error
	RunExport      func(opts ExportOptions) (string, error)
)

// HandleError prints error and exits.
func HandleError(err error, message string) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, err)
	os.Exit(1)
}
