package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	insightStart int
	insightEnd   int
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Generate an AI trend report over the statistics",
	Long: `Generate a narrative trend analysis of the dataset using Claude.
The report covers every metric over the chosen year range and is written
in Traditional Chinese, matching the dataset.

Requires ANTHROPIC_API_KEY environment variable to be set.

Examples:
  schooltrends insight
  schooltrends insight --start 1990 --end 2010`,
	Run: func(cmd *cobra.Command, args []string) {
		if insightStart != 0 && insightEnd != 0 && insightStart > insightEnd {
			HandleError(fmt.Errorf("start %d is after end %d", insightStart, insightEnd), "Invalid year range")
		}

		runner, err := InitInsights()
		if err != nil {
			HandleError(err, "Failed to initialize insight service")
		}

		report, err := runner.TrendReport(context.Background(), insightStart, insightEnd)
		if err != nil {
			HandleError(err, "Failed to generate report")
		}

		fmt.Println(report)
	},
}

func init() {
	insightCmd.Flags().IntVar(&insightStart, "start", 0, "First year of the range (default: earliest year)")
	insightCmd.Flags().IntVar(&insightEnd, "end", 0, "Last year of the range (default: latest year)")
	rootCmd.AddCommand(insightCmd)
}
