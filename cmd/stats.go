package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	statsStart int
	statsEnd   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize every metric over a year range",
	Long: `Compute per-metric aggregates over a year range: the number of years
with a collected value, min, max, mean, the first and last collected values
and the percentage change between them.
Metrics with no collected values in the range are omitted.

Examples:
  schooltrends stats
  schooltrends stats --start 1985 --end 2023`,
	Run: func(cmd *cobra.Command, args []string) {
		if statsStart != 0 && statsEnd != 0 && statsStart > statsEnd {
			HandleError(fmt.Errorf("start %d is after end %d", statsStart, statsEnd), "Invalid year range")
		}

		store, cleanup, err := InitStore()
		if err != nil {
			HandleError(err, "Failed to initialize database")
		}
		defer cleanup()

		summaries, err := store.SummarizeRange(statsStart, statsEnd)
		if err != nil {
			HandleError(err, "Failed to summarize")
		}

		output, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			HandleError(err, "Failed to encode JSON")
		}

		fmt.Println(string(output))
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsStart, "start", 0, "First year of the range (default: earliest year)")
	statsCmd.Flags().IntVar(&statsEnd, "end", 0, "Last year of the range (default: latest year)")
	rootCmd.AddCommand(statsCmd)
}
