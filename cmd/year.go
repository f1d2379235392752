package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var yearCmd = &cobra.Command{
	Use:   "year [year]",
	Short: "Get the statistics recorded for a single year",
	Long: `Get every metric recorded for a specific year as JSON.
Metrics that were not collected in that year are null.

Example:
  schooltrends year 1985`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			HandleError(err, "Invalid year")
		}

		store, cleanup, err := InitStore()
		if err != nil {
			HandleError(err, "Failed to initialize database")
		}
		defer cleanup()

		rows, err := store.ExecuteQuery(fmt.Sprintf("SELECT * FROM year_stats WHERE year = %d", year))
		if err != nil {
			HandleError(err, "Failed to get year statistics")
		}

		if len(rows) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "No statistics recorded for year: %d\n", year)
			return
		}

		output, err := json.MarshalIndent(rows[0], "", "  ")
		if err != nil {
			HandleError(err, "Failed to encode JSON")
		}

		fmt.Println(string(output))
	},
}

func init() {
	rootCmd.AddCommand(yearCmd)
}
