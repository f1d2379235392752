package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var queryString string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the statistics database (DuckDB SQL)",
	Long: `Execute the requested QUERY against the in-memory DuckDB database.
The dataset is loaded into a single year_stats table with one row per year;
values that were not collected in a year are NULL.
The query can be any valid DuckDB SQL query, including SELECT, DESCRIBE, SHOW TABLES, etc.

Examples:
  schooltrends query --sql "SELECT * FROM year_stats WHERE year >= 2000"
  schooltrends query --sql "SELECT year, students FROM year_stats ORDER BY students DESC LIMIT 5"
  schooltrends query --sql "SUMMARIZE year_stats"`,
	Run: func(cmd *cobra.Command, args []string) {
		if queryString == "" {
			HandleError(fmt.Errorf("query is required"), "Missing query parameter")
		}

		store, cleanup, err := InitStore()
		if err != nil {
			HandleError(err, "Failed to initialize database")
		}
		defer cleanup()

		rows, err := store.ExecuteQuery(queryString)
		if err != nil {
			HandleError(err, "Failed to execute query")
		}

		output, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			HandleError(err, "Failed to encode JSON")
		}

		fmt.Println(string(output))
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryString, "sql", "q", "", "SQL query to execute (required)")
	_ = queryCmd.MarkFlagRequired("sql")
	rootCmd.AddCommand(queryCmd)
}
