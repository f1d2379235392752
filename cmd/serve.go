package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	port     int
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the HTTP web server with a browser chart.

The web server renders the same time series as the TUI with ECharts,
plus JSON API endpoints for the records, metrics, axis domains and
per-metric summaries.`,
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&port, "port", "p", 3000, "Port to run the server on")
}

func runServe() {
	fmt.Printf("Starting School Trends web server...\n")
	fmt.Printf("Port: %d\n\n", port)

	if err := StartServer(port); err != nil {
		log.Fatalf("Server failed: %v\n", err)
	}
}
