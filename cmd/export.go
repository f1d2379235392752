package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportFormat  string
	exportOut     string
	exportStart   int
	exportEnd     int
	exportMetrics []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the statistics to xlsx, png or html",
	Long: `Export the dataset to a file: an Excel workbook with the raw numbers,
a PNG render of the chart, or a standalone HTML page with the interactive
ECharts version.

The year range and metric set default to the full dataset.

Examples:
  schooltrends export --format xlsx
  schooltrends export --format png --out trends.png --start 1985
  schooltrends export --format html --metrics students,staff`,
	Run: func(cmd *cobra.Command, args []string) {
		if exportStart != 0 && exportEnd != 0 && exportStart > exportEnd {
			HandleError(fmt.Errorf("start %d is after end %d", exportStart, exportEnd), "Invalid year range")
		}

		path, err := RunExport(ExportOptions{
			Format:    exportFormat,
			Path:      exportOut,
			DataDir:   dataDir,
			StartYear: exportStart,
			EndYear:   exportEnd,
			Metrics:   exportMetrics,
		})
		if err != nil {
			HandleError(err, "Failed to export")
		}

		fmt.Printf("Exported to %s\n", path)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "Output format: xlsx, png or html")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default: schooltrends.<format> in the data dir)")
	exportCmd.Flags().IntVar(&exportStart, "start", 0, "First year to include (default: earliest year)")
	exportCmd.Flags().IntVar(&exportEnd, "end", 0, "Last year to include (default: latest year)")
	exportCmd.Flags().StringSliceVarP(&exportMetrics, "metrics", "m", nil, "Metric IDs to include (default: all)")
	rootCmd.AddCommand(exportCmd)
}
