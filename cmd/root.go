package cmd

import (
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configPath string

	rootCmd = &cobra.Command{
		Use:   "schooltrends",
		Short: "School Trends - Explore historical Catholic school statistics",
		Long: `School Trends is a CLI/TUI application for exploring half a century of
Catholic school statistics: school counts, enrollment and staffing
from 1970 to 2023.

When run without commands, it launches an interactive chart TUI.
Use subcommands for CLI mode with JSON output.`,
		Run: func(cmd *cobra.Command, args []string) {
			// No subcommand specified - launch TUI
			LaunchTUI(dataDir, configPath)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "data/", "Directory for logs and exported files")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file (default ~/.schooltrends.yaml)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
