package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"schooltrends/internal/agent"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the statistics using Claude AI via Fantasy",
	Long: `Ask a natural language question about the dataset and get an AI-powered
answer using Claude Haiku 4.5. This command uses the Fantasy library; the
agent reads the statistics through tools, including SQL over the
year_stats table.

Requires ANTHROPIC_API_KEY environment variable to be set.

Example:
  schooltrends ask "哪一年學生人數最多?"
  schooltrends ask "How did the share of Catholic staff change after 1990?"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.Join(args, " ")

		source, cleanup, err := NewAgentSource()
		if err != nil {
			HandleError(err, "Failed to initialize data source")
		}
		defer cleanup()

		answer, err := agent.GenerateResponse(
			context.Background(),
			question,
			agent.WithAPIKeyFromEnv(),
			agent.WithDataSource(source),
		)
		if err != nil {
			HandleError(err, "Failed to generate response")
		}

		fmt.Println(answer)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
