package agent

import (
	"context"
	"fmt"
	"os"

	"charm.land/fantasy"
	"charm.land/fantasy/providers/anthropic"
)

const (
	defaultModel        = "claude-haiku-4-5"
	defaultSystemPrompt = "You are a data analyst for a historical dataset of Catholic school statistics in Taiwan, covering 1970 to 2023. Always use the provided tools to look up the actual numbers before answering. Staff related metrics were not collected before 1985; treat missing values as not collected, never as zero. Metric names are in Traditional Chinese; answer in the language the question was asked in."
)

// MetricInfo describes one metric of the dataset and the year_stats column
// that holds it.
type MetricInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Column string `json:"column"`
	Unit   string `json:"unit"`
}

// YearStat is one year of the dataset. Metrics absent that year are
// missing keys, not zeros.
type YearStat struct {
	Year   int                `json:"year"`
	Values map[string]float64 `json:"values"`
}

// DataSource is the surface the agent's tools run against.
type DataSource interface {
	YearRange() (int, int)
	MetricInfo() []MetricInfo
	Stats(startYear, endYear int) []YearStat
	Query(query string) ([]map[string]interface{}, error)
}

// Config holds the configuration for creating a trend agent.
type Config struct {
	apiKey       string
	model        string
	systemPrompt string
	source       DataSource
}

// Option is a functional option for configuring the agent.
type Option func(*Config) error

// WithAPIKey sets the Anthropic API key.
func WithAPIKey(apiKey string) Option {
	return func(c *Config) error {
		if apiKey == "" {
			return fmt.Errorf("API key cannot be empty")
		}
		c.apiKey = apiKey
		return nil
	}
}

// WithAPIKeyFromEnv sets the API key from the ANTHROPIC_API_KEY environment
// variable.
func WithAPIKeyFromEnv() Option {
	return func(c *Config) error {
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		c.apiKey = apiKey
		return nil
	}
}

// WithModel sets the Claude model to use (default: claude-haiku-4-5).
func WithModel(model string) Option {
	return func(c *Config) error {
		if model == "" {
			return fmt.Errorf("model cannot be empty")
		}
		c.model = model
		return nil
	}
}

// WithSystemPrompt sets a custom system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(c *Config) error {
		c.systemPrompt = prompt
		return nil
	}
}

// WithDataSource sets the dataset the agent's tools read from.
func WithDataSource(source DataSource) Option {
	return func(c *Config) error {
		if source == nil {
			return fmt.Errorf("data source cannot be nil")
		}
		c.source = source
		return nil
	}
}

// NewTrendAgent creates a Fantasy agent configured for answering questions
// about the statistics dataset.
func NewTrendAgent(opts ...Option) (fantasy.Agent, error) {
	config := &Config{
		model:        defaultModel,
		systemPrompt: defaultSystemPrompt,
	}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if config.apiKey == "" {
		return nil, fmt.Errorf("API key is required (use WithAPIKey or WithAPIKeyFromEnv)")
	}
	if config.source == nil {
		return nil, fmt.Errorf("data source is required (use WithDataSource)")
	}

	provider, err := anthropic.New(anthropic.WithAPIKey(config.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
	}

	ctx := context.Background()

	model, err := provider.LanguageModel(ctx, config.model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Claude model: %w", err)
	}

	agent := fantasy.NewAgent(
		model,
		fantasy.WithSystemPrompt(config.systemPrompt),
		fantasy.WithTools(buildTools(config.source)...),
	)

	return agent, nil
}

// GenerateResponse is a convenience function that creates an agent and
// answers a single question.
func GenerateResponse(ctx context.Context, question string, opts ...Option) (string, error) {
	agent, err := NewTrendAgent(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create agent: %w", err)
	}

	result, err := agent.Generate(ctx, fantasy.AgentCall{Prompt: question})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	return result.Response.Content.Text(), nil
}
