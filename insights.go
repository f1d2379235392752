package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"schooltrends/cmd"
)

// InsightService generates narrative trend reports with Claude.
type InsightService struct {
	client  *anthropic.Client
	timeout time.Duration
}

func NewInsightService(apiKey string) *InsightService {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &InsightService{
		client:  &client,
		timeout: 60 * time.Second,
	}
}

// TrendReport asks Claude for a short markdown report over the given
// records. Only the listed metrics are included in the prompt.
func (s *InsightService) TrendReport(ctx context.Context, records []YearRecord, metrics []MetricID) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no records in the selected range")
	}
	if len(metrics) == 0 {
		return "", fmt.Errorf("no metrics selected")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildTrendPrompt(records, metrics)

	params := anthropic.MessageNewParams{
		Model:     anthropic.ModelClaudeHaiku4_5_20251001,
		MaxTokens: 2000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	message, err := s.client.Messages.New(ctx, params)
	if err != nil {
		if logger != nil {
			logger.Error("Claude API call failed for trend report", "error", err)
		}
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	var report strings.Builder
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			report.WriteString(textBlock.Text)
		}
	}
	if report.Len() == 0 {
		if logger != nil {
			logger.Error("Empty response from Claude for trend report")
		}
		return "", fmt.Errorf("empty response from Claude")
	}

	if logger != nil {
		logger.Info("Trend report generated", "years", len(records), "metrics", len(metrics))
	}
	return report.String(), nil
}

// buildTrendPrompt serializes the records as a compact CSV table so the
// model reasons over exact numbers rather than a prose summary. Absent
// values are left as empty fields.
func buildTrendPrompt(records []YearRecord, metrics []MetricID) string {
	var b strings.Builder

	b.WriteString("你是一位教育統計分析師。以下是台灣天主教學校的歷年統計資料(CSV 格式,空欄表示該年份沒有該項資料):\n\n")

	b.WriteString("year")
	for _, id := range metrics {
		if m, ok := MetricByID(id); ok {
			b.WriteString(",")
			b.WriteString(m.Name)
		}
	}
	b.WriteString("\n")

	for _, rec := range records {
		b.WriteString(strconv.Itoa(rec.Year))
		for _, id := range metrics {
			b.WriteString(",")
			if v, ok := rec.Value(id); ok {
				m, _ := MetricByID(id)
				if m.Percent {
					b.WriteString(strconv.FormatFloat(v, 'f', 1, 64))
				} else {
					b.WriteString(strconv.FormatFloat(v, 'f', 0, 64))
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n請以繁體中文撰寫一份簡短的 Markdown 趨勢分析報告,包含:\n")
	b.WriteString("1. 每個統計項目的整體趨勢\n")
	b.WriteString("2. 顯著的轉折點\n")
	b.WriteString("3. 各項目之間可觀察到的關聯\n")
	b.WriteString("\n報告請控制在 400 字以內,使用標題與條列,不要逐年複述數字。\n")

	return b.String()
}

// insightRunner exposes the insight service through the cmd package's
// interface. The CLI reports over every metric at once.
type insightRunner struct {
	svc *InsightService
}

func (r *insightRunner) TrendReport(ctx context.Context, start, end int) (string, error) {
	if start == 0 {
		start = MinYear
	}
	if end == 0 {
		end = MaxYear
	}

	ids := make([]MetricID, len(Metrics))
	for i, m := range Metrics {
		ids[i] = m.ID
	}
	return r.svc.TrendReport(ctx, FilterRecords(start, end), ids)
}

// initInsightRunner is wired into cmd.InitInsights by main.
func initInsightRunner() (cmd.InsightRunner, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	return &insightRunner{svc: NewInsightService(apiKey)}, nil
}
