package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"schooltrends/cmd"
	"schooltrends/internal/agent"
)

var logger *slog.Logger

// setupLogger configures structured logging to a file in the data directory.
func setupLogger(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	logPath := filepath.Join(dataDir, "err.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))

	logger.Info("Application started", "data_dir", dataDir)
	return nil
}

type view int

const (
	chartView view = iota
	insightView
	askView
	helpView
)

// focusArea is the control panel section keyboard input is routed to.
type focusArea int

const (
	focusMetrics focusArea = iota
	focusStartYear
	focusEndYear
)

// Zone identifiers for clickable controls. Metric rows and style cells
// append the metric ID to their prefix.
const (
	zoneStartYear    = "picker:start"
	zoneEndYear      = "picker:end"
	zoneResetButton  = "button:reset"
	zoneFullButton   = "button:fullscreen"
	zoneMetricPrefix = "metric:"
	zoneStylePrefix  = "style:"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241"))
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("240")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const controlsWidth = 34

// insightResultMsg carries the AI trend report back to Update.
type insightResultMsg struct {
	report string
	err    error
}

// askResultMsg carries the agent's answer back to Update.
type askResultMsg struct {
	answer string
	err    error
}

// fetchInsight asks the insight service for a narrative report over the
// currently plotted slice of the dataset.
func fetchInsight(svc *InsightService, records []YearRecord, metrics []MetricID) tea.Cmd {
	return func() tea.Msg {
		report, err := svc.TrendReport(context.Background(), records, metrics)
		return insightResultMsg{report: report, err: err}
	}
}

// askQuestion runs the data agent against a free-form question.
func askQuestion(question string) tea.Cmd {
	return func() tea.Msg {
		source, cleanup, err := newAgentSource()
		if err != nil {
			return askResultMsg{err: err}
		}
		defer cleanup()

		answer, err := agent.GenerateResponse(
			context.Background(),
			question,
			agent.WithAPIKeyFromEnv(),
			agent.WithDataSource(source),
		)
		return askResultMsg{answer: answer, err: err}
	}
}

type model struct {
	currentView view
	focus       focusArea
	cursor      int // metric row under the keyboard cursor
	fullscreen  bool

	zones *zone.Manager
	chart TrendChart
	sel   Selection
	inter Interaction

	insights *InsightService

	viewport      viewport.Model
	viewportReady bool
	askInput      textinput.Model
	askAnswer     string

	width   int
	height  int
	loading bool
	status  string
	err     error
}

func initialModel(cfg Config, insights *InsightService) model {
	zones := zone.New()

	sel := NewSelection()
	cfg.Apply(&sel)

	ti := textinput.New()
	ti.Placeholder = "輸入問題,例如:1990 年之後教職員結構有什麼變化?"
	ti.CharLimit = 200
	ti.Width = 60

	return model{
		currentView: chartView,
		focus:       focusMetrics,
		zones:       zones,
		chart:       NewTrendChart(zones),
		sel:         sel,
		insights:    insights,
		askInput:    ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpWidth := msg.Width - 4
		vpHeight := msg.Height - 7
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.viewportReady {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.viewportReady = true
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}
		m.redraw()
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch m.currentView {
		case chartView:
			return m.handleChartViewKeys(msg)
		case insightView:
			return m.handleInsightViewKeys(msg)
		case askView:
			return m.handleAskViewKeys(msg)
		case helpView:
			return m.handleHelpViewKeys(msg)
		}

	case tea.MouseMsg:
		if m.currentView == chartView {
			return m.handleChartMouse(msg)
		}
		if m.currentView == insightView || m.currentView == helpView {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case pointClickMsg:
		m.inter.Activate(msg.Metric, msg.Record)
		m.redraw()
		if logger != nil {
			logger.Debug("data point selected", "metric", string(msg.Metric), "year", msg.Record.Year)
		}
		return m, nil

	case backgroundClickMsg:
		if m.inter.Active() {
			m.inter.Clear()
			m.redraw()
		}
		return m, nil

	case insightResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			if logger != nil {
				logger.Error("insight generation failed", "error", msg.err)
			}
			return m, nil
		}
		m.err = nil
		rendered, err := renderMarkdown(msg.report, m.viewport.Width)
		if err != nil {
			rendered = msg.report
		}
		m.viewport.SetContent(rendered)
		m.viewport.GotoTop()
		return m, nil

	case askResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			if logger != nil {
				logger.Error("ask agent failed", "error", msg.err)
			}
			return m, nil
		}
		m.err = nil
		m.askAnswer = msg.answer
		rendered, err := renderMarkdown(msg.answer, m.viewport.Width)
		if err != nil {
			rendered = msg.answer
		}
		m.viewport.SetContent(rendered)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m model) handleChartViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.inter.Active() {
			m.inter.Clear()
			m.redraw()
			return m, nil
		}
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % 3
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + 2) % 3
		return m, nil

	case "up":
		if m.focus == focusMetrics {
			if m.cursor > 0 {
				m.cursor--
			}
		} else {
			m.adjustYear(1)
		}
		return m, nil

	case "down":
		if m.focus == focusMetrics {
			if m.cursor < len(Metrics)-1 {
				m.cursor++
			}
		} else {
			m.adjustYear(-1)
		}
		return m, nil

	case "left":
		m.adjustYear(-1)
		return m, nil

	case "right":
		m.adjustYear(1)
		return m, nil

	case "pgup":
		m.adjustYear(10)
		return m, nil

	case "pgdown":
		m.adjustYear(-10)
		return m, nil

	case " ", "enter":
		if m.focus == focusMetrics {
			m.toggleMetricAt(m.cursor)
		}
		return m, nil

	case "s":
		if m.focus == focusMetrics {
			m.sel.CycleStyle(Metrics[m.cursor].ID)
			m.redraw()
		}
		return m, nil

	case "r":
		m.sel.Reset()
		m.inter.Clear()
		m.cursor = 0
		m.redraw()
		return m, nil

	case "f":
		m.fullscreen = !m.fullscreen
		m.redraw()
		return m, nil

	case "c":
		if rec, ok := m.inter.Record(); ok {
			if err := clipboard.WriteAll(DetailPanelText(rec)); err != nil {
				m.err = fmt.Errorf("copy failed: %w", err)
				return m, nil
			}
			m.status = "已複製到剪貼簿"
		}
		return m, nil

	case "i":
		if m.insights == nil {
			m.err = fmt.Errorf("未設定 ANTHROPIC_API_KEY,無法產生 AI 分析")
			return m, nil
		}
		if len(m.sel.Metrics) == 0 {
			m.status = "請先選擇至少一個統計項目"
			return m, nil
		}
		m.currentView = insightView
		m.loading = true
		m.err = nil
		m.viewport.SetContent("")
		return m, fetchInsight(m.insights, m.sel.Records(), m.sel.Metrics)

	case "a":
		m.currentView = askView
		m.err = nil
		m.askAnswer = ""
		m.viewport.SetContent("")
		m.askInput.SetValue("")
		m.askInput.Focus()
		return m, textinput.Blink

	case "?":
		m.currentView = helpView
		rendered, err := renderMarkdown(helpText, m.viewport.Width)
		if err != nil {
			rendered = helpText
		}
		m.viewport.SetContent(rendered)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m model) handleInsightViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.currentView = chartView
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleAskViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.currentView = chartView
		m.askInput.Blur()
		return m, nil

	case "enter":
		question := strings.TrimSpace(m.askInput.Value())
		if question == "" || m.loading {
			return m, nil
		}
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			m.err = fmt.Errorf("未設定 ANTHROPIC_API_KEY,無法提問")
			return m, nil
		}
		m.loading = true
		m.err = nil
		if logger != nil {
			logger.Info("ask submitted", "question", question)
		}
		return m, askQuestion(question)

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.askInput, cmd = m.askInput.Update(msg)
	return m, cmd
}

func (m model) handleHelpViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "?":
		m.currentView = chartView
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleChartMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Wheel over a year picker nudges it without changing focus.
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		delta := 1
		if msg.Button == tea.MouseButtonWheelDown {
			delta = -1
		}
		if m.zones.Get(zoneStartYear).InBounds(msg) {
			m.sel.SetStartYear(m.sel.StartYear + delta)
			m.afterSelectionChange()
		} else if m.zones.Get(zoneEndYear).InBounds(msg) {
			m.sel.SetEndYear(m.sel.EndYear + delta)
			m.afterSelectionChange()
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	// Clicks inside the plot resolve to exactly one outcome, a data point
	// activation or a background clear. The chart owns that decision.
	if id := m.chart.ZoneID(); id != "" {
		if z := m.zones.Get(id); z.InBounds(msg) {
			x, y := z.Pos(msg)
			ev := m.chart.ResolveClick(x, y)
			return m, func() tea.Msg { return ev }
		}
	}

	switch {
	case m.zones.Get(zoneStartYear).InBounds(msg):
		m.focus = focusStartYear

	case m.zones.Get(zoneEndYear).InBounds(msg):
		m.focus = focusEndYear

	case m.zones.Get(zoneResetButton).InBounds(msg):
		m.sel.Reset()
		m.inter.Clear()
		m.cursor = 0
		m.redraw()

	case m.zones.Get(zoneFullButton).InBounds(msg):
		m.fullscreen = !m.fullscreen
		m.redraw()

	default:
		for i, metric := range Metrics {
			if m.zones.Get(zoneStylePrefix + string(metric.ID)).InBounds(msg) {
				m.focus = focusMetrics
				m.cursor = i
				m.sel.CycleStyle(metric.ID)
				m.redraw()
				return m, nil
			}
			if m.zones.Get(zoneMetricPrefix + string(metric.ID)).InBounds(msg) {
				m.focus = focusMetrics
				m.cursor = i
				m.toggleMetricAt(i)
				return m, nil
			}
		}
	}

	return m, nil
}

// adjustYear applies a delta to whichever year picker has focus.
func (m *model) adjustYear(delta int) {
	switch m.focus {
	case focusStartYear:
		m.sel.SetStartYear(m.sel.StartYear + delta)
	case focusEndYear:
		m.sel.SetEndYear(m.sel.EndYear + delta)
	default:
		return
	}
	m.afterSelectionChange()
}

func (m *model) toggleMetricAt(i int) {
	if i < 0 || i >= len(Metrics) {
		return
	}
	m.sel.ToggleMetric(Metrics[i].ID)
	m.afterSelectionChange()
}

// afterSelectionChange drops a highlight that no longer refers to a plotted
// point, then redraws.
func (m *model) afterSelectionChange() {
	if m.inter.Active() {
		id, _ := m.inter.Metric()
		rec, _ := m.inter.Record()
		if !m.sel.IsSelected(id) || rec.Year < m.sel.StartYear || rec.Year > m.sel.EndYear {
			m.inter.Clear()
		}
	}
	m.redraw()
}

// redraw recomputes chart geometry and replots the selected series. The
// chart is only mounted while at least one metric is selected.
func (m *model) redraw() {
	if m.width == 0 || len(m.sel.Metrics) == 0 {
		return
	}

	w, h := m.chartArea()
	m.chart.SetSize(w, h)

	highlight, _ := m.inter.Metric()
	focusYear := 0
	if rec, ok := m.inter.Record(); ok {
		focusYear = rec.Year
	}

	m.chart.Draw(SeriesView{
		Records:     m.sel.Records(),
		Selected:    m.sel.Metrics,
		Styles:      m.sel.Styles,
		StartYear:   m.sel.StartYear,
		EndYear:     m.sel.EndYear,
		Highlight:   highlight,
		Highlighted: m.inter.Active(),
		FocusYear:   focusYear,
	})
}

// chartArea returns the cell rectangle available to the plot after the
// header, footer, control column and any open detail panel take their share.
func (m *model) chartArea() (int, int) {
	w := m.width - 2
	if !m.fullscreen {
		w -= controlsWidth + 2
	}

	h := m.height - 5
	if rec, ok := m.inter.Record(); ok {
		id, _ := m.inter.Metric()
		h -= lipgloss.Height(DetailPanel(rec, id, m.detailWidth()))
	}

	if w < 24 {
		w = 24
	}
	if h < 6 {
		h = 6
	}
	return w, h
}

func (m *model) detailWidth() int {
	w := m.width - 2
	if !m.fullscreen {
		w -= controlsWidth + 2
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m model) View() string {
	if m.width == 0 {
		return "載入中..."
	}

	switch m.currentView {
	case insightView:
		return m.insightViewRender()
	case askView:
		return m.askViewRender()
	case helpView:
		return m.helpViewRender()
	}

	return m.zones.Scan(m.chartViewRender())
}

func (m model) chartViewRender() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📊 天主教學校統計趨勢 (1970-2023)"))
	b.WriteString("\n\n")

	chartCol := m.chartColumn()
	if m.fullscreen {
		b.WriteString(chartCol)
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.controlsColumn(), "  ", chartCol))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("錯誤: " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	} else {
		b.WriteString(helpStyle.Render("tab 切換焦點 · 空白鍵 選取 · s 樣式 · ←→ 年份 · r 重設 · f 全螢幕 · i AI 分析 · a 提問 · ? 說明 · q 離開"))
	}

	return b.String()
}

// chartColumn is the plot plus, while a point is highlighted, its detail
// panel underneath.
func (m model) chartColumn() string {
	w, h := m.chartArea()

	var plot string
	if len(m.sel.Metrics) == 0 {
		plot = PlaceholderBox(w, h)
	} else {
		plot = m.chart.View()
	}

	if rec, ok := m.inter.Record(); ok {
		id, _ := m.inter.Metric()
		return lipgloss.JoinVertical(lipgloss.Left, plot, DetailPanel(rec, id, m.detailWidth()))
	}
	return plot
}

func (m model) controlsColumn() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("期間"))
	b.WriteString("\n")
	b.WriteString(m.zones.Mark(zoneStartYear, m.pickerLine("起始", m.sel.StartYear, focusStartYear)))
	b.WriteString("\n")
	b.WriteString(m.zones.Mark(zoneEndYear, m.pickerLine("結束", m.sel.EndYear, focusEndYear)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("統計項目"))
	b.WriteString("\n")
	for i, metric := range Metrics {
		b.WriteString(m.metricRow(i, metric))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	reset := m.zones.Mark(zoneResetButton, buttonStyle.Render("重設"))
	full := m.zones.Mark(zoneFullButton, buttonStyle.Render("全螢幕"))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, reset, " ", full))

	return lipgloss.NewStyle().Width(controlsWidth).Render(b.String())
}

func (m model) pickerLine(label string, year int, area focusArea) string {
	marker := "  "
	line := fmt.Sprintf("%s ◀ %d ▶", label, year)
	if m.focus == area {
		marker = "▸ "
		line = focusedStyle.Render(line)
	}
	return marker + line
}

func (m model) metricRow(i int, metric Metric) string {
	check := "[ ]"
	if m.sel.IsSelected(metric.ID) {
		check = "[x]"
	}

	swatch := lipgloss.NewStyle().Foreground(metric.Term).Render("●")

	name := padRight(metric.Name, 19)
	if m.focus == focusMetrics && i == m.cursor {
		name = cursorStyle.Render(name)
	}

	// Style cycling is only offered while the metric is plotted.
	var styleCell string
	if m.sel.IsSelected(metric.ID) {
		styleCell = m.zones.Mark(zoneStylePrefix+string(metric.ID), m.sel.Styles[metric.ID].Label())
	} else {
		styleCell = disabledStyle.Render("--")
	}

	row := fmt.Sprintf("%s %s %s %s", check, swatch, name, styleCell)
	return m.zones.Mark(zoneMetricPrefix+string(metric.ID), row)
}

func (m model) insightViewRender() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 AI 趨勢分析"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %d-%d", m.sel.StartYear, m.sel.EndYear)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("分析中...\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("錯誤: " + m.err.Error()))
		b.WriteString("\n")
	default:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑↓ 捲動 · Esc 返回"))
	return b.String()
}

func (m model) askViewRender() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("💬 資料提問"))
	b.WriteString("\n\n")
	b.WriteString(m.askInput.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("思考中...\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("錯誤: " + m.err.Error()))
		b.WriteString("\n")
	case m.askAnswer != "":
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	default:
		b.WriteString(helpStyle.Render("輸入問題後按 Enter,AI 會查詢統計資料後回答。"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter 送出 · ↑↓ 捲動 · Esc 返回"))
	return b.String()
}

func (m model) helpViewRender() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("❓ 操作說明"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑↓ 捲動 · Esc 返回"))
	return b.String()
}

// renderMarkdown renders markdown content with glamour for terminal display.
func renderMarkdown(content string, width int) (string, error) {
	if width < 20 {
		width = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return renderer.Render(content)
}

const helpText = `# 操作說明

## 控制面板

| 按鍵 | 功能 |
|------|------|
| Tab / Shift+Tab | 在統計項目與年份選擇器之間切換焦點 |
| ↑ / ↓ | 移動游標,或調整焦點中的年份 |
| ← / → | 調整焦點中的年份 |
| PgUp / PgDn | 年份一次調整十年 |
| 空白鍵 / Enter | 選取或取消游標所在的統計項目 |
| s | 切換游標所在項目的圖形樣式(折線、柱狀、面積) |
| r | 重設所有選項 |
| f | 圖表全螢幕 |

## 圖表

| 操作 | 功能 |
|------|------|
| 點擊資料點 | 強調該系列並顯示當年詳細數值 |
| 點擊圖表空白處 | 取消強調 |
| c | 複製詳細數值 |
| Esc | 取消強調;未強調時離開程式 |

## 其他

| 按鍵 | 功能 |
|------|------|
| i | AI 趨勢分析(需設定 ANTHROPIC_API_KEY) |
| a | 對資料提問 |
| q / Ctrl+C | 離開 |

起始年份調高到超過結束年份時,結束年份會自動跟著調高。
未選任何統計項目時不會繪製圖表。
`

// launchTUI starts the interactive terminal interface.
func launchTUI(dataDir, configPath string) {
	if err := setupLogger(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to set up logging: %v\n", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("config load failed, using defaults", "path", configPath, "error", err)
		}
		cfg = DefaultConfig()
	}

	var insights *InsightService
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		insights = NewInsightService(apiKey)
		if logger != nil {
			logger.Info("insight service enabled")
		}
	} else if logger != nil {
		logger.Info("ANTHROPIC_API_KEY not set, AI features disabled")
	}

	p := tea.NewProgram(
		initialModel(cfg, insights),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		if logger != nil {
			logger.Error("TUI crashed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	cmd.LaunchTUI = launchTUI
	cmd.InitStore = openStatsStore
	cmd.InitInsights = initInsightRunner
	cmd.NewAgentSource = newAgentSource
	cmd.StartServer = startServer
	cmd.RunExport = runExport

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
