package statspane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ritual/internal/engine"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	riskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type Model struct {
	viewport viewport.Model
	stats    engine.Stats
	risks    []engine.RiskInfo
	weekly   []engine.WeeklyProgress
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) SetStats(stats engine.Stats, risks []engine.RiskInfo, weekly []engine.WeeklyProgress) {
	m.stats = stats
	m.risks = risks
	m.weekly = weekly
	m.render()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) render() {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	pct := func(rate float64) string { return fmt.Sprintf("%.0f%%", rate*100) }

	row("Today", pct(m.stats.TodayRate))
	row("This week", pct(m.stats.WeekRate))
	row("Last 30 days", pct(m.stats.ThirtyDayRate))
	if m.stats.WeeklyTargetsTotal > 0 {
		row("Weekly targets", fmt.Sprintf("%d/%d", m.stats.WeeklyTargetsMet, m.stats.WeeklyTargetsTotal))
	}
	row("Perfect days", fmt.Sprintf("%d of %d", m.stats.PerfectDays, m.stats.PerfectDaysTotal))
	row("Completions", fmt.Sprintf("%d", m.stats.TotalCompletions))
	row("Best streak", fmt.Sprintf("%d days", m.stats.BestStreak))
	row("Current best", fmt.Sprintf("%d days", m.stats.CurrentBestStreak))

	if len(m.weekly) > 0 {
		b.WriteString("\n")
		for _, wp := range m.weekly {
			mark := " "
			if wp.Met() {
				mark = "✓"
			}
			b.WriteString(fmt.Sprintf("[%s] %s %d/%d\n", mark, wp.HabitName, wp.Completed, wp.Target))
		}
	}

	if len(m.risks) > 0 {
		b.WriteString("\n")
		for _, r := range m.risks {
			b.WriteString(riskStyle.Render(fmt.Sprintf("⚠ %s: %d-day streak at risk", r.HabitName, r.StreakLength)) + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}
