package timerpane

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ritual/internal/models"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	bar   progress.Model
	timer models.TimerState
	width int
}

func New(width int) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = width
	return Model{bar: bar, width: width}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case progress.FrameMsg:
		var updated tea.Model
		updated, cmd = m.bar.Update(msg)
		m.bar = updated.(progress.Model)
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
	}
	return m, cmd
}

func (m *Model) SetTimer(timer models.TimerState) {
	m.timer = timer
}

func (m *Model) SetWidth(width int) {
	m.width = width
	barWidth := width - 8
	if barWidth < 10 {
		barWidth = 10
	}
	m.bar.Width = barWidth
}

func (m Model) View() string {
	if m.timer.Idle() {
		return "No active timer.\nSelect a timed habit and press 't' to start one."
	}

	fraction := 0.0
	if m.timer.TargetDuration > 0 {
		fraction = float64(m.timer.ElapsedTime) / float64(m.timer.TargetDuration)
		if fraction > 1 {
			fraction = 1
		}
	}

	state := "running"
	if m.timer.Paused {
		state = "paused (p to resume)"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		nameStyle.Render(m.timer.HabitName),
		"",
		m.bar.ViewAs(fraction),
		"",
		fmt.Sprintf("%s %s",
			clockStyle.Render(formatClock(m.timer.ElapsedTime)+" / "+formatClock(m.timer.TargetDuration)),
			stateStyle.Render(state),
		),
	)
}

func formatClock(seconds int) string {
	if seconds < 3600 {
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
