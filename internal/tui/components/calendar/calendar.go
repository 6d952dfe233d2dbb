package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ritual/internal/dateutil"
)

// MonthChangedMsg asks the parent to refresh completion rates for the grid.
type MonthChangedMsg struct {
	Days []string
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true)

	fullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	partialStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

type KeyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next month"),
		),
	}
}

type Model struct {
	anchor string // any date inside the displayed month
	today  string
	days   []string
	rates  map[string]float64
	keys   KeyMap
}

func New(today string) Model {
	m := Model{
		anchor: today,
		today:  today,
		rates:  map[string]float64{},
		keys:   DefaultKeyMap(),
	}
	m.days = dateutil.CalendarDays(m.anchor)
	return m
}

// Days returns the 42 dates currently on the grid.
func (m Model) Days() []string {
	return m.days
}

// SetRates supplies the completion rate per visible date.
func (m *Model) SetRates(rates map[string]float64) {
	m.rates = rates
}

func (m *Model) SetToday(today string) {
	m.today = today
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevMonth):
			return m.shiftMonth(-1)
		case key.Matches(msg, m.keys.NextMonth):
			return m.shiftMonth(1)
		}
	}
	return m, nil
}

func (m Model) shiftMonth(delta int) (Model, tea.Cmd) {
	t, err := dateutil.ParseDate(m.anchor)
	if err != nil {
		return m, nil
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	m.anchor = dateutil.FormatDate(first.AddDate(0, delta, 0))
	m.days = dateutil.CalendarDays(m.anchor)
	days := m.days
	return m, func() tea.Msg { return MonthChangedMsg{Days: days} }
}

func (m Model) View() string {
	t, err := dateutil.ParseDate(m.anchor)
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(t.Format("January 2006")) + "\n")
	b.WriteString(weekdayStyle.Render(" Mo  Tu  We  Th  Fr  Sa  Su") + "\n")

	for i, day := range m.days {
		cell := fmt.Sprintf("%3d", dayOfMonth(day))
		switch {
		case day == m.today:
			cell = todayStyle.Render(cell)
		case !dateutil.SameMonth(day, m.anchor):
			cell = dimStyle.Render(cell)
		case m.rates[day] >= 1:
			cell = fullStyle.Render(cell)
		case m.rates[day] > 0:
			cell = partialStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + weekdayStyle.Render("←/→ change month"))
	return b.String()
}

func dayOfMonth(date string) int {
	t, err := dateutil.ParseDate(date)
	if err != nil {
		return 0
	}
	return t.Day()
}
