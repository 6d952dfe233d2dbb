package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ritual/internal/engine"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/phrases"
	"github.com/julianstephens/ritual/internal/tui/components/calendar"
	"github.com/julianstephens/ritual/internal/tui/components/statspane"
	"github.com/julianstephens/ritual/internal/tui/components/timerpane"
	"github.com/julianstephens/ritual/internal/tui/components/today"
	"github.com/julianstephens/ritual/internal/validation"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateTimer
	StateStats
	StateCalendar
	StateAddHabit
	StateReview
)

// tabCount is the number of states reachable with tab cycling.
const tabCount = 4

type tickMsg time.Time

// celebrateMsg flashes the congratulations banner on the today view.
type celebrateMsg struct{}

type clearCelebrationMsg struct{}

type HabitFormModel struct {
	Name     string
	Type     string
	Target   string
	Duration string
	Why      string
}

type ReviewFormModel struct {
	Rating string
	Note   string
}

type Model struct {
	engine        *engine.Engine
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	timerModel    timerpane.Model
	statsModel    statspane.Model
	calModel      calendar.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	reviewForm    *ReviewFormModel
	celebrating   bool
	quitting      bool
	width         int
	height        int
}

// celebrations carries Celebrate calls from the engine into the update loop.
// The engine fires the trigger synchronously from ToggleCompletion, which in
// the TUI always runs inside Update, so a buffered channel of one is enough.
type celebrations struct {
	ch chan struct{}
}

func newCelebrations() *celebrations {
	return &celebrations{ch: make(chan struct{}, 1)}
}

func (c *celebrations) Celebrate() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

var celebrationFeed = newCelebrations()

// CelebrationTrigger returns the Trigger the TUI observes for the banner.
// Wire it into the engine alongside any external notifier.
func CelebrationTrigger() engine.Trigger {
	return celebrationFeed
}

func NewModel(eng *engine.Engine) Model {
	m := Model{
		engine:     eng,
		state:      StateToday,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		todayModel: today.New(nil, 0, 0),
		timerModel: timerpane.New(40),
		statsModel: statspane.New(0, 0),
		calModel:   calendar.New(eng.Today()),
	}
	m.refreshToday()
	m.refreshStats()
	m.refreshCalendar(m.calModel.Days())
	m.timerModel.SetTimer(eng.Timer())
	return m
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) refreshToday() {
	todayDate := m.engine.Today()
	habits := m.engine.ActiveHabits()
	weekly := m.engine.WeeklyProgressFor(todayDate)

	entries := make([]today.Entry, 0, len(habits))
	for _, h := range habits {
		entry := today.Entry{
			Habit:     h,
			Completed: m.engine.IsCompleted(h.ID, todayDate),
			Streak:    m.engine.HabitStreak(h.ID),
		}
		switch h.Type {
		case models.HabitWeekly:
			for _, wp := range weekly {
				if wp.HabitID == h.ID {
					entry.Detail = strconv.Itoa(wp.Completed) + "/" + strconv.Itoa(wp.Target) + " this week"
				}
			}
		case models.HabitTimed:
			if progress := m.engine.TimedProgressFor(h.ID, todayDate); progress > 0 && !entry.Completed {
				entry.Detail = strconv.Itoa(progress/60) + "m saved"
			}
		}
		entries = append(entries, entry)
	}
	m.todayModel.SetEntries(entries)
}

func (m *Model) refreshStats() {
	m.statsModel.SetStats(
		m.engine.Statistics(),
		m.engine.StreaksAtRisk(),
		m.engine.WeeklyProgressFor(m.engine.Today()),
	)
}

func (m *Model) refreshCalendar(days []string) {
	rates := make(map[string]float64, len(days))
	for _, day := range days {
		rates[day] = m.engine.DayCompletionRate(day)
	}
	m.calModel.SetToday(m.engine.Today())
	m.calModel.SetRates(rates)
}

func (m *Model) startAddHabitForm() {
	m.habitForm = &HabitFormModel{Type: "daily", Target: "3", Duration: "30"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.habitForm.Name).
				Validate(validation.HabitName),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Timed", "timed"),
				).
				Value(&m.habitForm.Type),
			huh.NewInput().
				Title("Times per week (weekly only)").
				Value(&m.habitForm.Target),
			huh.NewInput().
				Title("Minutes per session (timed only)").
				Value(&m.habitForm.Duration),
			huh.NewInput().
				Title("Why does this matter?").
				Value(&m.habitForm.Why),
		),
	)
	m.previousState = m.state
	m.state = StateAddHabit
}

func (m *Model) submitHabitForm() {
	target, err := strconv.Atoi(strings.TrimSpace(m.habitForm.Target))
	if err != nil || target < 1 {
		target = 1
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(m.habitForm.Duration))
	if err != nil || minutes < 1 {
		minutes = 30
	}
	m.engine.AddHabit(m.habitForm.Name, models.HabitType(m.habitForm.Type), engine.HabitOptions{
		TargetPerWeek:  target,
		TargetDuration: minutes * 60,
		Why:            m.habitForm.Why,
	})
}

func (m *Model) startReviewForm() {
	m.reviewForm = &ReviewFormModel{Rating: "3"}
	if existing, ok := m.engine.DailyReviewFor(m.engine.Today()); ok {
		m.reviewForm.Rating = strconv.Itoa(existing.Rating)
		m.reviewForm.Note = existing.Note
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How was today?").
				Options(
					huh.NewOption("★★★★★ Great", "5"),
					huh.NewOption("★★★★☆ Good", "4"),
					huh.NewOption("★★★☆☆ Okay", "3"),
					huh.NewOption("★★☆☆☆ Rough", "2"),
					huh.NewOption("★☆☆☆☆ Hard", "1"),
				).
				Value(&m.reviewForm.Rating),
			huh.NewInput().
				Title("Anything to note?").
				Value(&m.reviewForm.Note),
		),
	)
	m.previousState = m.state
	m.state = StateReview
}

func (m *Model) submitReviewForm() {
	rating, err := strconv.Atoi(m.reviewForm.Rating)
	if err != nil {
		return
	}
	m.engine.AddDailyReview(rating, m.reviewForm.Note)
}

func (m Model) phrase() string {
	return strings.Join(phrases.Select(m.engine.Settings(), m.engine.Today()), " ")
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateTimer {
		keys = append(keys, m.keys.Pause, m.keys.Stop, m.keys.Finish)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	timer := []key.Binding{m.keys.Pause, m.keys.Stop, m.keys.Finish}
	return [][]key.Binding{global, navigation, timer}
}
