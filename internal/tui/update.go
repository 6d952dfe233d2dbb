package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/tui/components/calendar"
	"github.com/julianstephens/ritual/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 6
		if contentHeight < 4 {
			contentHeight = 4
		}
		m.todayModel.SetSize(msg.Width-4, contentHeight)
		m.statsModel.SetSize(msg.Width-4, contentHeight)
		m.timerModel.SetWidth(msg.Width - 8)

	case tickMsg:
		timer := m.engine.Timer()
		if timer.Ticking() {
			m.engine.TickTimer()
			timer = m.engine.Timer()
			if !timer.Idle() && timer.ElapsedTime >= timer.TargetDuration {
				m.engine.CompleteTimer()
				m.refreshToday()
				m.refreshStats()
			}
		}
		m.timerModel.SetTimer(m.engine.Timer())

		select {
		case <-celebrationFeed.ch:
			m.celebrating = true
			return m, tea.Batch(tickCmd(), clearCelebrationCmd())
		default:
		}
		return m, tickCmd()

	case clearCelebrationMsg:
		m.celebrating = false
		return m, nil

	case today.ToggleMsg:
		m.engine.ToggleCompletion(msg.ID, m.engine.Today(), 0)
		m.refreshToday()
		m.refreshStats()
		m.refreshCalendar(m.calModel.Days())
		return m, nil

	case today.AddHabitMsg:
		m.startAddHabitForm()
		return m, m.form.Init()

	case today.ArchiveHabitMsg:
		archived := true
		m.engine.UpdateHabit(msg.ID, models.HabitUpdate{Archived: &archived})
		m.refreshToday()
		m.refreshStats()
		return m, nil

	case today.StartTimerMsg:
		m.engine.StartTimer(msg.ID)
		m.timerModel.SetTimer(m.engine.Timer())
		m.state = StateTimer
		return m, nil

	case today.ReviewMsg:
		m.startReviewForm()
		return m, m.form.Init()

	case calendar.MonthChangedMsg:
		m.refreshCalendar(msg.Days)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateAddHabit || m.state == StateReview {
			return m.updateForm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.state == StateTimer {
			return m.updateTimerKeys(msg)
		}
	}

	return m.updateComponents(msg)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateAddHabit {
			m.submitHabitForm()
		} else {
			m.submitReviewForm()
		}
		m.state = m.previousState
		m.form = nil
		m.refreshToday()
		m.refreshStats()
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateTimerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		if m.engine.Timer().Paused {
			m.engine.ResumeTimer()
		} else {
			m.engine.PauseTimer()
		}
	case key.Matches(msg, m.keys.Stop):
		m.engine.StopTimer()
		m.refreshToday()
	case key.Matches(msg, m.keys.Finish):
		m.engine.CompleteTimer()
		m.refreshToday()
		m.refreshStats()
	}
	m.timerModel.SetTimer(m.engine.Timer())
	return m, nil
}

func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case StateTimer:
		m.timerModel, cmd = m.timerModel.Update(msg)
	case StateStats:
		m.statsModel, cmd = m.statsModel.Update(msg)
	case StateCalendar:
		m.calModel, cmd = m.calModel.Update(msg)
	}
	return m, cmd
}

func clearCelebrationCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearCelebrationMsg{}
	})
}
