package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateAddHabit || m.state == StateReview {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateTimer:
		content = docStyle.Render(m.timerModel.View())
	case StateStats:
		content = docStyle.Render(m.statsModel.View())
	case StateCalendar:
		content = docStyle.Render(m.calModel.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Timer", "Stats", "Calendar"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	banner := phraseStyle.Render(m.phrase())
	if m.celebrating {
		banner = celebrationStyle.Render("🎉 All rituals complete. Well done.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, banner, m.todayModel.View())
}
