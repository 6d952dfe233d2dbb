package today

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ritual/internal/models"
)

type ToggleMsg struct {
	ID string
}

type AddHabitMsg struct{}

type ArchiveHabitMsg struct {
	ID string
}

type StartTimerMsg struct {
	ID string
}

type ReviewMsg struct{}

// Entry is one habit row with its derived display state.
type Entry struct {
	Habit     models.Habit
	Completed bool
	Streak    int
	Detail    string // weekly count or timed progress
}

type Item struct {
	Entry Entry
}

func (i Item) Title() string {
	mark := "[ ]"
	if i.Entry.Completed {
		mark = "[✓]"
	}
	return fmt.Sprintf("%s %s", mark, i.Entry.Habit.Name)
}

func (i Item) Description() string {
	desc := string(i.Entry.Habit.Type)
	if i.Entry.Detail != "" {
		desc += " | " + i.Entry.Detail
	}
	if i.Entry.Streak > 0 {
		desc += fmt.Sprintf(" | 🔥 %d", i.Entry.Streak)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Habit.Name }

type KeyMap struct {
	Toggle  key.Binding
	Add     key.Binding
	Archive key.Binding
	Timer   key.Binding
	Review  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Timer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "timer"),
		),
		Review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "review day"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []Entry, width, height int) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Timer, keys.Review}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Archive, keys.Timer, keys.Review}
	}

	return Model{list: l, keys: keys}
}

// SetEntries replaces the rows while preserving the cursor position.
func (m *Model) SetEntries(entries []Entry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx < len(items) {
		m.list.Select(idx)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleMsg{ID: i.Entry.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ArchiveHabitMsg{ID: i.Entry.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Timer):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Entry.Habit.Type == models.HabitTimed {
					return m, func() tea.Msg { return StartTimerMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Review):
			return m, func() tea.Msg { return ReviewMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
