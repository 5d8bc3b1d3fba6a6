package chorelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chorewheel/internal/models"
)

type CompleteMsg struct {
	ID int64
}

type Item struct {
	Assignment models.Assignment
}

func (i Item) Title() string {
	if i.Assignment.Completed {
		return "✅ " + i.Assignment.Description
	}
	return "⬜️ " + i.Assignment.Description
}

func (i Item) Description() string {
	return fmt.Sprintf("#%d | %s | %s", i.Assignment.ID, i.Assignment.Room, i.Assignment.Level.Label())
}

func (i Item) FilterValue() string {
	return i.Assignment.Room + " " + i.Assignment.Description
}

type KeyMap struct {
	Done key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Done: key.NewBinding(
			key.WithKeys("enter", "x", " "),
			key.WithHelp("enter/x", "mark done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(assignments []models.Assignment, width, height int) Model {
	l := list.New(items(assignments), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Done}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Done}
	}

	return Model{list: l, keys: keys}
}

func items(assignments []models.Assignment) []list.Item {
	out := make([]list.Item, len(assignments))
	for i, a := range assignments {
		out[i] = Item{Assignment: a}
	}
	return out
}

func (m *Model) SetAssignments(assignments []models.Assignment) {
	m.list.SetItems(items(assignments))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether keystrokes currently go to the filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.Matches(msg, m.keys.Done) {
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Assignment.Completed {
				return m, func() tea.Msg { return CompleteMsg{ID: i.Assignment.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No tasks today 🎉"
	}
	return m.list.View()
}
