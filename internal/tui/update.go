package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chorewheel/internal/tui/components/chorelist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		// tabs, status line and help
		m.chores.SetSize(size.Width, size.Height-4)
	}

	if m.state == StatePicking {
		return m.updatePicking(msg)
	}

	switch msg := msg.(type) {
	case chorelist.CompleteMsg:
		m.complete(msg.ID)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateBoard && m.chores.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Switch):
			m.startPicking()
			return m, m.form.Init()
		}
	}

	if m.state == StateBoard {
		var cmd tea.Cmd
		m.chores, cmd = m.chores.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePicking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if p, ok := m.lookup(*m.picked); ok {
			m.person = p
			m.hasPerson = true
			m.status = ""
		}
		m.state = StateBoard
		m.refresh()
		return m, nil
	case huh.StateAborted:
		if !m.hasPerson {
			m.quitting = true
			return m, tea.Quit
		}
		m.state = StateBoard
		return m, nil
	}
	return m, cmd
}
