package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chorewheel/internal/materializer"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/report"
	"github.com/julianstephens/chorewheel/internal/tui/components/chorelist"
)

type SessionState int

// The first three states are the tabs, in display order.
const (
	StateBoard SessionState = iota
	StateHousehold
	StateWeek
	StatePicking
)

const tabCount = 3

type Model struct {
	m      *materializer.Materializer
	date   time.Time
	state  SessionState
	keys   KeyMap
	help   help.Model
	chores chorelist.Model
	form   *huh.Form

	// picked is shared with the form, so it must outlive Model copies.
	picked    *int64
	person    models.Person
	hasPerson bool

	byPerson  map[int64][]models.Assignment
	summaries []report.PersonSummary
	weekLabel string

	status   string
	err      error
	quitting bool
	width    int
	height   int
}

// NewModel opens the board for date. A zero personID starts with the person
// picker.
func NewModel(m *materializer.Materializer, date time.Time, personID int64) Model {
	model := Model{
		m:      m,
		date:   date,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		chores: chorelist.New(nil, 0, 0),
		picked: new(int64),
	}

	if p, ok := model.lookup(personID); ok {
		model.person = p
		model.hasPerson = true
		model.state = StateBoard
	} else {
		model.startPicking()
	}
	model.refresh()
	return model
}

func (m Model) lookup(id int64) (models.Person, bool) {
	for _, p := range m.m.Roster() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Person{}, false
}

func (m *Model) startPicking() {
	*m.picked = m.person.ID
	m.form = NewPersonForm(m.m.Roster(), m.picked)
	m.state = StatePicking
}

// refresh reloads the day, the household summary and the week's stats.
func (m *Model) refresh() {
	byPerson, err := m.m.Ensure(m.date)
	if err != nil {
		m.err = err
		return
	}
	m.byPerson = byPerson
	m.chores.SetAssignments(byPerson[m.person.ID])

	week := report.Week(m.date)
	start, end := week.Range()
	rows, err := m.m.Store().Stats(start, end)
	if err != nil {
		m.err = err
		return
	}
	m.summaries = report.Summarize(rows)
	m.weekLabel = week.Label
	m.err = nil
}

func (m *Model) complete(id int64) {
	a, err := m.m.Complete(m.person.ID, id, m.date)
	if err != nil {
		m.status = fmt.Sprintf("Could not complete #%d: %v", id, err)
		return
	}
	m.status = fmt.Sprintf("✓ Done: %s (%s)", a.Description, a.Room)
	m.refresh()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateBoard {
		keys = append(keys, m.keys.Done)
	}
	return append(keys, m.keys.Switch, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.Done, m.keys.Switch, m.keys.Refresh}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.state == StatePicking {
		return m.form.Init()
	}
	return nil
}
