package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/chorewheel/internal/report"
)

var tabTitles = []string{"My tasks", "Household", "This week"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StatePicking {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateBoard:
		content = m.chores.View()
	case StateHousehold:
		content = docStyle.Render(m.viewHousehold())
	case StateWeek:
		content = docStyle.Render(report.FormatStats(m.weekLabel, m.summaries))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(tabTitles)+1)
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, personStyle.Render(fmt.Sprintf("%s · %s", m.person.Name, m.date.Format("02.01.2006"))))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHousehold() string {
	lines := []string{report.FormatGroupSummary(m.date, m.m.Roster(), m.byPerson), ""}
	for _, p := range m.m.Roster() {
		lines = append(lines, headerStyle.Render(p.Name), report.FormatAssignments(m.byPerson[p.ID]), "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return dangerStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	return ""
}
