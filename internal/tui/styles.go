package tui

import "github.com/charmbracelet/lipgloss"

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	personStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Padding(0, 1)
)
