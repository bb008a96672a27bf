package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	todoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// statusIcon renders the status glyph shown in front of every issue.
func statusIcon(s domain.IssueStatus) string {
	switch s {
	case domain.StatusToDo:
		return todoStyle.Render("○")
	case domain.StatusInProgress:
		return progressStyle.Render("◐")
	default:
		return doneStyle.Render("●")
	}
}
