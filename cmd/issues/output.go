package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func ok(msg string) {
	fmt.Println(successStyle.Render("✔ " + msg))
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✖ "+msg))
}

func colorsEnabled() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// issuesMarkdown renders issues as a markdown table.
func issuesMarkdown(issues []domain.Issue) string {
	if len(issues) == 0 {
		return "_No issues yet._\n"
	}
	var b strings.Builder
	b.WriteString("| # | Status | Title | Assignee |\n|---|---|---|---|\n")
	for _, is := range issues {
		assignee := "—"
		if is.AssigneeName != nil && *is.AssigneeName != "" {
			assignee = *is.AssigneeName
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", is.ID, is.Status, escapeCell(is.Title), escapeCell(assignee))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// renderMarkdown renders for the terminal, or returns md untouched when
// colours are off.
func renderMarkdown(md string) (string, error) {
	if !colorsEnabled() {
		return md, nil
	}
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		return md, err
	}
	return strings.TrimRight(out, "\n"), nil
}
