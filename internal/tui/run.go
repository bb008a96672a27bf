package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

// Subscriber delivers principal changes; the identity session manager is one.
type Subscriber interface {
	Subscribe(fn func(*domain.Principal)) (unsubscribe func())
}

// Run starts the program and blocks until the user quits. It reports whether
// the user asked to delete the account on the way out.
func Run(ctx context.Context, m Model, sub Subscriber) (deleteRequested bool, err error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := sub.Subscribe(func(principal *domain.Principal) {
		p.Send(PrincipalMsg{Principal: principal})
	})
	defer unsubscribe()

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return fm.DeleteRequested(), nil
}
