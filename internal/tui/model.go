// Package tui renders the issue list and the submission form in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

// IssueStore is the subset of the issues client the UI needs.
type IssueStore interface {
	List(ctx context.Context, token string) ([]domain.Issue, error)
	Create(ctx context.Context, token, title string) error
}

// Session is the subset of the session manager the UI needs.
type Session interface {
	Logout(ctx context.Context) error
}

// PrincipalMsg tells the model the signed-in principal changed; nil means
// signed out.
type PrincipalMsg struct {
	Principal *domain.Principal
}

type issuesLoadedMsg struct {
	seq    int
	issues []domain.Issue
	err    error
}

type createdMsg struct {
	err error
}

type keyMap struct {
	Submit  key.Binding
	Refresh key.Binding
	Logout  key.Binding
	Delete  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Logout:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
	Delete:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete account")),
	Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// Model is the bubbletea model. Every list fetch carries a sequence number;
// a response for anything but the newest fetch is dropped.
type Model struct {
	ctx     context.Context
	store   IssueStore
	session Session
	log     zerolog.Logger

	principal *domain.Principal
	issues    []domain.Issue
	loading   bool
	seq       int

	input   textinput.Model
	spinner spinner.Model

	deleteRequested bool
}

// New builds the model for the given starting principal (nil when signed out).
func New(ctx context.Context, store IssueStore, session Session, principal *domain.Principal, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add an issue"
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		store:     store,
		session:   session,
		log:       log,
		principal: principal,
		loading:   principal != nil,
		input:     ti,
		spinner:   sp,
	}
	if principal != nil {
		// Init issues the first fetch under this number.
		m.seq = 1
	}
	return m
}

// DeleteRequested reports whether the user quit asking to delete the account.
func (m Model) DeleteRequested() bool { return m.deleteRequested }

func (m Model) Init() tea.Cmd {
	if m.principal == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.list(m.seq))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PrincipalMsg:
		return m.setPrincipal(msg.Principal)

	case issuesLoadedMsg:
		if msg.seq != m.seq {
			m.log.Debug().Int("seq", msg.seq).Int("latest", m.seq).Msg("dropping stale issue list")
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("failed to fetch issues")
			return m, nil
		}
		m.issues = msg.issues
		return m, nil

	case createdMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("failed to create issue")
		}
		if m.principal == nil {
			return m, nil
		}
		return m.fetch()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if m.principal == nil {
				return m, nil
			}
			return m.fetch()
		case key.Matches(msg, keys.Logout):
			if m.principal == nil {
				return m, nil
			}
			return m, m.logout()
		case key.Matches(msg, keys.Delete):
			if m.principal == nil {
				return m, nil
			}
			m.deleteRequested = true
			return m, tea.Quit
		case key.Matches(msg, keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) setPrincipal(p *domain.Principal) (tea.Model, tea.Cmd) {
	m.principal = p
	if p == nil {
		// Invalidate any fetch still in flight for the previous principal.
		m.seq++
		m.issues = nil
		m.loading = false
		return m, nil
	}
	m.loading = true
	m, fetch := m.fetch()
	return m, tea.Batch(m.spinner.Tick, fetch)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	title := m.input.Value()
	if m.principal == nil || strings.TrimSpace(title) == "" {
		return m, nil
	}
	m.input.SetValue("")

	ctx, store, token := m.ctx, m.store, m.principal.Token
	return m, func() tea.Msg {
		return createdMsg{err: store.Create(ctx, token, title)}
	}
}

// fetch issues a new list request and makes it the newest one.
func (m Model) fetch() (Model, tea.Cmd) {
	m.seq++
	return m, m.list(m.seq)
}

func (m Model) list(seq int) tea.Cmd {
	ctx, store, token := m.ctx, m.store, m.principal.Token
	return func() tea.Msg {
		issues, err := store.List(ctx, token)
		return issuesLoadedMsg{seq: seq, issues: issues, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	ctx, session, log := m.ctx, m.session, m.log
	return func() tea.Msg {
		if err := session.Logout(ctx); err != nil {
			log.Error().Err(err).Msg("logout failed")
		}
		return nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Issues"))
	if m.principal != nil {
		who := m.principal.Name
		if who == "" {
			who = m.principal.Email
		}
		b.WriteString("  " + mutedStyle.Render("signed in as ") + accentStyle.Render(who))
	}
	b.WriteString("\n\n")

	switch {
	case m.principal == nil:
		b.WriteString(mutedStyle.Render("Signed out. Quit and run `issues login` to sign in."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc quit"))
		return b.String()
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading issues…")
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(panelStyle.Render(m.renderIssues()))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(helpLine()))
	return b.String()
}

func (m Model) renderIssues() string {
	if len(m.issues) == 0 {
		return mutedStyle.Render("No issues yet.")
	}
	lines := make([]string, 0, len(m.issues))
	for _, is := range m.issues {
		line := fmt.Sprintf("%s %s", statusIcon(is.Status), is.Title)
		if is.AssigneeName != nil && *is.AssigneeName != "" {
			line += "  " + mutedStyle.Render("@"+*is.AssigneeName)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func helpLine() string {
	parts := make([]string, 0, 5)
	for _, k := range []key.Binding{keys.Submit, keys.Refresh, keys.Logout, keys.Delete, keys.Quit} {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
