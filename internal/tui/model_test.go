package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

type stubStore struct {
	lists   [][]domain.Issue
	listErr error
	created []string
	tokens  []string
	err     error
}

func (s *stubStore) List(ctx context.Context, token string) ([]domain.Issue, error) {
	s.tokens = append(s.tokens, token)
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.lists) == 0 {
		return nil, nil
	}
	next := s.lists[0]
	s.lists = s.lists[1:]
	return next, nil
}

func (s *stubStore) Create(ctx context.Context, token, title string) error {
	s.created = append(s.created, title)
	return s.err
}

type stubSession struct{ logouts int }

func (s *stubSession) Logout(ctx context.Context) error {
	s.logouts++
	return nil
}

var ann = &domain.Principal{Subject: "u1", Email: "a@x.com", Name: "Ann", Token: "tok"}

func issue(id int64, title string) domain.Issue {
	return domain.Issue{ID: id, Title: title, Status: domain.StatusToDo}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartsLoadingWhenSignedIn(t *testing.T) {
	store := &stubStore{lists: [][]domain.Issue{{issue(1, "Demo")}}}
	m := New(context.Background(), store, &stubSession{}, ann, zerolog.Nop())

	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Loading issues")

	msg := m.list(m.seq)()
	m, _ = update(t, m, msg)
	assert.False(t, m.loading)
	require.Len(t, m.issues, 1)
	assert.Contains(t, m.View(), "Demo")
	assert.Equal(t, []string{"tok"}, store.tokens)
}

func TestModel_SignedOut(t *testing.T) {
	m := New(context.Background(), &stubStore{}, &stubSession{}, nil, zerolog.Nop())
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Signed out")

	m, cmd := update(t, m, press("ctrl+r"))
	assert.Nil(t, cmd)
	m, cmd = update(t, m, press("ctrl+d"))
	assert.Nil(t, cmd)
	assert.False(t, m.DeleteRequested())
}

func TestModel_DropsStaleResponses(t *testing.T) {
	store := &stubStore{}
	m := New(context.Background(), store, &stubSession{}, ann, zerolog.Nop())

	first := m.list(m.seq)
	m, second := update(t, m, press("ctrl+r"))
	require.NotNil(t, second)

	store.lists = [][]domain.Issue{{issue(2, "fresh")}, {issue(1, "stale")}}
	fresh := second()
	stale := first()

	m, _ = update(t, m, fresh)
	m, _ = update(t, m, stale)

	require.Len(t, m.issues, 1)
	assert.Equal(t, "fresh", m.issues[0].Title)
}

func TestModel_SubmitRefetchesOnAnyResult(t *testing.T) {
	for _, createErr := range []error{nil, errors.New("status 500")} {
		store := &stubStore{err: createErr}
		m := New(context.Background(), store, &stubSession{}, ann, zerolog.Nop())
		m, _ = update(t, m, m.list(m.seq)())

		for _, r := range "Buy milk" {
			m, _ = update(t, m, press(string(r)))
		}
		m, cmd := update(t, m, press("enter"))
		require.NotNil(t, cmd)
		assert.Empty(t, m.input.Value(), "input clears on submit")
		assert.Empty(t, m.issues, "no optimistic rendering")

		created := cmd()
		assert.Equal(t, []string{"Buy milk"}, store.created)

		store.lists = [][]domain.Issue{{issue(7, "Buy milk")}}
		m, refetch := update(t, m, created)
		require.NotNil(t, refetch)
		m, _ = update(t, m, refetch())
		require.Len(t, m.issues, 1)
		assert.Equal(t, "Buy milk", m.issues[0].Title)
	}
}

func TestModel_BlankTitleIgnored(t *testing.T) {
	store := &stubStore{}
	m := New(context.Background(), store, &stubSession{}, ann, zerolog.Nop())
	m, _ = update(t, m, press(" "))
	_, cmd := update(t, m, press("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, store.created)
}

func TestModel_FetchErrorIsLoggedOnly(t *testing.T) {
	store := &stubStore{lists: [][]domain.Issue{{issue(1, "Demo")}}}
	m := New(context.Background(), store, &stubSession{}, ann, zerolog.Nop())
	m, _ = update(t, m, m.list(m.seq)())

	store.listErr = errors.New("status 500")
	m, cmd := update(t, m, press("ctrl+r"))
	m, _ = update(t, m, cmd())

	require.Len(t, m.issues, 1, "previous list stays on screen")
	assert.False(t, m.loading)
	assert.NotContains(t, strings.ToLower(m.View()), "error")
}

func TestModel_PrincipalChanges(t *testing.T) {
	store := &stubStore{lists: [][]domain.Issue{{issue(1, "Demo")}}}
	m := New(context.Background(), store, &stubSession{}, nil, zerolog.Nop())

	m, cmd := update(t, m, PrincipalMsg{Principal: ann})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	inflight := m.list(m.seq)

	m, _ = update(t, m, PrincipalMsg{Principal: nil})
	assert.Nil(t, m.issues)

	m, _ = update(t, m, inflight())
	assert.Nil(t, m.issues, "responses for a signed-out principal are dropped")
}

func TestModel_Logout(t *testing.T) {
	sess := &stubSession{}
	m := New(context.Background(), &stubStore{}, sess, ann, zerolog.Nop())
	_, cmd := update(t, m, press("ctrl+l"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 1, sess.logouts)
}

func TestModel_DeleteRequestQuits(t *testing.T) {
	m := New(context.Background(), &stubStore{}, &stubSession{}, ann, zerolog.Nop())
	m, cmd := update(t, m, press("ctrl+d"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.DeleteRequested())
}
