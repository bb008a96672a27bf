package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

var (
	// ErrChallengeAbandoned means the user closed the login form.
	ErrChallengeAbandoned = errors.New("login abandoned")
	// ErrNotConfirmed means the user declined a destructive action.
	ErrNotConfirmed = errors.New("not confirmed")
	// ErrNotSignedIn means the operation needs a current principal.
	ErrNotSignedIn = errors.New("not signed in")
)

// Provider is the identity provider as seen by the session manager.
type Provider interface {
	Password(ctx context.Context, email, password string) (*Credential, error)
	Refresh(ctx context.Context, refreshToken string) (*Credential, error)
	User(ctx context.Context, accessToken string) (*domain.Principal, error)
	Logout(ctx context.Context, accessToken string) error
}

// Challenger collects login credentials interactively. It blocks until the
// user submits or abandons; abandoning returns ErrChallengeAbandoned.
type Challenger interface {
	Challenge(ctx context.Context) (email, password string, err error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// AccountDeleter removes the account server side (identity, then issues).
type AccountDeleter interface {
	DeleteAccount(ctx context.Context, token string) error
}

// Manager owns the current principal. Every change is pushed to subscribers.
type Manager struct {
	provider Provider
	store    CredentialStore
	accounts AccountDeleter
	log      zerolog.Logger
	now      func() time.Time

	initOnce sync.Once
	initErr  error

	mu        sync.Mutex
	principal *domain.Principal
	cred      *Credential
	subs      map[int]func(*domain.Principal)
	nextSub   int
}

func NewManager(provider Provider, store CredentialStore, accounts AccountDeleter, log zerolog.Logger) *Manager {
	return &Manager{
		provider: provider,
		store:    store,
		accounts: accounts,
		log:      log,
		now:      time.Now,
		subs:     make(map[int]func(*domain.Principal)),
	}
}

// Initialize restores the stored session, refreshing the access token when
// it has expired. Only the first call does any work; later calls report the
// current principal. A stored session that cannot be decoded, or that the
// provider no longer accepts, is discarded and the caller starts signed out.
func (m *Manager) Initialize(ctx context.Context) (*domain.Principal, error) {
	m.initOnce.Do(func() {
		p, cred, err := m.restore(ctx)
		if err != nil {
			m.initErr = err
			return
		}
		m.set(p, cred)
	})
	if m.initErr != nil {
		return nil, m.initErr
	}
	return m.Current(), nil
}

func (m *Manager) restore(ctx context.Context) (*domain.Principal, *Credential, error) {
	cred, err := m.store.Load()
	if errors.Is(err, ErrUnreadableSession) {
		m.log.Warn().Err(err).Msg("could not read stored session")
		m.discard("stored session unreadable")
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if cred == nil {
		return nil, nil, nil
	}

	if cred.Expired(m.now()) {
		if cred.RefreshToken == "" {
			m.discard("stored session expired")
			return nil, nil, nil
		}
		refreshed, err := m.provider.Refresh(ctx, cred.RefreshToken)
		if err != nil {
			m.log.Warn().Err(err).Msg("session refresh failed")
			if errors.Is(err, ErrInvalidGrant) {
				m.discard("refresh token rejected")
			}
			return nil, nil, nil
		}
		cred = refreshed
		if err := m.store.Save(cred); err != nil {
			m.log.Warn().Err(err).Msg("failed to persist refreshed session")
		}
	}

	p, err := m.provider.User(ctx, cred.AccessToken)
	if err != nil {
		m.log.Warn().Err(err).Msg("could not resolve stored session")
		if errors.Is(err, ErrInvalidGrant) {
			m.discard("access token rejected")
		}
		return nil, nil, nil
	}
	p.Token = cred.AccessToken
	return p, cred, nil
}

func (m *Manager) discard(reason string) {
	m.log.Info().Str("reason", reason).Msg("discarding stored session")
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored session")
	}
}

// Login runs the challenger and, on success, stores the new session.
// Abandoning the challenge changes nothing and notifies nobody.
func (m *Manager) Login(ctx context.Context, ch Challenger) (*domain.Principal, error) {
	email, password, err := ch.Challenge(ctx)
	if err != nil {
		return nil, err
	}

	cred, err := m.provider.Password(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	p, err := m.provider.User(ctx, cred.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	p.Token = cred.AccessToken

	if err := m.store.Save(cred); err != nil {
		m.log.Warn().Err(err).Msg("failed to persist session")
	}
	m.set(p, cred)
	m.log.Info().Str("email", p.Email).Msg("signed in")
	return m.Current(), nil
}

// Logout drops the session locally and tells the provider. Provider
// failures are logged only; the local session is gone either way.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	cred := m.cred
	m.mu.Unlock()

	var err error
	if clearErr := m.store.Clear(); clearErr != nil {
		m.log.Warn().Err(clearErr).Msg("failed to clear stored session")
		err = clearErr
	}
	if cred != nil {
		if remoteErr := m.provider.Logout(ctx, cred.AccessToken); remoteErr != nil {
			m.log.Warn().Err(remoteErr).Msg("provider logout failed")
		}
	}

	m.set(nil, nil)
	return err
}

// DeleteAccount asks for confirmation, deletes the account server side and
// then logs out. The logout happens even when the server delete fails; that
// error is still returned.
func (m *Manager) DeleteAccount(ctx context.Context, conf Confirmer) error {
	p := m.Current()
	if p == nil {
		return ErrNotSignedIn
	}

	ok, err := conf.Confirm(ctx, fmt.Sprintf("Delete the account %s and all of its issues?", p.Email))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotConfirmed
	}

	delErr := m.accounts.DeleteAccount(ctx, p.Token)
	if delErr != nil {
		m.log.Error().Err(delErr).Str("email", p.Email).Msg("account deletion failed")
		delErr = fmt.Errorf("delete account: %w", delErr)
	}

	if err := m.Logout(ctx); err != nil && delErr == nil {
		return err
	}
	return delErr
}

// Subscribe registers fn for principal changes; nil means signed out.
// The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(*domain.Principal)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Current returns a copy of the current principal, or nil.
func (m *Manager) Current() *domain.Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.principal == nil {
		return nil
	}
	p := *m.principal
	return &p
}

func (m *Manager) set(p *domain.Principal, cred *Credential) {
	m.mu.Lock()
	m.principal = p
	m.cred = cred
	subs := make([]func(*domain.Principal), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		if p == nil {
			fn(nil)
			continue
		}
		cp := *p
		fn(&cp)
	}
}
