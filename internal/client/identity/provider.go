// Package identity holds the client side of the identity provider: the
// token endpoints, the stored credential and the session manager that owns
// the current principal.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 512
)

// ErrInvalidGrant means the provider rejected the credentials or refresh token.
var ErrInvalidGrant = errors.New("identity: invalid grant")

// Credential is what the provider's /token endpoint issues.
type Credential struct {
	AccessToken  string    `yaml:"access_token"`
	RefreshToken string    `yaml:"refresh_token"`
	ExpiresAt    time.Time `yaml:"expires_at"`
}

// Expired reports whether the access token is expired at now, with a small
// margin so a token is not used in its last seconds.
func (c Credential) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(30 * time.Second).Before(c.ExpiresAt)
}

// HTTPProvider speaks the GoTrue-style endpoints: POST /token, GET /user
// and POST /logout.
type HTTPProvider struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// NewHTTPProvider builds a provider client for baseURL (e.g.
// https://example.netlify.app/.netlify/identity).
func NewHTTPProvider(baseURL string, httpClient *http.Client) *HTTPProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		now:     time.Now,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// Password exchanges an email and password for a credential.
func (p *HTTPProvider) Password(ctx context.Context, email, password string) (*Credential, error) {
	return p.token(ctx, url.Values{
		"grant_type": {"password"},
		"username":   {email},
		"password":   {password},
	})
}

// Refresh exchanges a refresh token for a new credential.
func (p *HTTPProvider) Refresh(ctx context.Context, refreshToken string) (*Credential, error) {
	return p.token(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	})
}

func (p *HTTPProvider) token(ctx context.Context, form url.Values) (*Credential, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGrant, readBody(resp))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request: status %d: %s", resp.StatusCode, readBody(resp))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, errors.New("token response carried no access token")
	}

	cred := &Credential{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}
	if tr.ExpiresIn > 0 {
		cred.ExpiresAt = p.now().Add(time.Duration(tr.ExpiresIn) * time.Second).UTC()
	}
	return cred, nil
}

// User resolves the principal behind an access token.
func (p *HTTPProvider) User(ctx context.Context, accessToken string) (*domain.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("building user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGrant, readBody(resp))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user request: status %d: %s", resp.StatusCode, readBody(resp))
	}

	var ur userResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, fmt.Errorf("decoding user response: %w", err)
	}
	return &domain.Principal{
		Subject: ur.ID,
		Email:   ur.Email,
		Name:    ur.UserMetadata.FullName,
		Token:   accessToken,
	}, nil
}

// Logout revokes the refresh tokens behind accessToken.
func (p *HTTPProvider) Logout(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("building logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("logout request: status %d: %s", resp.StatusCode, readBody(resp))
	}
	return nil
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return strings.TrimSpace(string(b))
}
