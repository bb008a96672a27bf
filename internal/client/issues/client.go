// Package issues is the HTTP client of the issue function handlers.
package issues

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 512
)

// StatusError reports a non-2xx response from a function handler.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Code, e.Body)
}

// Client calls the function handlers mounted under baseURL
// (e.g. http://localhost:8080/.netlify/functions).
type Client struct {
	baseURL string
	http    *http.Client
	newKey  func() string
}

// New builds a client. A nil httpClient gets one with a default timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		newKey:  uuid.NewString,
	}
}

// List fetches the issues visible to the token's owner.
func (c *Client) List(ctx context.Context, token string) ([]domain.Issue, error) {
	resp, err := c.do(ctx, http.MethodGet, "/list", token, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := expect(resp, "list issues"); err != nil {
		return nil, err
	}

	var issues []domain.Issue
	if err := json.NewDecoder(resp.Body).Decode(&issues); err != nil {
		return nil, fmt.Errorf("list issues: decoding response: %w", err)
	}
	for i := range issues {
		issues[i].Status = domain.NormalizeStatus(string(issues[i].Status))
	}
	return issues, nil
}

// Create submits a new issue with a fresh Idempotency-Key.
func (c *Client) Create(ctx context.Context, token, title string) error {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return fmt.Errorf("create issue: encoding body: %w", err)
	}

	headers := map[string]string{
		"Content-Type":    "application/json",
		"Idempotency-Key": c.newKey(),
	}
	resp, err := c.do(ctx, http.MethodPost, "/create", token, bytes.NewReader(body), headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expect(resp, "create issue")
}

// DeleteAccount asks the server to delete the caller's identity and issues.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/delete", token, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expect(resp, "delete account")
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func expect(resp *http.Response, op string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
