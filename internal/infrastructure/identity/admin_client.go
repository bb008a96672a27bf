// Package identity talks to the identity provider's admin API on behalf of
// the delete handler.
package identity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// AdminClient deletes user accounts through the provider's admin endpoint.
type AdminClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewAdminClient builds a client for baseURL authenticated with an admin
// bearer token. A nil httpClient gets a client with a default timeout.
func NewAdminClient(baseURL, adminToken string, httpClient *http.Client) *AdminClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &AdminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   adminToken,
		http:    httpClient,
	}
}

// DeleteUser issues DELETE /admin/users/{subject}. A 404 means the account
// is already gone and is reported as success.
func (c *AdminClient) DeleteUser(ctx context.Context, subject string) error {
	endpoint := c.baseURL + "/admin/users/" + url.PathEscape(subject)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity: delete user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode/100 == 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("identity: delete user: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
