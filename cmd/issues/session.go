package main

import (
	"github.com/spf13/cobra"

	"github.com/issuetracker/issues-service/internal/client/identity"
	"github.com/issuetracker/issues-service/internal/client/issues"
	"github.com/issuetracker/issues-service/pkg/logger"
)

// client bundles what the terminal commands need.
type client struct {
	issues  *issues.Client
	session *identity.Manager
}

func newClient(cmd *cobra.Command) (*client, error) {
	cfg := getCfg(cmd)
	if err := cfg.ValidateClient(); err != nil {
		return nil, err
	}
	path, err := cfg.SessionPath()
	if err != nil {
		return nil, err
	}

	api := issues.New(cfg.Client.APIURL+cfg.FunctionsPrefix, nil)
	session := identity.NewManager(
		identity.NewHTTPProvider(cfg.Identity.URL, nil),
		identity.NewFileStore(path),
		api,
		logger.Get(),
	)
	return &client{issues: api, session: session}, nil
}

// signedIn restores the stored session and fails when there is none.
func (c *client) signedIn(cmd *cobra.Command) (token string, err error) {
	p, err := c.session.Initialize(cmd.Context())
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", errNotSignedIn
	}
	return p.Token, nil
}
