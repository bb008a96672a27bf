package ports

import (
	"context"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

// CreateIssueInput carries the caller and the verbatim title.
type CreateIssueInput struct {
	Principal      domain.Principal
	Title          string
	IdempotencyKey string
}

// CreateIssueResult reports whether the request was a replay of an earlier key.
type CreateIssueResult struct {
	Replayed bool
}

// IssueService defines the use cases behind the function handlers.
type IssueService interface {
	ListIssues(ctx context.Context, caller domain.Principal) ([]domain.Issue, error)
	CreateIssue(ctx context.Context, input CreateIssueInput) (*CreateIssueResult, error)
	// DeleteAccount removes the caller's identity, then every issue assigned to them.
	DeleteAccount(ctx context.Context, caller domain.Principal) error
}

// Keep-alive triggers, used as a metrics label.
const (
	TriggerHTTP = "http"
	TriggerCron = "cron"
	TriggerCLI  = "cli"
)

// KeepAliveService issues the periodic read that keeps the database awake.
// It is not a health check.
type KeepAliveService interface {
	KeepAlive(ctx context.Context, trigger string) error
}
