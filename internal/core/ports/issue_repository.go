package ports

import (
	"context"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

// IssueRepository defines the single-statement operations run against the
// issues table. Implementations must not add filtering of their own.
type IssueRepository interface {
	// ListVisible returns rows with a NULL assignee email plus rows assigned to email.
	ListVisible(ctx context.Context, email string) ([]domain.Issue, error)
	// ListUnassigned returns only the NULL-email demo rows.
	ListUnassigned(ctx context.Context) ([]domain.Issue, error)
	Create(ctx context.Context, issue domain.NewIssue) error
	// DeleteByAssignee removes every row assigned to email and reports how many went.
	DeleteByAssignee(ctx context.Context, email string) (int64, error)
	Ping(ctx context.Context) error
}
