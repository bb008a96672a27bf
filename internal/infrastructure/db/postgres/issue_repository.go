package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

const issueColumns = `id, title, status, assignee_name, assignee_email`

// querier is the subset of *pgxpool.Pool the repository needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// IssueRepository runs the issue statements against Postgres. The issues
// table is expected to exist already.
type IssueRepository struct {
	db querier
}

func NewIssueRepository(db querier) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) ListVisible(ctx context.Context, email string) ([]domain.Issue, error) {
	return r.query(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE assignee_email IS NULL OR assignee_email = $1 ORDER BY id`,
		email,
	)
}

func (r *IssueRepository) ListUnassigned(ctx context.Context) ([]domain.Issue, error) {
	return r.query(ctx, `SELECT `+issueColumns+` FROM issues WHERE assignee_email IS NULL ORDER BY id`)
}

// Create stores a caller without a display name as a NULL assignee_name.
func (r *IssueRepository) Create(ctx context.Context, issue domain.NewIssue) error {
	name := pgtype.Text{String: issue.AssigneeName, Valid: issue.AssigneeName != ""}
	_, err := r.db.Exec(ctx,
		`INSERT INTO issues (title, assignee_name, assignee_email) VALUES ($1, $2, $3)`,
		issue.Title, name, issue.AssigneeEmail,
	)
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func (r *IssueRepository) DeleteByAssignee(ctx context.Context, email string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM issues WHERE assignee_email = $1`, email)
	if err != nil {
		return 0, fmt.Errorf("delete issues: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IssueRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *IssueRepository) query(ctx context.Context, q string, args ...any) ([]domain.Issue, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var (
			is     domain.Issue
			status string
		)
		if err := rows.Scan(&is.ID, &is.Title, &status, &is.AssigneeName, &is.AssigneeEmail); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		is.Status = domain.NormalizeStatus(status)
		issues = append(issues, is)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issues: %w", err)
	}
	return issues, nil
}
