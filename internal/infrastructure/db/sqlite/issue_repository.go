package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

const issueColumns = `id, title, status, assignee_name, assignee_email`

type IssueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) ListVisible(ctx context.Context, email string) ([]domain.Issue, error) {
	return r.query(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE assignee_email IS NULL OR assignee_email = ? ORDER BY id`,
		email,
	)
}

func (r *IssueRepository) ListUnassigned(ctx context.Context) ([]domain.Issue, error) {
	return r.query(ctx, `SELECT `+issueColumns+` FROM issues WHERE assignee_email IS NULL ORDER BY id`)
}

func (r *IssueRepository) Create(ctx context.Context, issue domain.NewIssue) error {
	name := sql.NullString{String: issue.AssigneeName, Valid: issue.AssigneeName != ""}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO issues (title, assignee_name, assignee_email) VALUES (?, ?, ?)`,
		issue.Title, name, issue.AssigneeEmail,
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	return nil
}

func (r *IssueRepository) DeleteByAssignee(ctx context.Context, email string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE assignee_email = ?`, email)
	if err != nil {
		return 0, fmt.Errorf("deleting issues: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted issues: %w", err)
	}
	return n, nil
}

func (r *IssueRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *IssueRepository) query(ctx context.Context, q string, args ...any) ([]domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var (
			is          domain.Issue
			status      string
			name, email sql.NullString
		)
		if err := rows.Scan(&is.ID, &is.Title, &status, &name, &email); err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		is.Status = domain.NormalizeStatus(status)
		if name.Valid {
			is.AssigneeName = &name.String
		}
		if email.Valid {
			is.AssigneeEmail = &email.String
		}
		issues = append(issues, is)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}
