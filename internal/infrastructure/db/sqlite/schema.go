package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS issues (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'to-do',
	assignee_name  TEXT,
	assignee_email TEXT
);

CREATE INDEX IF NOT EXISTS idx_issues_assignee_email ON issues(assignee_email);
`

// demoIssues are the unassigned rows every signed-in user sees.
var demoIssues = []struct {
	title, status, assignee string
}{
	{"Add a dark mode toggle", "to-do", "Demo Team"},
	{"Migrate the docs site", "in-progress", "Demo Team"},
	{"Publish the launch post", "done", "Demo Team"},
}

// Initialize creates the issues table if it does not exist.
func Initialize(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SeedDemo inserts the demo rows when the table holds no unassigned rows yet.
// It reports how many rows were inserted.
func SeedDemo(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues WHERE assignee_email IS NULL`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("counting demo rows: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	for _, d := range demoIssues {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO issues (title, status, assignee_name, assignee_email) VALUES (?, ?, ?, NULL)`,
			d.title, d.status, d.assignee,
		); err != nil {
			return 0, fmt.Errorf("inserting demo row %q: %w", d.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing demo rows: %w", err)
	}
	return len(demoIssues), nil
}
