// Package sqlite is the embedded issues backend used for local development
// and tests. It speaks the same single-statement contract as the Postgres
// backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens or creates the SQLite database at dsn and makes sure the
// issues table exists. ":memory:" is accepted.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: SQLite is single-writer and every ":memory:"
	// connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := Initialize(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
