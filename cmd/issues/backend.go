package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/issuetracker/issues-service/internal/core/ports"
	"github.com/issuetracker/issues-service/internal/infrastructure/config"
	"github.com/issuetracker/issues-service/internal/infrastructure/db/postgres"
	"github.com/issuetracker/issues-service/internal/infrastructure/db/sqlite"
)

// backend is the opened issues table plus its teardown.
type backend struct {
	repo  ports.IssueRepository
	close func()
}

// openBackend opens the issues table for cfg.DB.Driver. The embedded SQLite
// backend creates the table and may seed the demo rows; Postgres expects the
// table to exist.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.URL)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		if cfg.DB.SeedDemo {
			n, err := sqlite.SeedDemo(ctx, db)
			if err != nil {
				db.Close()
				return nil, fmt.Errorf("seeding demo issues: %w", err)
			}
			log.Info().Int("rows", n).Msg("seeded demo issues")
		}
		return &backend{
			repo:  sqlite.NewIssueRepository(db),
			close: func() { _ = db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.DB.URL})
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if cfg.DB.SeedDemo {
			log.Warn().Msg("DB_SEED_DEMO is only honoured by the sqlite backend")
		}
		return &backend{repo: postgres.NewIssueRepository(pool), close: pool.Close}, nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DB.Driver)
}
