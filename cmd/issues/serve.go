package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/issuetracker/issues-service/docs"
	"github.com/issuetracker/issues-service/internal/api"
	"github.com/issuetracker/issues-service/internal/api/handler"
	"github.com/issuetracker/issues-service/internal/core/ports"
	"github.com/issuetracker/issues-service/internal/core/service"
	"github.com/issuetracker/issues-service/internal/infrastructure/db/redis"
	"github.com/issuetracker/issues-service/internal/infrastructure/identity"
	"github.com/issuetracker/issues-service/internal/infrastructure/scheduler"
	"github.com/issuetracker/issues-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the HTTP function handlers and the keep-alive schedule",
	Annotations: map[string]string{annotationLogStdout: ""},
	RunE:        runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getCfg(cmd)
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	log := logger.Get()
	ctx := cmd.Context()

	// --- Storage ---
	db, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.close()

	ready := map[string]handler.Pinger{"database": db.repo}

	var idem ports.IdempotencyStore
	if rc := (redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}); rc.Enabled() {
		rdb, err := redis.Connect(ctx, rc)
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
		ready["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		log.Info().Msg("REDIS_ADDR not set, Idempotency-Key handling disabled")
	}

	// --- Services ---
	admin := identity.NewAdminClient(cfg.Identity.URL, cfg.Identity.AdminToken, nil)
	issues := service.NewIssueService(db.repo, admin, idem, log)
	keepAlive := service.NewKeepAliveService(db.repo, log)

	docs.SwaggerInfo.BasePath = cfg.FunctionsPrefix
	e := api.NewRouter(api.RouterDeps{
		Issues:    issues,
		KeepAlive: keepAlive,
		Ready:     ready,
		JWTSecret: cfg.JWTSecret,
		Prefix:    cfg.FunctionsPrefix,
		Logger:    log,
	})

	// --- Keep-alive schedule ---
	var sched *scheduler.KeepAlive
	if cfg.KeepAlive.Schedule != "" {
		sched, err = scheduler.NewKeepAlive(cfg.KeepAlive.Schedule, cfg.KeepAlive.Timeout, keepAlive, log)
		if err != nil {
			return err
		}
		sched.Start()
		log.Info().Str("schedule", cfg.KeepAlive.Schedule).Msg("keep-alive scheduled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("prefix", cfg.FunctionsPrefix).
			Str("db_driver", cfg.DB.Driver).
			Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sched != nil {
			sched.Stop(shutdownCtx)
		}
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
