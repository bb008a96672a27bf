package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/issuetracker/issues-service/internal/client/identity"
	"github.com/issuetracker/issues-service/internal/infrastructure/config"
	"github.com/issuetracker/issues-service/pkg/logger"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type contextKey string

const cfgKey contextKey = "cfg"

// Command annotations read by the root pre-run hook.
const (
	annotationLogStdout = "logStdout"
	annotationLogFile   = "logFile"
)

var rootCmd = &cobra.Command{
	Use:     "issues",
	Short:   "Issue list server and terminal client",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}

		opts := logger.Options{
			Level:     cfg.LogLevel,
			Pretty:    cfg.LogPretty || cfg.IsDevelopment(),
			Output:    os.Stderr,
			File:      cfg.LogFile,
			Component: cmd.Name(),
		}
		if _, ok := cmd.Annotations[annotationLogStdout]; ok {
			opts.Output = os.Stdout
		}
		if _, ok := cmd.Annotations[annotationLogFile]; ok && opts.File == "" {
			opts.File = filepath.Join(os.TempDir(), "issues-tui.log")
		}
		logger.Init(opts)

		cmd.SetContext(context.WithValue(cmd.Context(), cfgKey, cfg))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func getCfg(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(cfgKey).(*config.Config)
	return cfg
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, identity.ErrChallengeAbandoned), errors.Is(err, identity.ErrNotConfirmed):
			fail("cancelled")
		default:
			fail(err.Error())
		}
		return 1
	}
	return 0
}
