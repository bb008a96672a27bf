package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/issuetracker/issues-service/internal/core/ports"
	"github.com/issuetracker/issues-service/internal/core/service"
	"github.com/issuetracker/issues-service/pkg/logger"
)

var keepAliveCmd = &cobra.Command{
	Use:   "keepalive",
	Short: "Run the keep-alive read once, for external schedulers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getCfg(cmd)
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}
		log := logger.Get()

		db, err := openBackend(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer db.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.KeepAlive.Timeout)
		defer cancel()
		if err := service.NewKeepAliveService(db.repo, log).KeepAlive(ctx, ports.TriggerCLI); err != nil {
			return err
		}
		ok("OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keepAliveCmd)
}
