package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/issuetracker/issues-service/internal/client/identity"
	"github.com/issuetracker/issues-service/internal/tui"
	"github.com/issuetracker/issues-service/pkg/logger"
)

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Open the interactive issue list",
	Annotations: map[string]string{annotationLogFile: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		p, err := c.session.Initialize(cmd.Context())
		if err != nil {
			return err
		}

		m := tui.New(cmd.Context(), c.issues, c.session, p, logger.Get())
		deleteRequested, err := tui.Run(cmd.Context(), m, c.session)
		if err != nil {
			return err
		}
		if !deleteRequested {
			return nil
		}

		// The confirmation form needs the terminal back, so it runs after
		// the program has exited.
		if err := c.session.DeleteAccount(cmd.Context(), formConfirmer{}); err != nil {
			if errors.Is(err, identity.ErrNotConfirmed) {
				fmt.Println("Cancelled.")
				return nil
			}
			return err
		}
		ok("account deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
