package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/issuetracker/issues-service/internal/client/identity"
	"github.com/issuetracker/issues-service/pkg/logger"
)

var errNotSignedIn = fmt.Errorf("%w: run 'issues login' first", identity.ErrNotSignedIn)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the identity provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		if _, err := c.session.Initialize(cmd.Context()); err != nil {
			return err
		}

		p, err := c.session.Login(cmd.Context(), formChallenger{})
		if err != nil {
			return err
		}
		ok("signed in as " + p.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		if _, err := c.session.Initialize(cmd.Context()); err != nil {
			log := logger.Get()
			log.Warn().Err(err).Msg("could not restore session, clearing it anyway")
		}
		if err := c.session.Logout(cmd.Context()); err != nil {
			return err
		}
		ok("signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		p, err := c.session.Initialize(cmd.Context())
		if err != nil {
			return err
		}
		if p == nil {
			return errNotSignedIn
		}
		if p.Name != "" {
			fmt.Printf("%s <%s>\n", p.Name, p.Email)
		} else {
			fmt.Println(p.Email)
		}
		return nil
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account",
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account and every issue assigned to you",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		if _, err := c.signedIn(cmd); err != nil {
			return err
		}

		var conf identity.Confirmer = formConfirmer{}
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			conf = yesConfirmer{}
		}
		if err := c.session.DeleteAccount(cmd.Context(), conf); err != nil {
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
	accountDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	accountCmd.AddCommand(accountDeleteCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, accountCmd)
}
