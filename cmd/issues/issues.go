package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the demo issues and your own",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		token, err := c.signedIn(cmd)
		if err != nil {
			return err
		}

		issues, err := c.issues.List(cmd.Context(), token)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(issues)
		}

		out, err := renderMarkdown(issuesMarkdown(issues))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create an issue assigned to you",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		token, err := c.signedIn(cmd)
		if err != nil {
			return err
		}

		if err := c.issues.Create(cmd.Context(), token, strings.Join(args, " ")); err != nil {
			return err
		}
		ok("Issue created")
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd, addCmd)
}
