// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users through the admin API",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out map[string]interface{}
		if err := newAdminClient().do("GET", "/api/v0/users", nil, &out); err != nil {
			return err
		}
		printJSON(out)
		return nil
	},
}

var usersSetRoleCmd = &cobra.Command{
	Use:   "set-role <id> <admin|user>",
	Short: "Set a user's platform role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out map[string]interface{}
		body := map[string]string{"role": args[1]}
		if err := newAdminClient().do("PATCH", "/api/v0/users/"+args[0]+"/role", body, &out); err != nil {
			return err
		}
		printJSON(out)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newAdminClient().do("DELETE", "/api/v0/users/"+args[0], nil, nil); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

var usersRevokeSessionsCmd = &cobra.Command{
	Use:   "revoke-sessions <id>",
	Short: "Revoke every session a user holds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newAdminClient().do("DELETE", "/api/v0/users/"+args[0]+"/sessions", nil, nil); err != nil {
			return err
		}
		fmt.Println("revoked")
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersSetRoleCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersRevokeSessionsCmd)
	rootCmd.AddCommand(usersCmd)
}
