// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var organizationsCmd = &cobra.Command{
	Use:   "organizations",
	Short: "Manage organizations through the admin API",
}

var organizationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all organizations",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out map[string]interface{}
		if err := newAdminClient().do("GET", "/api/v0/organizations", nil, &out); err != nil {
			return err
		}
		printJSON(out)
		return nil
	},
}

var organizationsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get one organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out map[string]interface{}
		if err := newAdminClient().do("GET", "/api/v0/organizations/"+args[0], nil, &out); err != nil {
			return err
		}
		printJSON(out)
		return nil
	},
}

var organizationsMembersCmd = &cobra.Command{
	Use:   "members <id>",
	Short: "List an organization's members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out map[string]interface{}
		if err := newAdminClient().do("GET", "/api/v0/organizations/"+args[0]+"/members", nil, &out); err != nil {
			return err
		}
		printJSON(out)
		return nil
	},
}

var organizationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newAdminClient().do("DELETE", "/api/v0/organizations/"+args[0], nil, nil); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

func init() {
	organizationsCmd.AddCommand(organizationsListCmd)
	organizationsCmd.AddCommand(organizationsGetCmd)
	organizationsCmd.AddCommand(organizationsMembersCmd)
	organizationsCmd.AddCommand(organizationsDeleteCmd)
	rootCmd.AddCommand(organizationsCmd)
}
