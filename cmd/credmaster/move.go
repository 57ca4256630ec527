// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/internal/i18n"
)

var moveCmd = &cobra.Command{
	Use:     "move <id|email> <position>",
	Aliases: []string{"reorder"},
	Short:   "Move an account to a new position in the display order",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		res, err := appStore.Reorder(acc.ID, pos)
		if err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("accounts.moved", acc.Email, res.NewOrder, res.Shifted))
		return nil
	},
}
