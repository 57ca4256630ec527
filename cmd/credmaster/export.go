// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/internal/backup"
	"github.com/toeirei/credmaster/internal/i18n"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export accounts as delimited text or JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		delimiter, _ := cmd.Flags().GetString("delimiter")
		fields, _ := cmd.Flags().GetStringSlice("fields")
		if len(fields) == 0 {
			fields = backup.DefaultFields
		}

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		accounts := appStore.Accounts()
		switch format {
		case "text":
			if err := backup.ExportDelimited(f, accounts, delimiter, fields); err != nil {
				return err
			}
		case "json":
			if err := backup.WriteJSON(f, backup.Export(appStore, appClock.Now())); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported format %q (want text or json)", format)
		}

		fmt.Println(i18n.T("export.done", len(accounts), args[0]))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "text", `Output format ("text" or "json")`)
	exportCmd.Flags().String("delimiter", "|", "Field delimiter for text output")
	exportCmd.Flags().StringSlice("fields", nil, "Fields for text output (email, password, totp, extras)")
}
