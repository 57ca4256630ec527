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

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create and restore backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Write a compressed JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		data := backup.Export(appStore, appClock.Now())
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			err = backup.WriteJSON(f, data)
		} else {
			err = backup.Write(f, data)
		}
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("backup.created", args[0]))
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore accounts and tags from a backup",
	Long: `Reads a backup file (compressed or plain JSON) and merges its
accounts into the store. Tags are matched by name; unknown tags are
created with their saved color.

With --full the current accounts and tags are replaced by the backup
instead of merged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := backup.Read(f)
		if err != nil {
			return fmt.Errorf("%s", i18n.T("backup.error_read", err))
		}

		full, _ := cmd.Flags().GetBool("full")
		stats, recErrs, err := backup.Restore(appStore, data, backup.RestoreOptions{Full: full})
		if err != nil {
			return err
		}
		for _, recErr := range recErrs {
			fmt.Println(i18n.T("import.record_error", recErr.Index, recErr.Err))
		}
		schedulePersist()

		fmt.Println(i18n.T("backup.restore_summary", stats.Added, stats.Updated, stats.Skipped))
		return nil
	},
}

func init() {
	backupCreateCmd.Flags().Bool("plain", false, "Write uncompressed JSON")
	backupRestoreCmd.Flags().Bool("full", false, "Replace the current state instead of merging")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}
