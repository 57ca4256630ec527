// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/internal/i18n"
	"github.com/toeirei/credmaster/internal/importer"
	"github.com/toeirei/credmaster/internal/merge"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import accounts from delimited text",
	Long: `Reads a delimited text file with one account per line and merges it
into the store. Lines starting with '#' and blank lines are skipped.
Each line needs at least an email and a password field; a third field
is read as the authenticator secret unless --no-totp is set, any
further fields become extra data.

With --delimiter auto the delimiter is detected from the first lines
of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]
		fmt.Println(i18n.T("import.start", filePath))

		content, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("%s", i18n.T("import.error_opening_file", err))
		}

		delimiter, _ := cmd.Flags().GetString("delimiter")
		if delimiter == "" {
			if d := appStore.Settings().DefaultDelimiter; d != "" {
				delimiter = d
			} else {
				delimiter = "auto"
			}
		}
		if delimiter == "auto" {
			detected, ok := importer.Detect(string(content))
			if !ok {
				return errors.New(i18n.T("import.error_no_delimiter"))
			}
			delimiter = detected
			fmt.Println(i18n.T("import.detected_delimiter", delimiter))
		}

		noTOTP, _ := cmd.Flags().GetBool("no-totp")
		result := importer.Parse(string(content), importer.Options{
			Delimiter: delimiter,
			TOTPField: !noTOTP,
		})
		for _, lineErr := range result.Errors {
			fmt.Println(i18n.T("import.line_error", lineErr.Line, lineErr.Reason))
		}

		stats, recErrs := merge.Apply(appStore, result.ImportRecords())
		for _, recErr := range recErrs {
			fmt.Println(i18n.T("import.record_error", recErr.Index, recErr.Err))
		}
		schedulePersist()

		fmt.Println(i18n.T("import.summary", stats.Added, stats.Updated, stats.Skipped))
		return nil
	},
}

func init() {
	importCmd.Flags().String("delimiter", "", `Field delimiter ("auto" to detect, default from settings)`)
	importCmd.Flags().Bool("no-totp", false, "Treat the third field as extra data instead of a secret")
}
