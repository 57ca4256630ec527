// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/internal/i18n"
	"github.com/toeirei/credmaster/internal/totp"
	"github.com/toeirei/credmaster/internal/tui"
)

// clipboardWriteFunc is a test seam for clipboard access.
var clipboardWriteFunc = clipboard.WriteAll

var otpCmd = &cobra.Command{
	Use:   "otp",
	Short: "Generate time-based one-time codes",
}

var otpShowCmd = &cobra.Command{
	Use:   "show <id|email>",
	Short: "Print the current code for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		if !acc.HasTOTP() {
			return fmt.Errorf("%s", i18n.T("otp.no_secret", acc.Email))
		}
		gen := totp.NewGenerator(appClock)
		code := gen.Code(acc.TOTPSecret)
		remaining := int(gen.Remaining().Seconds())
		fmt.Println(i18n.T("otp.code_line", acc.Email, code, remaining))

		_ = appStore.TouchLastUsed(acc.ID)
		schedulePersist()
		return nil
	},
}

var otpCopyCmd = &cobra.Command{
	Use:   "copy <id|email>",
	Short: "Copy the current code to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		if !acc.HasTOTP() {
			return fmt.Errorf("%s", i18n.T("otp.no_secret", acc.Email))
		}
		gen := totp.NewGenerator(appClock)
		code := gen.Code(acc.TOTPSecret)
		if err := clipboardWriteFunc(code); err != nil {
			return fmt.Errorf("%s", i18n.T("otp.error_clipboard", err))
		}
		fmt.Println(i18n.T("otp.copied", acc.Email))

		_ = appStore.TouchLastUsed(acc.ID)
		schedulePersist()
		return nil
	},
}

var otpWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show live codes for every account with a secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := tui.RunWatch(appStore, appClock)
		// The view records code copies as account use.
		schedulePersist()
		return err
	},
}

func init() {
	otpCmd.AddCommand(otpShowCmd)
	otpCmd.AddCommand(otpCopyCmd)
	otpCmd.AddCommand(otpWatchCmd)
}
