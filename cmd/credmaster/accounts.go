// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/internal/i18n"
	"github.com/toeirei/credmaster/internal/model"
	"github.com/toeirei/credmaster/internal/store"
	"golang.org/x/term"
)

// readPasswordFunc is a test seam for the hidden password prompt.
var readPasswordFunc = func() (string, error) {
	fmt.Fprint(os.Stderr, i18n.T("accounts.password_prompt"))
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return string(b), err
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage stored accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := store.Filter{}
		f.Query, _ = cmd.Flags().GetString("query")
		f.FavoritesOnly, _ = cmd.Flags().GetBool("favorites")
		f.WithTOTP, _ = cmd.Flags().GetBool("totp")
		if tagRef, _ := cmd.Flags().GetString("tag"); tagRef != "" {
			tag, err := resolveTag(tagRef)
			if err != nil {
				return err
			}
			f.TagID = tag.ID
		}

		accounts := appStore.FilterAccounts(f)
		if len(accounts) == 0 {
			fmt.Println(i18n.T("accounts.list_empty"))
			return nil
		}
		for _, acc := range accounts {
			fmt.Println(formatAccountLine(acc))
		}
		return nil
	},
}

// formatAccountLine renders one account for 'accounts list'.
func formatAccountLine(acc model.Account) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d  %-36s", acc.Order, acc.Email)
	flags := ""
	if acc.Favorite {
		flags += "★"
	}
	if acc.Completed {
		flags += "✓"
	}
	if acc.HasTOTP() {
		flags += "⏱"
	}
	fmt.Fprintf(&b, " %-4s", flags)
	var names []string
	for _, id := range acc.Tags {
		if tag, ok := appStore.TagByID(id); ok {
			names = append(names, tag.Name)
		}
	}
	if len(names) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "  %s", acc.ID)
	return b.String()
}

var accountsAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = readPasswordFunc(); err != nil {
				return err
			}
		}
		secret, _ := cmd.Flags().GetString("secret")
		extras, _ := cmd.Flags().GetStringSlice("extras")
		tagRefs, _ := cmd.Flags().GetStringSlice("tags")

		var tagIDs []string
		for _, ref := range tagRefs {
			tag, err := resolveTag(ref)
			if err != nil {
				return err
			}
			tagIDs = append(tagIDs, tag.ID)
		}

		acc, err := appStore.AddAccount(model.Account{
			Email:      args[0],
			Password:   password,
			TOTPSecret: secret,
			Extras:     extras,
			Tags:       tagIDs,
		})
		if err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("accounts.added", acc.Email))
		return nil
	},
}

var accountsRmCmd = &cobra.Command{
	Use:   "rm <id|email>",
	Short: "Remove an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		if err := appStore.DeleteAccount(acc.ID); err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("accounts.removed", acc.Email))
		return nil
	},
}

var accountsSetPasswordCmd = &cobra.Command{
	Use:   "set-password <id|email>",
	Short: "Change an account's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			if password, err = readPasswordFunc(); err != nil {
				return err
			}
		}
		if err := appStore.SetPassword(acc.ID, password); err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("accounts.password_updated", acc.Email))
		return nil
	},
}

var accountsSetSecretCmd = &cobra.Command{
	Use:   "set-secret <id|email> <secret>",
	Short: "Change an account's authenticator secret",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		if err := appStore.SetTOTPSecret(acc.ID, args[1]); err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("accounts.secret_updated", acc.Email))
		return nil
	},
}

var accountsFavoriteCmd = &cobra.Command{
	Use:   "favorite <id|email>",
	Short: "Toggle the favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		on, err := appStore.ToggleFavorite(acc.ID)
		if err != nil {
			return err
		}
		schedulePersist()
		if on {
			fmt.Println(i18n.T("accounts.favorite_on", acc.Email))
		} else {
			fmt.Println(i18n.T("accounts.favorite_off", acc.Email))
		}
		return nil
	},
}

var accountsCompleteCmd = &cobra.Command{
	Use:   "complete <id|email>",
	Short: "Toggle the completed flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		on, err := appStore.ToggleCompleted(acc.ID)
		if err != nil {
			return err
		}
		schedulePersist()
		if on {
			fmt.Println(i18n.T("accounts.completed_on", acc.Email))
		} else {
			fmt.Println(i18n.T("accounts.completed_off", acc.Email))
		}
		return nil
	},
}

var accountsSetTagsCmd = &cobra.Command{
	Use:   "set-tags <id|email> [tag...]",
	Short: "Replace an account's tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := resolveAccount(args[0])
		if err != nil {
			return err
		}
		var tagIDs []string
		for _, ref := range args[1:] {
			tag, err := resolveTag(ref)
			if err != nil {
				return err
			}
			tagIDs = append(tagIDs, tag.ID)
		}
		if err := appStore.SetTags(acc.ID, tagIDs); err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("accounts.tags_set", acc.Email))
		return nil
	},
}

func init() {
	accountsListCmd.Flags().String("query", "", "Filter by substring of email or extra data")
	accountsListCmd.Flags().String("tag", "", "Filter by tag name or id")
	accountsListCmd.Flags().Bool("favorites", false, "Show only favorites")
	accountsListCmd.Flags().Bool("totp", false, "Show only accounts with an authenticator secret")

	accountsAddCmd.Flags().String("password", "", "Password (prompted if omitted)")
	accountsAddCmd.Flags().String("secret", "", "Base32 authenticator secret")
	accountsAddCmd.Flags().StringSlice("extras", nil, "Extra data fields")
	accountsAddCmd.Flags().StringSlice("tags", nil, "Tags by name or id")

	accountsSetPasswordCmd.Flags().String("password", "", "New password (prompted if omitted)")

	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsRmCmd)
	accountsCmd.AddCommand(accountsSetPasswordCmd)
	accountsCmd.AddCommand(accountsSetSecretCmd)
	accountsCmd.AddCommand(accountsFavoriteCmd)
	accountsCmd.AddCommand(accountsCompleteCmd)
	accountsCmd.AddCommand(accountsSetTagsCmd)
}
