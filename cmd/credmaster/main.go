// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for the Credmaster
// application using the Cobra library. It defines the root command,
// subcommands (accounts, tags, otp, import, export, backup), flags, and
// the main entry point for execution.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/buildvars"
	"github.com/toeirei/credmaster/internal/clock"
	"github.com/toeirei/credmaster/internal/config"
	"github.com/toeirei/credmaster/internal/db"
	"github.com/toeirei/credmaster/internal/i18n"
	"github.com/toeirei/credmaster/internal/logging"
	"github.com/toeirei/credmaster/internal/model"
	"github.com/toeirei/credmaster/internal/store"
	"github.com/toeirei/credmaster/internal/tui"
)

var cfgFile string

// appConfig is the effective configuration, loaded once by the root command.
var appConfig config.Config

// Application state shared by every subcommand. The in-memory store is the
// source of truth; the saver writes snapshots through to the database.
var (
	appClock clock.Clock = clock.System{}
	appDB    *db.SnapshotStore
	appStore *store.Store
	appSaver *db.Saver
)

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// newRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credmaster",
		Short: "Credmaster is a local credential and two-factor code manager.",
		Long: `Credmaster keeps accounts, passwords and authenticator secrets in a
local database and generates time-based one-time codes for them.
Accounts can be tagged, reordered, imported from delimited text and
exported or backed up as compressed JSON.

Running without a subcommand will launch the live authenticator view.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			appConfig, err = config.LoadConfig(cmd, cfgFile)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			i18n.Init(appConfig.Language)
			logging.SetDebug(appConfig.Debug)

			appDB, err = db.New(appConfig.Database.Type, appConfig.Database.DSN)
			if err != nil {
				return fmt.Errorf("%s", i18n.T("config.error_init_db", err))
			}

			appStore = store.New(appClock)
			snap, err := appDB.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", i18n.T("config.error_load_state", err))
			}
			appStore.Load(snap)
			if lang := appStore.Settings().Language; lang != "" && !cmd.Root().PersistentFlags().Changed("lang") {
				i18n.SetLang(lang)
			}

			appSaver = db.NewSaver(appDB, db.DefaultSaveDelay)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appSaver != nil {
				if err := appSaver.Flush(); err != nil {
					logging.Warnf("%s", i18n.T("config.warn_persist", err))
				}
			}
			if appDB != nil {
				_ = appDB.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			// State is already loaded by PersistentPreRunE.
			if err := tui.RunWatch(appStore, appClock); err != nil {
				logging.Errorf("TUI error: %v", err)
			}
		},
	}

	// Add subcommands to the newly created root command.
	cmd.AddCommand(accountsCmd)
	cmd.AddCommand(tagsCmd)
	cmd.AddCommand(otpCmd)
	cmd.AddCommand(importCmd)
	cmd.AddCommand(exportCmd)
	cmd.AddCommand(backupCmd)
	cmd.AddCommand(moveCmd)
	cmd.AddCommand(settingsCmd)

	cmd.Version = buildvars.VersionOrDefault("dev")

	// Define flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/credmaster/credmaster.yaml or ./credmaster.yaml)")
	cmd.PersistentFlags().String("db-type", "sqlite", "Database type (e.g., sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("db-dsn", "./credmaster.db", "Database connection string (DSN)")
	cmd.PersistentFlags().String("lang", "en", `Output language ("en", "de")`)
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return cmd
}

// schedulePersist records the store's current state for a deferred write.
// Call after any mutation.
func schedulePersist() {
	appSaver.Schedule(appStore.Snapshot())
}

// resolveAccount finds an account by id or email. An email matching several
// accounts is ambiguous and must be disambiguated with the id.
func resolveAccount(ref string) (model.Account, error) {
	if acc, ok := appStore.AccountByID(ref); ok {
		return acc, nil
	}
	matches := appStore.AccountsByEmail(ref)
	switch len(matches) {
	case 0:
		return model.Account{}, fmt.Errorf("%s", i18n.T("accounts.not_found", ref))
	case 1:
		return matches[0], nil
	default:
		return model.Account{}, fmt.Errorf("%s", i18n.T("accounts.ambiguous", ref))
	}
}

// resolveTag finds a tag by id or name (case-insensitive).
func resolveTag(ref string) (model.Tag, error) {
	if tag, ok := appStore.TagByID(ref); ok {
		return tag, nil
	}
	if tag, ok := appStore.TagByName(ref); ok {
		return tag, nil
	}
	return model.Tag{}, fmt.Errorf("%s", i18n.T("tags.not_found", ref))
}
