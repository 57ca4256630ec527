// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/internal/config"
	"github.com/toeirei/credmaster/internal/i18n"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change persisted settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		set := appStore.Settings()
		fmt.Printf("language: %s\n", set.Language)
		fmt.Printf("default delimiter: %q\n", set.DefaultDelimiter)
		return nil
	},
}

var settingsSetLanguageCmd = &cobra.Command{
	Use:   "set-language <lang>",
	Short: "Set the stored output language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set := appStore.Settings()
		set.Language = args[0]
		appStore.SetSettings(set)
		schedulePersist()
		i18n.SetLang(args[0])
		fmt.Println(i18n.T("settings.language_set", args[0]))
		return nil
	},
}

var settingsSetDelimiterCmd = &cobra.Command{
	Use:   "set-delimiter <delimiter>",
	Short: "Set the default import delimiter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set := appStore.Settings()
		set.DefaultDelimiter = args[0]
		appStore.SetSettings(set)
		schedulePersist()
		fmt.Println(i18n.T("settings.delimiter_set", args[0]))
		return nil
	},
}

// settingsWriteConfigCmd writes the effective database and language settings
// to the user's credmaster.yaml so they apply without flags.
var settingsWriteConfigCmd = &cobra.Command{
	Use:   "write-config",
	Short: "Write the effective configuration to the user config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := appConfig
		if err := config.WriteConfigFile(&c, false); err != nil {
			return err
		}
		path, err := config.GetConfigPath(false)
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("settings.config_written", path))
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetLanguageCmd)
	settingsCmd.AddCommand(settingsSetDelimiterCmd)
	settingsCmd.AddCommand(settingsWriteConfigCmd)
}
