// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/credmaster/internal/i18n"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags := appStore.Tags()
		if len(tags) == 0 {
			fmt.Println(i18n.T("tags.list_empty"))
			return nil
		}
		for _, tag := range tags {
			fmt.Printf("%-24s %-8s %s\n", tag.Name, tag.Color, tag.ID)
		}
		return nil
	},
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")
		tag, err := appStore.AddTag(args[0], color)
		if err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("tags.added", tag.Name))
		return nil
	},
}

var tagsRmCmd = &cobra.Command{
	Use:   "rm <id|name>",
	Short: "Remove a tag from all accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := resolveTag(args[0])
		if err != nil {
			return err
		}
		if err := appStore.DeleteTag(tag.ID); err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("tags.removed", tag.Name))
		return nil
	},
}

var tagsRenameCmd = &cobra.Command{
	Use:   "rename <id|name> <new-name>",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := resolveTag(args[0])
		if err != nil {
			return err
		}
		if err := appStore.RenameTag(tag.ID, args[1]); err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("tags.renamed", args[1]))
		return nil
	},
}

var tagsRecolorCmd = &cobra.Command{
	Use:   "recolor <id|name> <color>",
	Short: "Change a tag's color",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := resolveTag(args[0])
		if err != nil {
			return err
		}
		if err := appStore.RecolorTag(tag.ID, args[1]); err != nil {
			return err
		}
		schedulePersist()
		fmt.Println(i18n.T("tags.recolored", tag.Name, args[1]))
		return nil
	},
}

func init() {
	tagsAddCmd.Flags().String("color", "", "Display color (e.g., #ff8800)")

	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRmCmd)
	tagsCmd.AddCommand(tagsRenameCmd)
	tagsCmd.AddCommand(tagsRecolorCmd)
}
