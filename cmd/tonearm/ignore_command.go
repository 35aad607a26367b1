package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIgnoreCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Manage the list of artists and albums discovery skips",
	}
	cmd.AddCommand(newIgnoreAddCommand(ctx))
	cmd.AddCommand(newIgnoreRemoveCommand(ctx))
	cmd.AddCommand(newIgnoreListCommand(ctx))
	return cmd
}

func newIgnoreAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <artist> [album]",
		Short: "Ignore an artist, or one album when a title is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ignoreStore()
			if err != nil {
				return err
			}
			album := ""
			if len(args) == 2 {
				album = args[1]
			}
			if err := store.Add(args[0], album); err != nil {
				return err
			}
			if album == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Ignoring all of %s.\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Ignoring %s - %s.\n", args[0], album)
			}
			return nil
		},
	}
}

func newIgnoreRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <artist> [album]",
		Short: "Remove an ignore entry",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ignoreStore()
			if err != nil {
				return err
			}
			album := ""
			if len(args) == 2 {
				album = args[1]
			}
			if err := store.Remove(args[0], album); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		},
	}
}

func newIgnoreListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every ignore entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ignoreStore()
			if err != nil {
				return err
			}
			entries := store.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The ignore list is empty.")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				album := entry.Album
				if album == "" {
					album = "(all albums)"
				}
				rows = append(rows, []string{entry.Artist, album})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Artist", "Album"}, rows))
			return nil
		},
	}
}
