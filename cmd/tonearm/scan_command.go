package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tonearm/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var showAlbums bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the artists and albums shelved in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			artists, err := library.Scan(cfg.Paths.LibraryDir)
			if err != nil {
				return err
			}
			if len(artists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Library is empty.")
				return nil
			}

			if showAlbums {
				rows := make([][]string, 0, len(artists))
				for _, artist := range artists {
					for _, album := range artist.Albums {
						rows = append(rows, []string{
							artist.CanonicalName,
							strconv.Itoa(album.Year),
							album.Title,
						})
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Artist", "Year", "Album"}, rows))
				return nil
			}

			rows := make([][]string, 0, len(artists))
			albumTotal := 0
			for _, artist := range artists {
				rows = append(rows, []string{
					artist.CanonicalName,
					strconv.Itoa(len(artist.Albums)),
				})
				albumTotal += len(artist.Albums)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Artist", "Albums"}, rows))
			fmt.Fprintf(cmd.OutOrStdout(), "%d artists, %d albums\n", len(artists), albumTotal)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAlbums, "albums", false, "List every album instead of per-artist counts")
	return cmd
}
