package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tonearm/internal/download"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var artist string
	var year int
	var title string

	cmd := &cobra.Command{
		Use:   "download <album-url>",
		Short: "Download one album into the downloads directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if artist == "" || title == "" {
				return errors.New("--artist and --title are required")
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd.Context(), "download")

			path, err := ctx.downloader().Download(runCtx, download.Request{
				AlbumURL: args[0],
				Artist:   artist,
				Year:     year,
				Title:    title,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded to %s.\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name for the download folder")
	cmd.Flags().IntVar(&year, "year", 0, "Release year for the download folder")
	cmd.Flags().StringVar(&title, "title", "", "Album title for the download folder")
	return cmd
}
