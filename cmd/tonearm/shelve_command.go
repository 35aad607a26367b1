package main

import (
	"context"

	"github.com/spf13/cobra"

	"tonearm/internal/actions"
	"tonearm/internal/organizer"
	"tonearm/internal/staging"
)

func newShelveCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "shelve",
		Short: "Review staged albums and file keepers into the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd.Context(), "shelve")
			org := ctx.organizer(dryRun)

			return runPipeline(runCtx, cmd, cfg.Paths.StagingDir, staging.StateStaged,
				actions.ShelvingCapabilities, cfg.Transfer.PlayerCommand, org,
				func(pipeCtx context.Context, item staging.Item) (organizer.Result, error) {
					return org.Shelve(pipeCtx, item)
				})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report moves without touching the filesystem")
	return cmd
}
