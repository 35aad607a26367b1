package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"tonearm/internal/actions"
	"tonearm/internal/organizer"
	"tonearm/internal/staging"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Review downloaded albums and move keepers to the staging area",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd.Context(), "stage")
			org := ctx.organizer(dryRun)

			return runPipeline(runCtx, cmd, cfg.Paths.DownloadsDir, staging.StateDownloads,
				actions.StagingCapabilities, cfg.Transfer.PlayerCommand, org,
				func(pipeCtx context.Context, item staging.Item) (organizer.Result, error) {
					return org.Stage(pipeCtx, item)
				})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report moves without touching the filesystem")
	return cmd
}

// runPipeline lists one pipeline directory, reports naming issues, and
// drives the interactive triage loop. The promote callback is the
// state-advancing action bound to "s" for this stage.
func runPipeline(runCtx context.Context, cmd *cobra.Command, dir string, state staging.State,
	caps actions.CapabilitySet, playerCommand []string, org *organizer.Organizer,
	promote func(context.Context, staging.Item) (organizer.Result, error)) error {

	out := cmd.OutOrStdout()
	for _, removed := range staging.CleanEmpty(dir, nil).Removed {
		noteColor.Fprintf(out, "Removed empty folder %s\n", removed)
	}
	items, issues, err := staging.List(dir, state)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		noteColor.Fprintf(out, "Skipping %q: %s\n", issue.FolderName, issue.Reason)
	}
	if len(items) == 0 {
		fmt.Fprintf(out, "Nothing waiting in %s.\n", dir)
		return nil
	}

	printPipelineItems(cmd, items)

	return runInteractiveLoop(cmd.InOrStdin(), out, len(items), caps,
		func(index int, action actions.Action) error {
			item := items[index-1]
			switch action {
			case actions.ActionStage:
				result, err := promote(runCtx, item)
				if err != nil {
					return err
				}
				reportResult(out, result)
				return nil
			case actions.ActionPlay:
				return runPlayer(runCtx, playerCommand, item.Path)
			case actions.ActionDelete:
				result, err := org.Delete(runCtx, item)
				if err != nil {
					return err
				}
				reportResult(out, result)
				return nil
			default:
				return nil
			}
		})
}

func printPipelineItems(cmd *cobra.Command, items []staging.Item) {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.Artist,
			strconv.Itoa(item.Year),
			item.AlbumTitle,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"#", "Artist", "Year", "Album"}, rows))
}

func reportResult(out io.Writer, result organizer.Result) {
	prefix := ""
	if result.DryRun {
		prefix = "[dry-run] "
	}
	if result.Destination == "" {
		fmt.Fprintf(out, "%sDeleted %s.\n", prefix, result.Item.FolderName)
		return
	}
	fmt.Fprintf(out, "%sMoved %s to %s.\n", prefix, result.Item.FolderName, result.Destination)
}
