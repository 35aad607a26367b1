package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tonearm/internal/library"
	"tonearm/internal/logging"
	"tonearm/internal/services"
	"tonearm/internal/staging"
	"tonearm/internal/textutil"
	"tonearm/internal/transfer"
)

// Organizer executes graduation transitions against the filesystem.
type Organizer struct {
	libraryRoot string
	stagingDir  string
	transferer  transfer.Transferer
	logger      *slog.Logger
	dryRun      bool
}

// Result reports one completed (or dry-run) transition.
type Result struct {
	Item        staging.Item
	Destination string
	DryRun      bool
}

// New builds an Organizer. With dryRun set, transitions compute and report
// destinations but never invoke the transferer or delete anything.
func New(libraryRoot, stagingDir string, transferer transfer.Transferer, logger *slog.Logger, dryRun bool) *Organizer {
	return &Organizer{
		libraryRoot: libraryRoot,
		stagingDir:  stagingDir,
		transferer:  transferer,
		logger:      logging.NewComponentLogger(logger, "organizer"),
		dryRun:      dryRun,
	}
}

// ShelfDestination computes the permanent library path for an item:
// root/<bucket letter>/<artist>/[YYYY] Title.
func (o *Organizer) ShelfDestination(item staging.Item) string {
	segment := textutil.SanitizePathSegment(staging.AlbumSegment(item.Year, item.AlbumTitle))
	return filepath.Join(library.ArtistPath(o.libraryRoot, item.Artist), segment)
}

// StageDestination computes the listening-queue path for a downloaded item.
func (o *Organizer) StageDestination(item staging.Item) string {
	return filepath.Join(o.stagingDir, item.FolderName)
}

// Stage promotes a downloaded album into the listening queue. The album is
// copied and verified before the download is removed.
func (o *Organizer) Stage(ctx context.Context, item staging.Item) (Result, error) {
	if item.State != staging.StateDownloads {
		return Result{}, services.Wrap(services.ErrValidation, "", "stage",
			fmt.Sprintf("%q is not in the downloads tier", item.FolderName), nil)
	}
	destination := o.StageDestination(item)
	result := Result{Item: item, Destination: destination, DryRun: o.dryRun}
	if o.dryRun {
		o.logger.Info("dry run: would stage album",
			logging.String("album", item.FolderName), logging.String("destination", destination))
		return result, nil
	}

	if err := o.transferer.Transfer(ctx, item.Path, destination, transfer.ModeCopy); err != nil {
		return Result{}, err
	}
	if err := os.RemoveAll(item.Path); err != nil {
		return Result{}, fmt.Errorf("remove staged download: %w", err)
	}
	o.logger.Info("staged album",
		logging.String("album", item.FolderName), logging.String("destination", destination))
	return result, nil
}

// Shelve moves a staged album into its permanent library location.
func (o *Organizer) Shelve(ctx context.Context, item staging.Item) (Result, error) {
	if item.State != staging.StateStaged {
		return Result{}, services.Wrap(services.ErrValidation, "", "shelve",
			fmt.Sprintf("%q is not in the staging tier", item.FolderName), nil)
	}
	destination := o.ShelfDestination(item)
	result := Result{Item: item, Destination: destination, DryRun: o.dryRun}
	if o.dryRun {
		o.logger.Info("dry run: would shelve album",
			logging.String("album", item.FolderName), logging.String("destination", destination))
		return result, nil
	}

	if _, err := os.Stat(destination); err == nil {
		return Result{}, services.Wrap(services.ErrValidation, "", "shelve",
			fmt.Sprintf("destination %q already exists", destination), nil)
	}
	if err := o.transferer.Transfer(ctx, item.Path, destination, transfer.ModeMove); err != nil {
		return Result{}, err
	}
	o.logger.Info("shelved album",
		logging.String("album", item.FolderName), logging.String("destination", destination))
	return result, nil
}

// Delete removes an item from its current tier without transitioning it.
func (o *Organizer) Delete(ctx context.Context, item staging.Item) (Result, error) {
	result := Result{Item: item, DryRun: o.dryRun}
	if o.dryRun {
		o.logger.Info("dry run: would delete album", logging.String("album", item.FolderName))
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := os.RemoveAll(item.Path); err != nil {
		return Result{}, fmt.Errorf("delete album: %w", err)
	}
	o.logger.Info("deleted album", logging.String("album", item.FolderName))
	return result, nil
}
