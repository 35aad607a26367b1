// Package transfer moves album directories between library tiers. Copies
// run through rsync; moves try a rename first and fall back to a verified
// copy when the destination sits on another filesystem.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tonearm/internal/logging"
	"tonearm/internal/services"
)

// Mode selects how a transfer treats the source.
type Mode string

const (
	// ModeCopy leaves the source in place.
	ModeCopy Mode = "copy"
	// ModeMove removes the source after the destination is complete.
	ModeMove Mode = "move"
)

// Transferer moves one directory tree to a destination path.
type Transferer interface {
	Transfer(ctx context.Context, source, destination string, mode Mode) error
}

// Rsync shells out to rsync for copies and uses rename-or-copy for moves.
type Rsync struct {
	binary string
	logger *slog.Logger

	// run is swapped in tests to observe the spawned command.
	run func(ctx context.Context, name string, args ...string) error
}

// NewRsync builds a Transferer around the given rsync binary.
func NewRsync(binary string, logger *slog.Logger) *Rsync {
	if strings.TrimSpace(binary) == "" {
		binary = "rsync"
	}
	return &Rsync{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "transfer"),
		run:    runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(output))
		if trimmed != "" {
			return fmt.Errorf("%w: %s", err, trimmed)
		}
		return err
	}
	return nil
}

// Transfer copies or moves source to destination. Both paths are directory
// trees; the destination's parent is created as needed.
func (r *Rsync) Transfer(ctx context.Context, source, destination string, mode Mode) error {
	if _, err := os.Stat(source); err != nil {
		return services.Wrap(services.ErrValidation, "", "transfer", "source unavailable", err)
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("create destination parent: %w", err)
	}

	switch mode {
	case ModeCopy:
		return r.copy(ctx, source, destination)
	case ModeMove:
		return r.move(ctx, source, destination)
	default:
		return services.Wrap(services.ErrValidation, "", "transfer", fmt.Sprintf("unknown mode %q", mode), nil)
	}
}

func (r *Rsync) copy(ctx context.Context, source, destination string) error {
	args := copyArgs(source, destination)
	r.logger.Debug("copying album", logging.String("source", source), logging.String("destination", destination))
	if err := r.run(ctx, r.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, r.binary, "copy", "", err)
	}
	return nil
}

// copyArgs builds the rsync invocation. Trailing slashes make rsync copy
// directory contents into the destination rather than nesting the source.
func copyArgs(source, destination string) []string {
	return []string{
		"-avh",
		"--progress",
		"--whole-file",
		strings.TrimRight(source, "/") + "/",
		strings.TrimRight(destination, "/") + "/",
	}
}

func (r *Rsync) move(ctx context.Context, source, destination string) error {
	if err := os.Rename(source, destination); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy then delete.
	r.logger.Debug("rename unavailable, copying then deleting",
		logging.String("source", source), logging.String("destination", destination))
	if err := copyTree(source, destination); err != nil {
		return err
	}
	if err := os.RemoveAll(source); err != nil {
		return fmt.Errorf("remove source after move: %w", err)
	}
	return nil
}
