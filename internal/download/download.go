// Package download drives the external album downloader and performs
// post-download cleanup. Downloads land in the downloads directory under
// the "{Artist} - [{YYYY}] {Album Title}" convention so the graduation
// pipeline can pick them up unchanged.
package download

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
	"tonearm/internal/staging"
	"tonearm/internal/textutil"
)

// Request describes one album to download.
type Request struct {
	AlbumURL string
	Artist   string
	Year     int
	Title    string
}

// Downloader fetches one album and returns the folder it produced.
type Downloader interface {
	Download(ctx context.Context, req Request) (string, error)
}

// Exec shells out to a qobuz-dl style downloader binary.
type Exec struct {
	binary       string
	extraArgs    []string
	downloadsDir string
	logger       *slog.Logger

	// run is swapped in tests to observe the spawned command.
	run func(ctx context.Context, name string, args ...string) error
}

// NewExec builds a Downloader around the configured binary.
func NewExec(binary string, extraArgs []string, downloadsDir string, logger *slog.Logger) *Exec {
	return &Exec{
		binary:       binary,
		extraArgs:    extraArgs,
		downloadsDir: downloadsDir,
		logger:       logging.NewComponentLogger(logger, "download"),
		run:          runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// FolderName renders the destination folder for a request, sanitized for
// the filesystem.
func (r Request) FolderName() string {
	return staging.FormatFolderName(
		textutil.SanitizePathSegment(r.Artist),
		r.Year,
		textutil.SanitizePathSegment(r.Title),
	)
}

// Download runs the downloader and returns the produced album folder.
func (e *Exec) Download(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.AlbumURL) == "" {
		return "", services.Wrap(services.ErrValidation, "", "download", "album url missing", nil)
	}
	if err := os.MkdirAll(e.downloadsDir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads directory: %w", err)
	}

	folder := req.FolderName()
	args := e.buildArgs(req.AlbumURL, folder)
	e.logger.Info("downloading album",
		logging.String("album", folder), logging.String("url", req.AlbumURL))
	if err := e.run(ctx, e.binary, args...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, e.binary, "download", req.AlbumURL, err)
	}

	path := filepath.Join(e.downloadsDir, folder)
	if _, err := os.Stat(path); err != nil {
		return "", services.Wrap(services.ErrExternalTool, e.binary, "download",
			fmt.Sprintf("expected folder %q was not produced", folder), err)
	}
	return path, nil
}

// buildArgs assembles the downloader invocation. The folder format is the
// already-rendered name so the tool cannot improvise its own layout.
func (e *Exec) buildArgs(albumURL, folder string) []string {
	args := []string{"dl", albumURL, "--embed-art", "-d", e.downloadsDir, "--folder-format", folder}
	return append(args, e.extraArgs...)
}
