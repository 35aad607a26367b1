package staging

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tonearm/internal/logging"
)

// CleanupResult reports one sweep over a pipeline directory.
type CleanupResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanEmpty removes album folders that contain no files anywhere beneath
// them. Failed downloads and completed moves both leave such husks behind.
// Folders holding any file at all are never touched.
func CleanEmpty(dir string, logger *slog.Logger) CleanupResult {
	result := CleanupResult{}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return result
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: dir, Error: err})
		}
		return result
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		empty, err := isEmptyTree(path)
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			continue
		}
		if !empty {
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			if logger != nil {
				logger.Warn("failed to remove empty album folder",
					logging.String("path", path),
					logging.Error(err))
			}
			continue
		}
		result.Removed = append(result.Removed, path)
		if logger != nil {
			logger.Info("removed empty album folder", logging.String("path", path))
		}
	}

	return result
}

// isEmptyTree reports whether no regular file exists anywhere under path.
func isEmptyTree(path string) (bool, error) {
	empty := true
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			empty = false
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return empty, nil
}
