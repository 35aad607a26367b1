package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRemote(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.DownloadsDir == c.Paths.StagingDir {
		return errors.New("paths.downloads_dir and paths.staging_dir must differ")
	}
	if c.Paths.StagingDir == c.Paths.LibraryDir {
		return errors.New("paths.staging_dir and paths.library_dir must differ")
	}
	return nil
}

func (c *Config) validateRemote() error {
	if c.Remote.BaseURL == "" {
		return errors.New("remote.base_url must be set")
	}
	if c.Remote.TimeoutSeconds <= 0 {
		return errors.New("remote.timeout_seconds must be positive")
	}
	if c.Remote.MinAlbumTracks < 1 {
		return errors.New("remote.min_album_tracks must be >= 1")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold < 1 || c.Matching.Threshold > 100 {
		return errors.New("matching.threshold must be between 1 and 100")
	}
	if c.Matching.Suggestions < 1 {
		return errors.New("matching.suggestions must be >= 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console, or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
