package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRemote()
	c.normalizeLastFM()
	c.normalizeMatching()
	c.normalizeTransfer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DownloadsDir) == "" {
		c.Paths.DownloadsDir = defaultDownloadsDir()
	}
	if c.Paths.DownloadsDir, err = expandPath(c.Paths.DownloadsDir); err != nil {
		return fmt.Errorf("paths.downloads_dir: %w", err)
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.IgnorePath) == "" {
		c.Paths.IgnorePath = defaultIgnorePath()
	}
	if c.Paths.IgnorePath, err = expandPath(c.Paths.IgnorePath); err != nil {
		return fmt.Errorf("paths.ignore_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeRemote() {
	c.Remote.BaseURL = strings.TrimRight(strings.TrimSpace(c.Remote.BaseURL), "/")
	if c.Remote.BaseURL == "" {
		c.Remote.BaseURL = defaultRemoteBaseURL
	}
	c.Remote.AppID = strings.TrimSpace(c.Remote.AppID)
	if c.Remote.AppID == "" {
		if value, ok := os.LookupEnv("QOBUZ_APP_ID"); ok {
			c.Remote.AppID = strings.TrimSpace(value)
		}
	}
	c.Remote.Secret = strings.TrimSpace(c.Remote.Secret)
	if c.Remote.Secret == "" {
		if value, ok := os.LookupEnv("QOBUZ_SECRET"); ok {
			c.Remote.Secret = strings.TrimSpace(value)
		}
	}
	if c.Remote.TimeoutSeconds <= 0 {
		c.Remote.TimeoutSeconds = defaultRemoteTimeoutSeconds
	}
	if c.Remote.MinAlbumTracks <= 0 {
		c.Remote.MinAlbumTracks = defaultMinAlbumTracks
	}
}

func (c *Config) normalizeLastFM() {
	c.LastFM.BaseURL = strings.TrimSpace(c.LastFM.BaseURL)
	if c.LastFM.BaseURL == "" {
		c.LastFM.BaseURL = defaultLastFMBaseURL
	}
	c.LastFM.APIKey = strings.TrimSpace(c.LastFM.APIKey)
	if c.LastFM.APIKey == "" {
		if value, ok := os.LookupEnv("LASTFM_API_KEY"); ok {
			c.LastFM.APIKey = strings.TrimSpace(value)
		}
	}
	if c.LastFM.TimeoutSeconds <= 0 {
		c.LastFM.TimeoutSeconds = defaultLastFMTimeoutSeconds
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.Threshold == 0 {
		c.Matching.Threshold = defaultMatchThreshold
	}
	if c.Matching.Suggestions <= 0 {
		c.Matching.Suggestions = defaultSuggestionCount
	}
}

func (c *Config) normalizeTransfer() {
	c.Transfer.RsyncBinary = strings.TrimSpace(c.Transfer.RsyncBinary)
	if c.Transfer.RsyncBinary == "" {
		c.Transfer.RsyncBinary = defaultRsyncBinary
	}
	c.Transfer.DownloaderBinary = strings.TrimSpace(c.Transfer.DownloaderBinary)
	if c.Transfer.DownloaderBinary == "" {
		c.Transfer.DownloaderBinary = defaultDownloaderBinary
	}
	args := make([]string, 0, len(c.Transfer.DownloaderArgs))
	for _, arg := range c.Transfer.DownloaderArgs {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	c.Transfer.DownloaderArgs = args
	command := make([]string, 0, len(c.Transfer.PlayerCommand))
	for _, arg := range c.Transfer.PlayerCommand {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			command = append(command, trimmed)
		}
	}
	c.Transfer.PlayerCommand = command
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
