package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	defaultLibraryDir           = "~/music/library"
	defaultStagingDir           = "~/music/staging"
	defaultLogDir               = "~/.local/share/tonearm/logs"
	defaultRemoteBaseURL        = "https://www.qobuz.com/api.json/0.2"
	defaultRemoteTimeoutSeconds = 30
	defaultMinAlbumTracks       = 4
	defaultLastFMBaseURL        = "https://ws.audioscrobbler.com/2.0/"
	defaultLastFMTimeoutSeconds = 15
	defaultMatchThreshold       = 80
	defaultSuggestionCount      = 3
	defaultRsyncBinary          = "rsync"
	defaultDownloaderBinary     = "qobuz-dl"
	defaultLogFormat            = "auto"
	defaultLogLevel             = "info"
)

func defaultDownloadsDir() string {
	if dir := xdg.UserDirs.Download; dir != "" {
		return dir
	}
	return "~/Downloads"
}

func defaultIgnorePath() string {
	return filepath.Join(xdg.ConfigHome, "tonearm", "ignore.json")
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:   defaultLibraryDir,
			DownloadsDir: defaultDownloadsDir(),
			StagingDir:   defaultStagingDir,
			LogDir:       defaultLogDir,
			IgnorePath:   defaultIgnorePath(),
		},
		Remote: Remote{
			BaseURL:        defaultRemoteBaseURL,
			TimeoutSeconds: defaultRemoteTimeoutSeconds,
			MinAlbumTracks: defaultMinAlbumTracks,
		},
		LastFM: LastFM{
			BaseURL:        defaultLastFMBaseURL,
			TimeoutSeconds: defaultLastFMTimeoutSeconds,
		},
		Matching: Matching{
			Threshold:   defaultMatchThreshold,
			Suggestions: defaultSuggestionCount,
		},
		Transfer: Transfer{
			RsyncBinary:      defaultRsyncBinary,
			DownloaderBinary: defaultDownloaderBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
