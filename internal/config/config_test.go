package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Error("exists should be false for a missing file")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Matching.Threshold != defaultMatchThreshold {
		t.Errorf("threshold = %d", cfg.Matching.Threshold)
	}
	if cfg.Remote.MinAlbumTracks != defaultMinAlbumTracks {
		t.Errorf("min_album_tracks = %d", cfg.Remote.MinAlbumTracks)
	}
	if cfg.Logging.Format != "auto" {
		t.Errorf("format = %q", cfg.Logging.Format)
	}
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[paths]
library_dir = "~/records"

[matching]
threshold = 90

[logging]
format = "json"
level = "debug"
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("exists should be true")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home dir: %v", err)
	}
	if cfg.Paths.LibraryDir != filepath.Join(home, "records") {
		t.Errorf("library_dir = %q", cfg.Paths.LibraryDir)
	}
	if cfg.Matching.Threshold != 90 {
		t.Errorf("threshold = %d", cfg.Matching.Threshold)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	// Untouched sections keep defaults.
	if cfg.Transfer.RsyncBinary != defaultRsyncBinary {
		t.Errorf("rsync_binary = %q", cfg.Transfer.RsyncBinary)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "threshold out of range",
			contents: "[matching]\nthreshold = 150\n",
			want:     "matching.threshold",
		},
		{
			name:     "unknown log level",
			contents: "[logging]\nlevel = \"chatty\"\n",
			want:     "logging.level",
		},
		{
			name:     "unknown log format",
			contents: "[logging]\nformat = \"xml\"\n",
			want:     "logging.format",
		},
		{
			name:     "staging equals library",
			contents: "[paths]\nstaging_dir = \"~/x\"\nlibrary_dir = \"~/x\"\n",
			want:     "must differ",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.contents)
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestRemoteSecretsFromEnvironment(t *testing.T) {
	t.Setenv("QOBUZ_APP_ID", "app-from-env")
	t.Setenv("QOBUZ_SECRET", "secret-from-env")
	t.Setenv("LASTFM_API_KEY", "lastfm-from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Remote.AppID != "app-from-env" {
		t.Errorf("app_id = %q", cfg.Remote.AppID)
	}
	if cfg.Remote.Secret != "secret-from-env" {
		t.Errorf("secret = %q", cfg.Remote.Secret)
	}
	if cfg.LastFM.APIKey != "lastfm-from-env" {
		t.Errorf("lastfm api_key = %q", cfg.LastFM.APIKey)
	}
}

func TestFileSecretWinsOverEnvironment(t *testing.T) {
	t.Setenv("QOBUZ_SECRET", "secret-from-env")
	path := writeConfig(t, "[remote]\nsecret = \"secret-from-file\"\n")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Remote.Secret != "secret-from-file" {
		t.Errorf("secret = %q", cfg.Remote.Secret)
	}
}

func TestRemoteBaseURLTrailingSlashTrimmed(t *testing.T) {
	path := writeConfig(t, "[remote]\nbase_url = \"https://example.test/api/\"\n")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Remote.BaseURL != "https://example.test/api" {
		t.Errorf("base_url = %q", cfg.Remote.BaseURL)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("sample file should exist")
	}
	if cfg.Matching.Threshold != defaultMatchThreshold {
		t.Errorf("threshold = %d", cfg.Matching.Threshold)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home dir: %v", err)
	}
	got, err := ExpandPath("~/music")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "music") {
		t.Errorf("ExpandPath = %q", got)
	}
}
