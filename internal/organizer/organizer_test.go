package organizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tonearm/internal/logging"
	"tonearm/internal/services"
	"tonearm/internal/staging"
	"tonearm/internal/transfer"
)

// fakeTransferer records calls and performs a plain rename so tests can
// observe filesystem outcomes without rsync.
type fakeTransferer struct {
	calls []transferCall
	fail  error
}

type transferCall struct {
	source      string
	destination string
	mode        transfer.Mode
}

func (f *fakeTransferer) Transfer(_ context.Context, source, destination string, mode transfer.Mode) error {
	f.calls = append(f.calls, transferCall{source, destination, mode})
	if f.fail != nil {
		return f.fail
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}
	if mode == transfer.ModeMove {
		return os.Rename(source, destination)
	}
	return copyDir(source, destination)
}

func copyDir(source, destination string) error {
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(source)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(source, entry.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(destination, entry.Name()), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func downloadItem(t *testing.T, downloads, folderName string) staging.Item {
	t.Helper()
	path := filepath.Join(downloads, folderName)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, "01 Track.flac"), []byte("audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	artist, year, title, err := staging.ParseFolderName(folderName)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return staging.Item{
		FolderName: folderName,
		Path:       path,
		Artist:     artist,
		Year:       year,
		AlbumTitle: title,
		State:      staging.StateDownloads,
	}
}

func TestShelfDestination(t *testing.T) {
	org := New("/lib", "/staging", &fakeTransferer{}, logging.NewNop(), false)
	item := staging.Item{Artist: "Radiohead", Year: 1997, AlbumTitle: "OK Computer", FolderName: "Radiohead - [1997] OK Computer"}
	got := org.ShelfDestination(item)
	want := filepath.Join("/lib", "R", "Radiohead", "[1997] OK Computer")
	if got != want {
		t.Errorf("destination = %q, want %q", got, want)
	}
}

func TestShelfDestinationStripsArticle(t *testing.T) {
	org := New("/lib", "/staging", &fakeTransferer{}, logging.NewNop(), false)
	item := staging.Item{Artist: "The Black Keys", Year: 2010, AlbumTitle: "Brothers"}
	got := org.ShelfDestination(item)
	want := filepath.Join("/lib", "B", "Black Keys", "[2010] Brothers")
	if got != want {
		t.Errorf("destination = %q, want %q", got, want)
	}
}

func TestStageCopiesThenRemovesDownload(t *testing.T) {
	downloads := t.TempDir()
	stagingDir := t.TempDir()
	item := downloadItem(t, downloads, "Radiohead - [1997] OK Computer")

	ft := &fakeTransferer{}
	org := New(t.TempDir(), stagingDir, ft, logging.NewNop(), false)

	result, err := org.Stage(context.Background(), item)
	if err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}
	if result.Destination != filepath.Join(stagingDir, item.FolderName) {
		t.Errorf("destination = %q", result.Destination)
	}
	if len(ft.calls) != 1 || ft.calls[0].mode != transfer.ModeCopy {
		t.Errorf("calls = %+v", ft.calls)
	}
	if _, err := os.Stat(item.Path); !os.IsNotExist(err) {
		t.Error("download should be removed after staging")
	}
	if _, err := os.Stat(filepath.Join(stagingDir, item.FolderName, "01 Track.flac")); err != nil {
		t.Errorf("staged file missing: %v", err)
	}
}

func TestStageRejectsWrongTier(t *testing.T) {
	org := New(t.TempDir(), t.TempDir(), &fakeTransferer{}, logging.NewNop(), false)
	item := staging.Item{FolderName: "x", State: staging.StateStaged}
	if _, err := org.Stage(context.Background(), item); !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want validation marker", err)
	}
}

func TestStageKeepsDownloadOnTransferFailure(t *testing.T) {
	downloads := t.TempDir()
	item := downloadItem(t, downloads, "Radiohead - [1997] OK Computer")

	ft := &fakeTransferer{fail: errors.New("rsync exploded")}
	org := New(t.TempDir(), t.TempDir(), ft, logging.NewNop(), false)

	if _, err := org.Stage(context.Background(), item); err == nil {
		t.Fatal("expected transfer failure")
	}
	if _, err := os.Stat(item.Path); err != nil {
		t.Error("download must survive a failed stage")
	}
}

func TestShelveMovesToLibrary(t *testing.T) {
	stagingDir := t.TempDir()
	libraryRoot := t.TempDir()
	item := downloadItem(t, stagingDir, "The Black Keys - [2010] Brothers")
	item.State = staging.StateStaged

	ft := &fakeTransferer{}
	org := New(libraryRoot, stagingDir, ft, logging.NewNop(), false)

	result, err := org.Shelve(context.Background(), item)
	if err != nil {
		t.Fatalf("Shelve returned error: %v", err)
	}
	want := filepath.Join(libraryRoot, "B", "Black Keys", "[2010] Brothers")
	if result.Destination != want {
		t.Errorf("destination = %q, want %q", result.Destination, want)
	}
	if len(ft.calls) != 1 || ft.calls[0].mode != transfer.ModeMove {
		t.Errorf("calls = %+v", ft.calls)
	}
	if _, err := os.Stat(filepath.Join(want, "01 Track.flac")); err != nil {
		t.Errorf("shelved file missing: %v", err)
	}
}

func TestShelveRejectsExistingDestination(t *testing.T) {
	stagingDir := t.TempDir()
	libraryRoot := t.TempDir()
	item := downloadItem(t, stagingDir, "Radiohead - [1997] OK Computer")
	item.State = staging.StateStaged

	occupied := filepath.Join(libraryRoot, "R", "Radiohead", "[1997] OK Computer")
	if err := os.MkdirAll(occupied, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	org := New(libraryRoot, stagingDir, &fakeTransferer{}, logging.NewNop(), false)
	if _, err := org.Shelve(context.Background(), item); !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want validation marker", err)
	}
}

func TestShelveRejectsWrongTier(t *testing.T) {
	org := New(t.TempDir(), t.TempDir(), &fakeTransferer{}, logging.NewNop(), false)
	item := staging.Item{FolderName: "x", State: staging.StateDownloads}
	if _, err := org.Shelve(context.Background(), item); !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want validation marker", err)
	}
}

func TestDeleteRemovesItem(t *testing.T) {
	stagingDir := t.TempDir()
	item := downloadItem(t, stagingDir, "Radiohead - [1997] OK Computer")

	org := New(t.TempDir(), stagingDir, &fakeTransferer{}, logging.NewNop(), false)
	if _, err := org.Delete(context.Background(), item); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := os.Stat(item.Path); !os.IsNotExist(err) {
		t.Error("item should be removed")
	}
}

func TestDryRunTouchesNothing(t *testing.T) {
	downloads := t.TempDir()
	item := downloadItem(t, downloads, "Radiohead - [1997] OK Computer")

	ft := &fakeTransferer{}
	org := New(t.TempDir(), t.TempDir(), ft, logging.NewNop(), true)

	result, err := org.Stage(context.Background(), item)
	if err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}
	if !result.DryRun {
		t.Error("result should be marked dry run")
	}
	if len(ft.calls) != 0 {
		t.Errorf("transferer invoked during dry run: %+v", ft.calls)
	}
	if _, err := os.Stat(item.Path); err != nil {
		t.Error("download must be untouched in dry run")
	}

	if _, err := org.Delete(context.Background(), item); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := os.Stat(item.Path); err != nil {
		t.Error("delete must be a no-op in dry run")
	}
}
