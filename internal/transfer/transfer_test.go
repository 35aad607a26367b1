package transfer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tonearm/internal/logging"
	"tonearm/internal/services"
)

func writeAlbum(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestCopyArgs(t *testing.T) {
	got := copyArgs("/downloads/album", "/staging/album/")
	want := []string{"-avh", "--progress", "--whole-file", "/downloads/album/", "/staging/album/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("copyArgs = %v, want %v", got, want)
	}
}

func TestTransferCopyInvokesRsync(t *testing.T) {
	source := t.TempDir()
	destination := filepath.Join(t.TempDir(), "album")

	var gotName string
	var gotArgs []string
	rsync := NewRsync("rsync", logging.NewNop())
	rsync.run = func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	if err := rsync.Transfer(context.Background(), source, destination, ModeCopy); err != nil {
		t.Fatalf("Transfer returned error: %v", err)
	}
	if gotName != "rsync" {
		t.Errorf("binary = %q", gotName)
	}
	if len(gotArgs) != 5 || gotArgs[0] != "-avh" {
		t.Errorf("args = %v", gotArgs)
	}
	if !strings.HasSuffix(gotArgs[3], "/") || !strings.HasSuffix(gotArgs[4], "/") {
		t.Errorf("paths missing trailing slash: %v", gotArgs)
	}
}

func TestTransferCopyWrapsToolFailure(t *testing.T) {
	rsync := NewRsync("rsync", logging.NewNop())
	rsync.run = func(context.Context, string, ...string) error {
		return errors.New("exit status 12")
	}
	err := rsync.Transfer(context.Background(), t.TempDir(), filepath.Join(t.TempDir(), "x"), ModeCopy)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Errorf("err = %v, want external tool marker", err)
	}
}

func TestTransferMoveRenames(t *testing.T) {
	parent := t.TempDir()
	source := filepath.Join(parent, "source")
	if err := os.Mkdir(source, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeAlbum(t, source, map[string]string{"01 Airbag.flac": "audio"})
	destination := filepath.Join(parent, "dest", "album")

	rsync := NewRsync("rsync", logging.NewNop())
	if err := rsync.Transfer(context.Background(), source, destination, ModeMove); err != nil {
		t.Fatalf("Transfer returned error: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("source should be gone after move")
	}
	data, err := os.ReadFile(filepath.Join(destination, "01 Airbag.flac"))
	if err != nil || string(data) != "audio" {
		t.Errorf("destination contents = %q, err %v", data, err)
	}
}

func TestTransferMissingSource(t *testing.T) {
	rsync := NewRsync("rsync", logging.NewNop())
	err := rsync.Transfer(context.Background(), filepath.Join(t.TempDir(), "absent"), t.TempDir(), ModeCopy)
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want validation marker", err)
	}
}

func TestTransferUnknownMode(t *testing.T) {
	rsync := NewRsync("rsync", logging.NewNop())
	err := rsync.Transfer(context.Background(), t.TempDir(), filepath.Join(t.TempDir(), "x"), Mode("link"))
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want validation marker", err)
	}
}

func TestCopyTreePreservesLayout(t *testing.T) {
	source := t.TempDir()
	writeAlbum(t, source, map[string]string{
		"01 Airbag.flac":     "one",
		"art/cover.jpg":      "img",
		"art/booklet/p1.jpg": "pg",
	})
	destination := filepath.Join(t.TempDir(), "copy")

	if err := copyTree(source, destination); err != nil {
		t.Fatalf("copyTree returned error: %v", err)
	}
	for rel, want := range map[string]string{
		"01 Airbag.flac":     "one",
		"art/cover.jpg":      "img",
		"art/booklet/p1.jpg": "pg",
	} {
		data, err := os.ReadFile(filepath.Join(destination, filepath.FromSlash(rel)))
		if err != nil {
			t.Errorf("read %s: %v", rel, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", rel, data, want)
		}
	}
	// Source untouched.
	if _, err := os.Stat(filepath.Join(source, "01 Airbag.flac")); err != nil {
		t.Errorf("source file missing: %v", err)
	}
}
