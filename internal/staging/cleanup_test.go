package staging

import (
	"os"
	"path/filepath"
	"testing"

	"tonearm/internal/logging"
)

func TestCleanEmptyInvalidPaths(t *testing.T) {
	for _, dir := range []string{"", "   ", "/nonexistent/path/12345"} {
		result := CleanEmpty(dir, logging.NewNop())
		if len(result.Removed) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result for path %q", dir)
		}
	}
}

func TestCleanEmptyRemovesOnlyFilelessFolders(t *testing.T) {
	tmpDir := t.TempDir()

	emptyDir := filepath.Join(tmpDir, "Artist - [2001] Failed Download")
	if err := os.MkdirAll(filepath.Join(emptyDir, "Disc 1"), 0o755); err != nil {
		t.Fatalf("create empty tree: %v", err)
	}

	fullDir := filepath.Join(tmpDir, "Artist - [2002] Keeper")
	if err := os.Mkdir(fullDir, 0o755); err != nil {
		t.Fatalf("create full dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fullDir, "01 Track.flac"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write track: %v", err)
	}

	result := CleanEmpty(tmpDir, logging.NewNop())

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Removed) != 1 || result.Removed[0] != emptyDir {
		t.Fatalf("removed = %v, want [%s]", result.Removed, emptyDir)
	}
	if _, err := os.Stat(emptyDir); !os.IsNotExist(err) {
		t.Error("empty tree should have been removed")
	}
	if _, err := os.Stat(fullDir); err != nil {
		t.Error("folder with files must survive the sweep")
	}
}

func TestCleanEmptyIgnoresFiles(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(file, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	result := CleanEmpty(tmpDir, logging.NewNop())
	if len(result.Removed) != 0 {
		t.Errorf("expected no removals, got %v", result.Removed)
	}
	if _, err := os.Stat(file); err != nil {
		t.Error("loose files must survive the sweep")
	}
}

func TestCleanEmptyNestedDirectoriesCountAsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "husk", "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("create nested: %v", err)
	}

	result := CleanEmpty(tmpDir, logging.NewNop())
	if len(result.Removed) != 1 {
		t.Fatalf("removed = %v, want one husk", result.Removed)
	}
}
