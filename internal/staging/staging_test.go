package staging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tonearm/internal/services"
)

func TestParseFolderName(t *testing.T) {
	artist, year, title, err := ParseFolderName("Radiohead - [1997] OK Computer")
	if err != nil {
		t.Fatalf("ParseFolderName returned error: %v", err)
	}
	if artist != "Radiohead" || year != 1997 || title != "OK Computer" {
		t.Errorf("parsed %q %d %q", artist, year, title)
	}
}

func TestParseFolderNameHyphenatedArtist(t *testing.T) {
	// The first " - [" occurrence splits the name, so hyphens inside the
	// title survive.
	artist, year, title, err := ParseFolderName("Sigur Rós - [2002] ( )")
	if err != nil {
		t.Fatalf("ParseFolderName returned error: %v", err)
	}
	if artist != "Sigur Rós" || year != 2002 || title != "( )" {
		t.Errorf("parsed %q %d %q", artist, year, title)
	}
}

func TestParseFolderNameRejectsDeviations(t *testing.T) {
	bad := []string{
		"Radiohead [1997] OK Computer",       // missing hyphen
		"Radiohead - (1997) OK Computer",     // wrong brackets
		"Radiohead - [97] OK Computer",       // short year
		"Radiohead - [1997]OK Computer",      // missing space after brackets
		"Radiohead-[1997] OK Computer",       // missing spaces around hyphen
		" - [1997] OK Computer",              // empty artist
		"Radiohead - [1997] ",                // empty title
		"OK Computer",                        // no convention at all
	}
	for _, name := range bad {
		_, _, _, err := ParseFolderName(name)
		if err == nil {
			t.Errorf("ParseFolderName(%q) should fail", name)
			continue
		}
		if !errors.Is(err, services.ErrValidation) {
			t.Errorf("ParseFolderName(%q) err = %v, want validation marker", name, err)
		}
	}
}

func TestFormatFolderNameRoundTrip(t *testing.T) {
	name := FormatFolderName("The Black Keys", 2010, "Brothers")
	if name != "The Black Keys - [2010] Brothers" {
		t.Fatalf("name = %q", name)
	}
	artist, year, title, err := ParseFolderName(name)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if artist != "The Black Keys" || year != 2010 || title != "Brothers" {
		t.Errorf("round trip parsed %q %d %q", artist, year, title)
	}
}

func TestAlbumSegment(t *testing.T) {
	if got := AlbumSegment(1997, "OK Computer"); got != "[1997] OK Computer" {
		t.Errorf("AlbumSegment = %q", got)
	}
}

func TestListSeparatesItemsFromIssues(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Radiohead - [1997] OK Computer",
		"The Black Keys - [2010] Brothers",
		"loose files",
	} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	// Plain files never participate.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	items, issues, err := List(dir, StateStaged)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %+v", items)
	}
	// Lexical order.
	if items[0].Artist != "Radiohead" || items[1].Artist != "The Black Keys" {
		t.Errorf("item order: %+v", items)
	}
	if items[0].State != StateStaged {
		t.Errorf("state = %q", items[0].State)
	}
	if items[0].Path != filepath.Join(dir, items[0].FolderName) {
		t.Errorf("path = %q", items[0].Path)
	}
	if len(issues) != 1 || issues[0].FolderName != "loose files" {
		t.Errorf("issues = %+v", issues)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	items, issues, err := List(filepath.Join(t.TempDir(), "absent"), StateDownloads)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 0 || len(issues) != 0 {
		t.Errorf("items = %+v issues = %+v", items, issues)
	}
}
