// Package staging models downloaded albums waiting in the graduation
// pipeline. Folder names follow the convention
// "{Artist} - [{YYYY}] {Album Title}"; anything else is surfaced as a
// format issue rather than silently skipped.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"tonearm/internal/services"
)

// State identifies where an item sits in the graduation pipeline.
type State string

const (
	// StateDownloads is raw downloader output awaiting staging.
	StateDownloads State = "downloads"
	// StateStaged is the listening queue awaiting shelve or delete.
	StateStaged State = "staged"
)

// folderPattern is the bit-exact naming convention: single space, hyphen,
// single space, literal brackets around a 4-digit year, single space.
var folderPattern = regexp.MustCompile(`^(.+?) - \[(\d{4})\] (.+)$`)

// Item is one album folder parsed from the convention.
type Item struct {
	FolderName string
	Path       string
	Artist     string
	Year       int
	AlbumTitle string
	State      State
}

// FormatIssue records a folder that does not match the naming convention.
type FormatIssue struct {
	FolderName string
	Reason     string
}

// ParseFolderName extracts the artist, year, and album title from a folder
// name. Any deviation from the convention is a validation error.
func ParseFolderName(name string) (artist string, year int, title string, err error) {
	matches := folderPattern.FindStringSubmatch(name)
	if matches == nil {
		return "", 0, "", services.Wrap(services.ErrValidation, "", "parse folder name",
			fmt.Sprintf("%q does not match \"Artist - [YYYY] Title\"", name), nil)
	}
	year, convErr := strconv.Atoi(matches[2])
	if convErr != nil {
		return "", 0, "", services.Wrap(services.ErrValidation, "", "parse folder name",
			fmt.Sprintf("%q carries an unreadable year", name), convErr)
	}
	return matches[1], year, matches[3], nil
}

// FormatFolderName renders the convention for an album.
func FormatFolderName(artist string, year int, title string) string {
	return fmt.Sprintf("%s - [%04d] %s", artist, year, title)
}

// AlbumSegment renders the album directory segment "[YYYY] Title" used
// under an artist's library directory.
func AlbumSegment(year int, title string) string {
	return fmt.Sprintf("[%04d] %s", year, title)
}

// List reads dir and returns every conforming album folder as an Item in
// lexical order, plus a FormatIssue per non-conforming entry. Plain files
// are ignored; only directories participate in the pipeline.
func List(dir string, state State) ([]Item, []FormatIssue, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var items []Item
	var issues []FormatIssue
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		artist, year, title, err := ParseFolderName(name)
		if err != nil {
			issues = append(issues, FormatIssue{
				FolderName: name,
				Reason:     "does not match \"Artist - [YYYY] Title\"",
			})
			continue
		}
		items = append(items, Item{
			FolderName: name,
			Path:       filepath.Join(dir, name),
			Artist:     artist,
			Year:       year,
			AlbumTitle: title,
			State:      state,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].FolderName < items[j].FolderName })
	return items, issues, nil
}
