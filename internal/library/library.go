// Package library scans the permanent on-disk catalog. The layout is
// letter-bucket based: single-letter directories under the root, artist
// directories beneath them, and album directories named "[YYYY] Title".
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"tonearm/internal/textutil"
)

// Album is one album directory under an artist.
type Album struct {
	Year  int
	Title string
	Path  string
}

// Artist is one artist directory with its albums. CanonicalName is the
// directory name as stored; Name has any leading "The " stripped.
type Artist struct {
	Name          string
	CanonicalName string
	Albums        []Album
	Path          string
}

var albumFolderPattern = regexp.MustCompile(`^\[(\d{4})\]\s*(.+)$`)

// StripArticle removes a leading "The " from a display name, preserving
// the rest of the casing.
func StripArticle(name string) string {
	if len(name) > 4 && strings.EqualFold(name[:4], "the ") {
		return name[4:]
	}
	return name
}

// SearchVariants returns the name both with and without a leading "The",
// normalized form first, for remote catalog queries.
func SearchVariants(name string) []string {
	stripped := StripArticle(name)
	if stripped == name {
		return []string{name, "The " + name}
	}
	return []string{stripped, name}
}

// Bucket returns the single-letter directory an artist lives under: the
// first letter of the article-stripped, accent-folded name, uppercased.
func Bucket(artistName string) string {
	stripped := StripArticle(textutil.FoldDiacritics(artistName))
	for _, r := range stripped {
		return string(unicode.ToUpper(r))
	}
	return "A"
}

// ArtistPath returns the expected directory for an artist under root. The
// artist segment is stored without a leading article, sanitized for the
// filesystem.
func ArtistPath(root, artistName string) string {
	segment := textutil.SanitizePathSegment(StripArticle(artistName))
	return filepath.Join(root, Bucket(artistName), segment)
}

// ParseAlbumFolder extracts the year and title from an album directory
// name, or reports false for a non-conforming name.
func ParseAlbumFolder(name string) (int, string, bool) {
	matches := albumFolderPattern.FindStringSubmatch(name)
	if matches == nil {
		return 0, "", false
	}
	year, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, "", false
	}
	return year, matches[2], true
}

// Scan walks the letter buckets under root and returns every artist that
// has at least one conforming album directory, sorted by stripped name.
// A missing root yields an empty catalog, not an error.
func Scan(root string) ([]Artist, error) {
	buckets, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read library root: %w", err)
	}

	var artists []Artist
	for _, bucket := range buckets {
		if !bucket.IsDir() || len([]rune(bucket.Name())) != 1 {
			continue
		}
		bucketPath := filepath.Join(root, bucket.Name())
		artistDirs, err := os.ReadDir(bucketPath)
		if err != nil {
			return nil, fmt.Errorf("read bucket %s: %w", bucket.Name(), err)
		}
		for _, artistDir := range artistDirs {
			if !artistDir.IsDir() {
				continue
			}
			artistPath := filepath.Join(bucketPath, artistDir.Name())
			albums, err := scanAlbums(artistPath)
			if err != nil {
				return nil, err
			}
			if len(albums) == 0 {
				continue
			}
			artists = append(artists, Artist{
				Name:          StripArticle(artistDir.Name()),
				CanonicalName: artistDir.Name(),
				Albums:        albums,
				Path:          artistPath,
			})
		}
	}
	sort.Slice(artists, func(i, j int) bool { return artists[i].Name < artists[j].Name })
	return artists, nil
}

func scanAlbums(artistPath string) ([]Album, error) {
	entries, err := os.ReadDir(artistPath)
	if err != nil {
		return nil, fmt.Errorf("read artist %s: %w", artistPath, err)
	}
	var albums []Album
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year, title, ok := ParseAlbumFolder(entry.Name())
		if !ok {
			continue
		}
		albums = append(albums, Album{
			Year:  year,
			Title: title,
			Path:  filepath.Join(artistPath, entry.Name()),
		})
	}
	sort.Slice(albums, func(i, j int) bool {
		if albums[i].Year != albums[j].Year {
			return albums[i].Year < albums[j].Year
		}
		return albums[i].Title < albums[j].Title
	})
	return albums, nil
}

// Names returns the canonical artist names from a scan, in scan order,
// for building a resolver index.
func Names(artists []Artist) []string {
	names := make([]string, 0, len(artists))
	for _, artist := range artists {
		names = append(names, artist.CanonicalName)
	}
	return names
}

// HasAlbum reports whether the artist already shelves an album whose
// normalized title matches title.
func (a Artist) HasAlbum(title string) bool {
	want := textutil.NormalizeAlbumTitle(title)
	for _, album := range a.Albums {
		if textutil.NormalizeAlbumTitle(album.Title) == want {
			return true
		}
	}
	return false
}
