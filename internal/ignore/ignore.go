// Package ignore persists the artists and albums excluded from discovery.
// The store is a flat JSON file; comparisons are case- and accent-
// insensitive, and add/remove are idempotent.
package ignore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"tonearm/internal/textutil"
)

// Entry is one ignored artist or artist/album pair. Album is empty for an
// artist-level entry, which covers every album by that artist.
type Entry struct {
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
}

type fileFormat struct {
	Entries []Entry `json:"entries"`
}

// Store owns the ignore file. It is not safe for concurrent use; the tool
// runs single-process and single-user.
type Store struct {
	path    string
	entries []Entry
}

// Open loads the store at path, treating a missing file as empty.
func Open(path string) (*Store, error) {
	store := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	var contents fileFormat
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("parse ignore file %s: %w", path, err)
	}
	store.entries = contents.Entries
	return store, nil
}

// IsIgnored reports whether the artist, or the specific artist/album pair,
// is excluded. Pass an empty album to check the artist level only.
func (s *Store) IsIgnored(artist, album string) bool {
	wantArtist := textutil.NormalizeArtist(artist)
	wantAlbum := ""
	if album != "" {
		wantAlbum = textutil.NormalizeAlbumTitle(album)
	}
	for _, entry := range s.entries {
		if textutil.NormalizeArtist(entry.Artist) != wantArtist {
			continue
		}
		if entry.Album == "" {
			return true
		}
		if wantAlbum != "" && textutil.NormalizeAlbumTitle(entry.Album) == wantAlbum {
			return true
		}
	}
	return false
}

// Add records an entry and saves the file. Adding an already-covered entry
// is a no-op.
func (s *Store) Add(artist, album string) error {
	if s.contains(artist, album) {
		return nil
	}
	s.entries = append(s.entries, Entry{Artist: artist, Album: album})
	return s.save()
}

// Remove drops the matching entry and saves the file. Removing an absent
// entry is a no-op. Removing an artist-level entry does not touch that
// artist's album-level entries, and vice versa.
func (s *Store) Remove(artist, album string) error {
	wantArtist := textutil.NormalizeArtist(artist)
	wantAlbum := ""
	if album != "" {
		wantAlbum = textutil.NormalizeAlbumTitle(album)
	}
	kept := s.entries[:0]
	removed := false
	for _, entry := range s.entries {
		entryAlbum := ""
		if entry.Album != "" {
			entryAlbum = textutil.NormalizeAlbumTitle(entry.Album)
		}
		if textutil.NormalizeArtist(entry.Artist) == wantArtist && entryAlbum == wantAlbum {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept
	if !removed {
		return nil
	}
	return s.save()
}

// Entries returns a sorted copy of the stored entries for listing.
func (s *Store) Entries() []Entry {
	out := append([]Entry(nil), s.entries...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Artist != out[j].Artist {
			return out[i].Artist < out[j].Artist
		}
		return out[i].Album < out[j].Album
	})
	return out
}

// contains checks for an exact entry, unlike IsIgnored which lets an
// artist-level entry cover album checks.
func (s *Store) contains(artist, album string) bool {
	wantArtist := textutil.NormalizeArtist(artist)
	wantAlbum := ""
	if album != "" {
		wantAlbum = textutil.NormalizeAlbumTitle(album)
	}
	for _, entry := range s.entries {
		entryAlbum := ""
		if entry.Album != "" {
			entryAlbum = textutil.NormalizeAlbumTitle(entry.Album)
		}
		if textutil.NormalizeArtist(entry.Artist) == wantArtist && entryAlbum == wantAlbum {
			return true
		}
	}
	return false
}

func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ignore directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(fileFormat{Entries: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ignore file: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write ignore file: %w", err)
	}
	return nil
}
