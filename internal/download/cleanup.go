package download

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tonearm/internal/catalog"
	"tonearm/internal/textutil"
)

// trackFilePattern extracts the title from filenames like
// "01 - Track Title" or "03. Track Title".
var trackFilePattern = regexp.MustCompile(`^\d+[\s.\-]+(.+)$`)

// RemoveBonusTracks deletes audio files in albumPath whose titles do not
// appear in keep. Used after downloading a merged hi-fi edition so the
// shelved album matches the standard track list. Returns the removed
// filenames. An empty keep list removes nothing.
func RemoveBonusTracks(albumPath string, keep []catalog.TrackRef) ([]string, error) {
	if len(keep) == 0 {
		return nil, nil
	}
	wanted := make(map[string]struct{}, len(keep))
	for _, track := range keep {
		wanted[track.NormalizedTitle] = struct{}{}
	}

	entries, err := os.ReadDir(albumPath)
	if err != nil {
		return nil, fmt.Errorf("read album folder: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".flac") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		title := stem
		if matches := trackFilePattern.FindStringSubmatch(stem); matches != nil {
			title = matches[1]
		}
		if _, ok := wanted[textutil.NormalizeTrackTitle(title)]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(albumPath, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove bonus track %s: %w", entry.Name(), err)
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}
