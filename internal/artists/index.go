package artists

import "tonearm/internal/textutil"

// IndexEntry pairs an artist's canonical display name with its normalized
// form. Entries are derived once per library scan and live only for the
// duration of one resolution call.
type IndexEntry struct {
	CanonicalName  string
	NormalizedName string
}

// BuildIndex derives index entries from canonical artist names, dropping
// names that normalize to nothing.
func BuildIndex(names []string) []IndexEntry {
	entries := make([]IndexEntry, 0, len(names))
	for _, name := range names {
		normalized := textutil.NormalizeArtist(name)
		if normalized == "" {
			continue
		}
		entries = append(entries, IndexEntry{
			CanonicalName:  name,
			NormalizedName: normalized,
		})
	}
	return entries
}
