package catalog

import (
	"errors"
	"strings"

	"tonearm/internal/textutil"
)

// TrackRef identifies a track within an edition for membership comparison
// during a merge. It carries no other metadata.
type TrackRef struct {
	Position        int
	NormalizedTitle string
}

// Edition is one catalog-listed release of an album. Records are produced by
// the remote catalog and never mutated here.
type Edition struct {
	ID          string
	RawTitle    string
	Year        int
	TrackList   []TrackRef
	BitDepth    int
	SampleRate  float64
	TotalTracks int
}

// NewEdition validates the fields an edition record must carry.
func NewEdition(id, rawTitle string, year, totalTracks, bitDepth int, sampleRate float64) (Edition, error) {
	if strings.TrimSpace(id) == "" {
		return Edition{}, errors.New("edition id must not be empty")
	}
	if strings.TrimSpace(rawTitle) == "" {
		return Edition{}, errors.New("edition title must not be empty")
	}
	if totalTracks < 0 {
		return Edition{}, errors.New("edition track count must not be negative")
	}
	return Edition{
		ID:          id,
		RawTitle:    rawTitle,
		Year:        year,
		TotalTracks: totalTracks,
		BitDepth:    bitDepth,
		SampleRate:  sampleRate,
	}, nil
}

// NewTrackRef builds a TrackRef with the title canonicalized for comparison.
func NewTrackRef(position int, rawTitle string) TrackRef {
	return TrackRef{
		Position:        position,
		NormalizedTitle: textutil.NormalizeTrackTitle(rawTitle),
	}
}

// AlbumGroup collects the editions that share one normalized title.
// Groups are non-empty by construction.
type AlbumGroup struct {
	NormalizedTitle string
	Editions        []Edition
}

// ResolvedAlbum is the single authoritative description produced from a
// group. Year always comes from the standard edition; the audio source is
// the hi-fi edition.
type ResolvedAlbum struct {
	NormalizedTitle      string
	Year                 int
	AudioSourceEditionID string
	FinalTrackList       []TrackRef

	// TracksTrimmed counts bonus tracks dropped during the merge.
	TracksTrimmed int
	// FallbackUsed reports that no hi-fi track matched the standard list
	// and the full hi-fi track list was kept instead.
	FallbackUsed bool
}
