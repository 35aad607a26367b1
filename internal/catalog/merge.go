package catalog

import (
	"strings"

	"tonearm/internal/textutil"
)

// Group buckets editions by normalized title. Group order follows the
// first appearance of each title in the input; edition order within a
// group follows input order.
func Group(editions []Edition) []AlbumGroup {
	groups := make([]AlbumGroup, 0, len(editions))
	byTitle := make(map[string]int, len(editions))
	for _, edition := range editions {
		key := textutil.NormalizeAlbumTitle(edition.RawTitle)
		if idx, ok := byTitle[key]; ok {
			groups[idx].Editions = append(groups[idx].Editions, edition)
			continue
		}
		byTitle[key] = len(groups)
		groups = append(groups, AlbumGroup{
			NormalizedTitle: key,
			Editions:        []Edition{edition},
		})
	}
	return groups
}

// SelectStandard picks the earliest edition among the group's candidates.
// Year ties break to the fewest tracks, then to input order. Censored
// editions are never candidates when an uncensored one exists, so callers
// that fetch or display per-edition data agree with Resolve.
func SelectStandard(group AlbumGroup) Edition {
	candidates := dropCleanVersions(group.Editions)
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Year < best.Year {
			best = candidate
			continue
		}
		if candidate.Year == best.Year && candidate.TotalTracks < best.TotalTracks {
			best = candidate
		}
	}
	return best
}

// SelectHiFi picks the highest-fidelity edition among the group's
// candidates. Bit depth ties break to the highest sample rate, then to
// input order. Censored editions are excluded as in SelectStandard.
func SelectHiFi(group AlbumGroup) Edition {
	candidates := dropCleanVersions(group.Editions)
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.BitDepth > best.BitDepth {
			best = candidate
			continue
		}
		if candidate.BitDepth == best.BitDepth && candidate.SampleRate > best.SampleRate {
			best = candidate
		}
	}
	return best
}

// Resolve merges a group into one album: the standard edition pins the
// year, the hi-fi edition supplies the audio, and hi-fi tracks absent from
// the standard track list are dropped. When no titles match at all the
// full hi-fi list is kept so the album is never emptied.
func Resolve(group AlbumGroup) ResolvedAlbum {
	standard := SelectStandard(group)
	hifi := SelectHiFi(group)

	resolved := ResolvedAlbum{
		NormalizedTitle:      group.NormalizedTitle,
		Year:                 standard.Year,
		AudioSourceEditionID: hifi.ID,
	}

	if hifi.ID == standard.ID {
		resolved.FinalTrackList = append([]TrackRef(nil), standard.TrackList...)
		return resolved
	}

	wanted := make(map[string]struct{}, len(standard.TrackList))
	for _, track := range standard.TrackList {
		wanted[track.NormalizedTitle] = struct{}{}
	}

	kept := make([]TrackRef, 0, len(hifi.TrackList))
	for _, track := range hifi.TrackList {
		if _, ok := wanted[track.NormalizedTitle]; ok {
			kept = append(kept, track)
		}
	}

	if len(kept) == 0 && len(hifi.TrackList) > 0 {
		resolved.FinalTrackList = append([]TrackRef(nil), hifi.TrackList...)
		resolved.FallbackUsed = true
		return resolved
	}

	resolved.FinalTrackList = kept
	resolved.TracksTrimmed = len(hifi.TrackList) - len(kept)
	return resolved
}

// dropCleanVersions removes censored editions when an uncensored one
// exists in the group. A group of only clean editions is kept as is.
func dropCleanVersions(editions []Edition) []Edition {
	kept := make([]Edition, 0, len(editions))
	for _, edition := range editions {
		if !strings.Contains(strings.ToLower(edition.RawTitle), "(clean)") {
			kept = append(kept, edition)
		}
	}
	if len(kept) == 0 {
		return editions
	}
	return kept
}

// ResolveAll groups and resolves a full edition listing in one pass.
func ResolveAll(editions []Edition) []ResolvedAlbum {
	groups := Group(editions)
	albums := make([]ResolvedAlbum, 0, len(groups))
	for _, group := range groups {
		albums = append(albums, Resolve(group))
	}
	return albums
}
