package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform decomposes text and removes combining marks, stripping
// diacritics without touching base letters.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// collapsePattern matches runs of whitespace and punctuation that normalize to
// a single space.
var collapsePattern = regexp.MustCompile(`[\s\p{P}\p{S}]+`)

// albumMarkerPatterns strip edition qualifiers from album titles. Input is
// already lowercased when these run. Built from albumMarkerDefs at init time.
var albumMarkerPatterns []*regexp.Regexp

// albumMarkerDefs is the single source of truth for album edition markers:
// parenthetical and bracketed qualifiers plus bare trailing markers.
var albumMarkerDefs = []string{
	// Parenthetical qualifiers
	`\s*\([^)]*deluxe[^)]*\)`,
	`\s*\([^)]*remaster[^)]*\)`,
	`\s*\([^)]*expanded[^)]*\)`,
	`\s*\([^)]*anniversary[^)]*\)`,
	`\s*\([^)]*special[^)]*\)`,
	`\s*\([^)]*edition[^)]*\)`,
	`\s*\([^)]*version[^)]*\)`,
	`\s*\([^)]*bonus[^)]*\)`,
	`\s*\([^)]*release[^)]*\)`,
	`\s*\(explicit\)`,
	`\s*\(clean\)`,
	`\s*\(stereo\)`,
	`\s*\(mono\)`,
	// Bracketed qualifiers, including bare year brackets
	`\s*\[[^\]]*deluxe[^\]]*\]`,
	`\s*\[[^\]]*remaster[^\]]*\]`,
	`\s*\[[^\]]*edition[^\]]*\]`,
	`\s*\[\d{4}[^\]]*\]`,
	// Trailing markers without brackets
	`\s*deluxe\s*edition\s*$`,
	`\s*remastered\s*$`,
	`\s*-\s*remaster\s*$`,
}

// trackMarkerPatterns strip remaster and channel annotations from track titles.
var trackMarkerPatterns []*regexp.Regexp

var trackMarkerDefs = []string{
	`\s*\(remaster[^)]*\)`,
	`\s*\(mono[^)]*\)`,
	`\s*\(stereo[^)]*\)`,
	`\s*\(\d{4}[^)]*\)`,
}

func init() {
	for _, def := range albumMarkerDefs {
		albumMarkerPatterns = append(albumMarkerPatterns, regexp.MustCompile(def))
	}
	for _, def := range trackMarkerDefs {
		trackMarkerPatterns = append(trackMarkerPatterns, regexp.MustCompile(def))
	}
}

// FoldDiacritics removes combining marks from text, so "Björk" becomes "Bjork".
// Returns the input unchanged if the transform fails.
func FoldDiacritics(text string) string {
	folded, _, err := transform.String(foldTransform, text)
	if err != nil {
		return text
	}
	return folded
}

// NormalizeArtist canonicalizes an artist name for comparison: leading "The"
// is stripped, diacritics folded, everything lowercased, and punctuation runs
// collapsed to single spaces. Article stripping iterates to a fixed point so
// the function is idempotent.
func NormalizeArtist(name string) string {
	s := strings.ToLower(FoldDiacritics(name))
	s = strings.TrimSpace(collapsePattern.ReplaceAllString(s, " "))
	for strings.HasPrefix(s, "the ") {
		s = strings.TrimSpace(s[len("the "):])
	}
	return s
}

// NormalizeAlbumTitle canonicalizes an album title for grouping: diacritics
// folded, lowercased, edition qualifiers and year brackets removed, "&"
// rewritten to "and", and punctuation runs collapsed to single spaces.
// Collapsing can expose a bare trailing marker ("deluxe/edition" becomes
// "deluxe edition"), so the marker pass repeats until the text is stable.
func NormalizeAlbumTitle(title string) string {
	s := strings.ToLower(FoldDiacritics(title))
	for {
		next := s
		for _, pattern := range albumMarkerPatterns {
			next = pattern.ReplaceAllString(next, "")
		}
		next = strings.ReplaceAll(next, "&", "and")
		next = strings.TrimSpace(collapsePattern.ReplaceAllString(next, " "))
		if next == s {
			return next
		}
		s = next
	}
}

// NormalizeTrackTitle canonicalizes a track title for membership comparison
// during edition merging. Remaster, channel, and year annotations are removed.
func NormalizeTrackTitle(title string) string {
	s := strings.ToLower(FoldDiacritics(title))
	for _, pattern := range trackMarkerPatterns {
		s = pattern.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(collapsePattern.ReplaceAllString(s, " "))
}
