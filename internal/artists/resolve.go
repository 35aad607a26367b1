package artists

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"tonearm/internal/textutil"
)

// MatchResult scores one index entry against a query.
type MatchResult struct {
	Entry IndexEntry
	Score int
}

// Resolution is the outcome of one resolve call. Exactly one of Match and
// Suggestions is populated: Match when the best score clears the threshold,
// Suggestions otherwise.
type Resolution struct {
	Match       *MatchResult
	Suggestions []MatchResult
}

// Confident reports whether the resolution carries a match at or above the
// threshold.
func (r Resolution) Confident() bool { return r.Match != nil }

// Resolve scores query against every index entry and returns either a
// confident match or up to maxSuggestions ranked near misses. Scoring is
// deterministic: score ties break alphabetically by canonical name.
func Resolve(query string, index []IndexEntry, threshold, maxSuggestions int) Resolution {
	normalized := textutil.NormalizeArtist(query)

	results := make([]MatchResult, 0, len(index))
	for _, entry := range index {
		results = append(results, MatchResult{
			Entry: entry,
			Score: Score(normalized, entry.NormalizedName),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.CanonicalName < results[j].Entry.CanonicalName
	})

	if len(results) > 0 && results[0].Score >= threshold {
		match := results[0]
		return Resolution{Match: &match}
	}

	if maxSuggestions < 1 {
		maxSuggestions = 1
	}
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}
	return Resolution{Suggestions: results}
}

// Score rates the similarity of two normalized artist names on a 0..100
// scale. The score is the best of four measures: exact equality (100),
// substring containment (90), edit-distance similarity on the plain and
// token-sorted forms, and cosine similarity of the token sets. Token
// sorting makes the comparison insensitive to word order.
func Score(query, candidate string) int {
	if query == "" || candidate == "" {
		return 0
	}
	if query == candidate {
		return 100
	}

	best := 0
	if strings.Contains(candidate, query) || strings.Contains(query, candidate) {
		best = 90
	}

	if s := editSimilarity(query, candidate); s > best {
		best = s
	}

	sortedQuery := textutil.SortedTokens(query)
	sortedCandidate := textutil.SortedTokens(candidate)
	if sortedQuery == sortedCandidate {
		return 100
	}
	if s := editSimilarity(sortedQuery, sortedCandidate); s > best {
		best = s
	}

	cosine := int(textutil.NewFingerprint(query).Cosine(textutil.NewFingerprint(candidate)) * 100)
	if cosine > best {
		best = cosine
	}
	return best
}

// editSimilarity converts Levenshtein distance to a 0..100 similarity.
func editSimilarity(a, b string) int {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	if distance >= longest {
		return 0
	}
	return (longest - distance) * 100 / longest
}
