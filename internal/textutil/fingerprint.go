package textutil

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Fingerprint represents a term-frequency vector for name similarity
// comparison. Token order is not preserved, which makes the comparison
// insensitive to word transposition ("Black Keys The" vs "The Black Keys").
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint creates a fingerprint from the provided text.
// Returns nil if the text produces no tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		tokens: counts,
		norm:   math.Sqrt(norm),
	}
}

// Tokenize splits text into lowercase tokens. Unlike document tokenizers no
// minimum length is enforced; artist names are often short ("U2", "REM").
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// TokenCount returns the number of unique tokens in the fingerprint.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

// Cosine scores token overlap between two names in [0, 1]. It is 1 for
// names sharing all tokens in any order ("Black Keys The" vs "The Black
// Keys") and 0 for disjoint names or when either side had no tokens, so a
// blank query can never fuzzily match a catalog artist.
func (f *Fingerprint) Cosine(other *Fingerprint) float64 {
	if f == nil || other == nil || f.norm == 0 || other.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range f.tokens {
		if weight, ok := other.tokens[token]; ok {
			dot += count * weight
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (f.norm * other.norm)
}

// SortedTokens returns the text's tokens in lexical order, joined by single
// spaces. Comparing sorted token strings gives an order-insensitive view of
// a name.
func SortedTokens(text string) string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return ""
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
