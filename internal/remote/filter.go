package remote

import (
	"regexp"
	"strings"
)

// compilationOrLiveDefs match album titles that are compilations, box
// sets, or live recordings. Titles are lowercased before matching.
var compilationOrLiveDefs = []string{
	`\bgreatest\s+hits\b`,
	`\bbest\s+of\b`,
	`\bessential\b`,
	`\bcollection\b`,
	`\banthology\b`,
	`\bretrospective\b`,
	`\bcompilation\b`,
	`\bcomplete\s+recordings\b`,
	`\bdefinitive\b`,
	`\bultimate\b`,
	`\bsingles\b`,
	`\bhits\b`,
	`\bfavorites\b`,
	`\brarities\b`,
	`\bouttakes\b`,
	`\bbox\s*set\b`,
	`\bbox\b.*\bset\b`,
	`\bthe\s+.+\s+box\s*$`,
	`\blive\b`,
	`\bin\s+concert\b`,
	`\bunplugged\b`,
	`\bacoustic\s+live\b`,
	`\blive\s+at\b`,
	`\blive\s+from\b`,
	`\blive\s+in\b`,
}

var compilationOrLivePatterns []*regexp.Regexp

func init() {
	for _, def := range compilationOrLiveDefs {
		compilationOrLivePatterns = append(compilationOrLivePatterns, regexp.MustCompile(def))
	}
}

// IsCompilationOrLive reports whether an album title marks a compilation
// or live recording that discovery should skip.
func IsCompilationOrLive(title string) bool {
	lowered := strings.ToLower(title)
	for _, pattern := range compilationOrLivePatterns {
		if pattern.MatchString(lowered) {
			return true
		}
	}
	return false
}
