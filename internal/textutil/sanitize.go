package textutil

import "strings"

// pathSegmentReplacer replaces filesystem-unsafe characters in folder name
// segments with safe alternatives.
var pathSegmentReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizePathSegment replaces filesystem-unsafe characters in a single
// artist or album folder segment. Slashes, backslashes, colons, and asterisks
// become dashes; other unsafe characters are removed. The result is trimmed
// of leading/trailing whitespace.
func SanitizePathSegment(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(pathSegmentReplacer.Replace(name))
}
