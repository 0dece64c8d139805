package extract

import "strings"

// normalizeSpace collapses runs of whitespace into single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstGroup runs a find against text and returns the given capture group,
// or "" when the pattern does not match.
func firstGroup(match []string, group int) string {
	if len(match) <= group {
		return ""
	}
	return strings.TrimSpace(match[group])
}
