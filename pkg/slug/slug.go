// Package slug normalizes collection handles for URLs.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	dashes       = regexp.MustCompile(`-+`)
)

// Make lowercases and trims value, strips everything except letters, digits,
// whitespace and dashes, turns whitespace runs into dashes and collapses
// repeated dashes. "  Summer Sale!! 2024 " becomes "summer-sale-2024".
func Make(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	return dashes.ReplaceAllString(s, "-")
}
