package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Union Live Menu!" -> "union-live-menu"
func GenerateSlug(input string) string {
	s := strings.ToLower(input)

	// Remove invalid chars (keep a-z, 0-9, space, hyphen)
	reg := regexp.MustCompile("[^a-z0-9 -]+")
	s = reg.ReplaceAllString(s, "")

	s = strings.ReplaceAll(s, " ", "-")

	// Collapse multiple hyphens
	reg2 := regexp.MustCompile("-+")
	s = reg2.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// NaturalComparer returns a case-insensitive comparison that orders digit
// runs by value, so "Item 9" sorts before "Item 10".
// The returned func is not safe for concurrent use.
func NaturalComparer() func(a, b string) int {
	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	return c.CompareString
}

// NormalizeQuery lower-cases and trims a search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
