package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsValidSlug reports whether s is a valid URL slug (lowercase letters,
// digits and hyphens only).
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	hyphenRuns      = regexp.MustCompile(`-+`)
	stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GenerateSlug derives a slug from a product name: lowercases, strips
// accents (Ecógrafo -> ecografo), replaces whitespace with hyphens and
// collapses repeats.
func GenerateSlug(name string) string {
	s := strings.ToLower(name)
	if stripped, _, err := transform.String(stripDiacritics, s); err == nil {
		s = stripped
	}
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
