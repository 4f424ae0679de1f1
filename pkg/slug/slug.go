// Package slug derives URL-safe fragment identifiers from heading text.
package slug

import (
	"html"
	"regexp"
	"strings"
)

// DefaultMaxLength is the identifier length used when no explicit limit is given.
const DefaultMaxLength = 64

var (
	// unsafeRunes covers whitespace, control characters, and the URL-hostile
	// punctuation set, plus the non-breaking space. Hyphens are the one
	// separator we keep, so they are deliberately absent here.
	unsafeRunes = regexp.MustCompile("[\\s\\x00-\\x1f &+$,:;=?@\"#{}|^~\\[\\]`%!'<>./()*\\\\]")
	hyphenRuns  = regexp.MustCompile(`-{2,}`)
)

// Generate converts heading text into a lower-cased, hyphen-delimited slug of
// at most maxLength runes. Non-positive maxLength falls back to
// DefaultMaxLength. The transformation is pure: identical inputs always yield
// identical output.
//
// Apostrophes are deleted rather than hyphenated so contractions collapse
// ("don't" becomes "dont"). Runes outside the unsafe set, including accented
// letters and emoji, pass through untouched apart from case folding. The
// result may be empty when the input carries no safe runes at all.
func Generate(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	s := html.UnescapeString(text)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "'", "")
	s = unsafeRunes.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = truncateRunes(s, maxLength)
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}

// truncateRunes cuts s after maxLength runes. Counting runes rather than bytes
// keeps multi-byte headings from being split mid-character.
func truncateRunes(s string, maxLength int) string {
	if maxLength >= len(s) {
		return s
	}
	runes := []rune(s)
	if maxLength >= len(runes) {
		return s
	}
	return string(runes[:maxLength])
}
