package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics decomposes s and drops combining marks (á→a, ñ→n, ü→u).
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldText is the comparison key for accent and case insensitive matching.
func FoldText(s string) string {
	return cases.Fold().String(StripDiacritics(s))
}

// ContainsFolded reports whether needle occurs in haystack after folding both.
func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(FoldText(haystack), FoldText(needle))
}
