package domain

import (
	"strings"
)

// FoldWord is the key used for case-insensitive French word lookups:
// surrounding whitespace is trimmed and the word is lowercased.
// Diacritics, hyphens, and apostrophes are preserved.
func FoldWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
