// Package quality flags machine translations that look untranslated.
package quality

import (
	"strings"
	"unicode"
)

// Tunable constants without a formal derivation. Both false positives
// (rejecting a legitimately short or cognate-heavy valid translation) and
// false negatives are possible; the check is advisory.
const (
	partialOverlapThreshold = 0.4
	minTokenLen             = 3
)

// IsPartialTranslation reports whether translated looks like a partial or
// failed translation of original. Low-resource target languages often come
// back from the provider largely unchanged; a strict equality check misses
// partial word substitution, so a token-overlap ratio is used instead.
// An original with no qualifying tokens is never flagged.
func IsPartialTranslation(original, translated string) bool {
	originalTokens := tokenize(original)
	if len(originalTokens) == 0 {
		return false
	}

	translatedTokens := tokenize(translated)
	translatedSet := make(map[string]struct{}, len(translatedTokens))
	for _, tok := range translatedTokens {
		translatedSet[tok] = struct{}{}
	}

	matched := 0
	for _, tok := range originalTokens {
		if _, ok := translatedSet[tok]; ok {
			matched++
		}
	}

	return float64(matched)/float64(len(originalTokens)) > partialOverlapThreshold
}

// tokenize lowercases and splits on whitespace, commas, periods, hyphens and
// parentheses, dropping tokens shorter than minTokenLen runes.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		switch r {
		case ',', '.', '-', '(', ')':
			return true
		}
		return unicode.IsSpace(r)
	})

	var tokens []string
	for _, f := range fields {
		if len([]rune(f)) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
