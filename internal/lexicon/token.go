// Package lexicon rewrites stressed orthographic words before
// transliteration: irregular pronunciations, regular spelling exceptions,
// and the morphology lookups those rewrites depend on.
package lexicon

import (
	"strings"
	"unicode/utf8"

	"github.com/rbright/rutranscript/internal/phonetics"
)

// Token is one orthographic word. Stressed repeats Word with the stress
// marker after the stressed vowel; it may be empty when no stress is known.
type Token struct {
	Word     string
	Stressed string
}

// NewToken builds a token from its stressed spelling.
func NewToken(stressed string) Token {
	return Token{Word: Plain(stressed), Stressed: stressed}
}

// Form returns the stressed spelling when present, else the plain word.
func (t Token) Form() string {
	if t.Stressed != "" {
		return t.Stressed
	}
	return t.Word
}

// HasStress reports whether the token carries a stress marker.
func (t Token) HasStress() bool {
	return strings.Contains(t.Stressed, phonetics.Stress)
}

// Plain strips stress markers.
func Plain(s string) string {
	return strings.ReplaceAll(s, phonetics.Stress, "")
}

var vowels = "аеёиоуыэюя"

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

// stressOffset returns the rune offset of the first stress marker in the
// plain spelling, or -1.
func stressOffset(stressed string) int {
	i := strings.Index(stressed, phonetics.Stress)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(stressed[:i])
}

// vowelOrdinal counts vowels before the first stress marker.
func vowelOrdinal(stressed string) int {
	n := 0
	for _, r := range stressed {
		if string(r) == phonetics.Stress {
			return n
		}
		if isVowel(r) {
			n++
		}
	}
	return -1
}

// insertStress puts the marker at a rune offset, clamped to the word.
func insertStress(word string, offset int) string {
	runes := []rune(word)
	offset = max(0, min(offset, len(runes)))
	return string(runes[:offset]) + phonetics.Stress + string(runes[offset:])
}

// restress moves the stress of original onto replacement. The marker
// follows the same vowel ordinal when both spellings have enough vowels,
// and keeps the same rune offset otherwise.
func restress(original, replacement string) string {
	ordinal := vowelOrdinal(original)
	if ordinal > 0 {
		seen := 0
		for i, r := range []rune(replacement) {
			if isVowel(r) {
				seen++
				if seen == ordinal {
					return insertStress(replacement, i+1)
				}
			}
		}
	}
	return insertStress(replacement, stressOffset(original))
}
