// Package translit turns stressed Cyrillic words into broad phoneme
// symbols and splits symbol strings into inventory units.
package translit

import (
	"strings"

	"github.com/rbright/rutranscript/internal/phonetics"
)

const (
	softSign = 'ь'
	hardSign = 'ъ'
)

var vowelLetters = map[rune]struct{}{
	'а': {}, 'е': {}, 'ё': {}, 'и': {}, 'о': {}, 'у': {}, 'ы': {}, 'э': {}, 'ю': {}, 'я': {},
}

// IsVowelLetter reports a Russian vowel letter.
func IsVowelLetter(r rune) bool {
	_, ok := vowelLetters[r]
	return ok
}

// Letters splits a stressed word into letter units: "дж" is one unit, a
// soft or hard sign joins the letter before it, and stress markers are
// units of their own. Each unit yields exactly one broad symbol.
func Letters(word string) []string {
	var units []string
	for _, r := range word {
		n := len(units)
		switch {
		case (r == softSign || r == hardSign) && n > 0 && !isMarker(units[n-1]):
			units[n-1] += string(r)
		case r == 'ж' && n > 0 && units[n-1] == "д":
			units[n-1] = "дж"
		default:
			units = append(units, string(r))
		}
	}
	return units
}

// SectionLetters joins the letter units of several words with the word
// boundary marker, mirroring the tokenizer output layout.
func SectionLetters(words []string) []string {
	var out []string
	for i, word := range words {
		if i > 0 {
			out = append(out, phonetics.Space)
		}
		out = append(out, Letters(word)...)
	}
	return out
}

// EndsWithSign reports whether a unit carries ь or ъ.
func EndsWithSign(unit string) bool {
	return strings.HasSuffix(unit, string(softSign)) || strings.HasSuffix(unit, string(hardSign))
}

func isMarker(unit string) bool {
	return unit == phonetics.Stress || unit == phonetics.Prestress || unit == phonetics.Space
}
