// Package text prepares raw Russian text for transcription: normalization,
// section and pause extraction, stress placement and clitic attachment.
package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const combiningAcute = "\u0301"

// Normalize composes the text to NFC, turns combining acute stress marks
// into "+", lower-cases it, folds whitespace and newlines to single spaces,
// and replaces a free-standing hyphen with an em dash.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = FromAcute(s)
	s = cases.Lower(language.Russian).String(s)

	fields := strings.Fields(s)
	for i, field := range fields {
		if field == "-" {
			fields[i] = "—"
		}
	}
	return strings.Join(fields, " ")
}

// FromAcute replaces combining acute accents with the "+" stress marker.
// The acute follows its vowel, so the result uses the after placement.
func FromAcute(s string) string {
	return strings.ReplaceAll(s, combiningAcute, "+")
}

// ToAcute replaces "+" markers placed after vowels with combining acutes.
func ToAcute(s string) string {
	return norm.NFC.String(strings.ReplaceAll(s, "+", combiningAcute))
}

// ApplyReplacements swaps whole words found in replacements. Keys are
// matched after normalization.
func ApplyReplacements(s string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return s
	}
	fields := strings.Fields(s)
	for i, field := range fields {
		if to, ok := replacements[field]; ok {
			fields[i] = to
		}
	}
	return strings.Join(fields, " ")
}
