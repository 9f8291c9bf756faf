package translit

import (
	"slices"
	"strings"

	"github.com/rbright/rutranscript/internal/phonetics"
)

// Iotated vowel letters are written without their glide here; the
// jotization pass restores it from letter context.
var broad = map[string]string{
	"а": "a", "е": "e", "ё": "o", "и": "i", "о": "o",
	"у": "u", "ы": "ɨ", "э": "e", "ю": "u", "я": "a",

	"б": "b", "в": "v", "г": "ɡ", "д": "d", "ж": "ʐ", "з": "z",
	"й": "j", "к": "k", "л": "l", "м": "m", "н": "n", "п": "p",
	"р": "r", "с": "s", "т": "t", "ф": "f", "х": "x", "ц": "t͡s",
	"ч": "t͡ɕ", "ш": "ʂ", "щ": "ɕː",

	"дж": "d͡ʒ",
}

// Transliterate maps a stressed word to broad phoneme symbols. Stress
// markers pass through; a soft sign appends the bare palatalization mark
// and a hard sign is silent. Characters outside the alphabet pass through
// unchanged so the tokenizer can report them.
func Transliterate(word string) string {
	var b strings.Builder
	for _, unit := range Letters(word) {
		b.WriteString(Unit(unit))
	}
	return b.String()
}

// Unit returns the broad symbol for one letter unit.
func Unit(unit string) string {
	switch {
	case strings.HasSuffix(unit, string(softSign)) && unit != string(softSign):
		return Unit(strings.TrimSuffix(unit, string(softSign))) + phonetics.Palatalized
	case strings.HasSuffix(unit, string(hardSign)) && unit != string(hardSign):
		return Unit(strings.TrimSuffix(unit, string(hardSign)))
	case unit == string(softSign) || unit == string(hardSign):
		return ""
	}
	if symbol, ok := broad[unit]; ok {
		return symbol
	}
	return unit
}

// Symbols lists every broad symbol Transliterate can emit for a letter.
func Symbols() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, symbol := range broad {
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	slices.Sort(out)
	return out
}
