package rules

import (
	"fmt"
	"strings"

	"github.com/rbright/rutranscript/internal/phonetics"
	"github.com/rbright/rutranscript/internal/translit"
)

// AlignmentError reports a phoneme section whose letter units do not line
// up one to one.
type AlignmentError struct {
	Phonemes int
	Letters  int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("phoneme/letter alignment mismatch: %d phonemes, %d letter units", e.Phonemes, e.Letters)
}

// Jotize restores the glide and consonant softness carried by iotated vowel
// letters, soft and hard signs. letters holds one letter unit per phoneme.
func (r *Rules) Jotize(seq, letters []string) ([]string, error) {
	if len(seq) != len(letters) {
		return nil, &AlignmentError{Phonemes: len(seq), Letters: len(letters)}
	}

	out := make([]string, 0, len(seq)+4)
	// outIndex maps a seq position to its slot in out.
	outIndex := make([]int, len(seq))

	for i, current := range seq {
		if r.feature(current).IsStructural() {
			outIndex[i] = len(out)
			out = append(out, current)
			continue
		}

		// The previous sound may sit behind one structural symbol.
		prev := i - 1
		if prev >= 0 && r.feature(seq[prev]).IsStructural() {
			prev--
		}
		prevLetter, prevSymbol := "", ""
		if prev >= 0 {
			prevLetter, prevSymbol = letters[prev], seq[prev]
		}
		prevFeature := r.feature(prevSymbol)
		wordInitial := i == 0 || seq[i-1] == phonetics.Space

		soften := func() {
			if soft := r.softened(prevSymbol); soft != "" {
				out[outIndex[prev]] = soft
			}
		}

		switch letter := letters[i]; letter {
		case "о":
			if !wordInitial && strings.HasSuffix(prevLetter, "ь") && at(letters, i+1) == phonetics.Stress {
				out = append(out, "j")
			}
		case "е", "ё", "ю", "я":
			switch {
			case wordInitial:
				out = append(out, "j")
			case translit.EndsWithSign(prevLetter):
				soften()
				out = append(out, "j")
			case isVowelUnit(prevLetter):
				out = append(out, "j")
			case prevFeature.IsConsonant():
				soften()
			}
		case "и":
			switch {
			case i > 0 && seq[i-1] == phonetics.Space && prevFeature.IsConsonant():
				current = "ɨ"
			case wordInitial:
			case translit.EndsWithSign(prevLetter):
				out = append(out, "j")
			case prevFeature.IsConsonant():
				soften()
			}
		}

		outIndex[i] = len(out)
		out = append(out, current)
	}
	return out, nil
}

func isVowelUnit(unit string) bool {
	runes := []rune(unit)
	return len(runes) == 1 && translit.IsVowelLetter(runes[0])
}
