package rules

import (
	"strings"

	"github.com/rbright/rutranscript/internal/phonetics"
)

const (
	labialized     = "ʷ"
	labializedSoft = "ᶣ"
	velarized      = "ˠ"
)

// Articulate marks the consonant before a rounded vowel as labialized and
// the consonant before a velarizing vowel as velarized. A mark is applied
// only when the resulting symbol exists in the table.
func (r *Rules) Articulate(seq []string) []string {
	out := clone(seq)
	for i := 1; i < len(seq); i++ {
		vowel := r.feature(seq[i])
		prev := seq[i-1]
		pf := r.feature(prev)
		if !vowel.IsVowel() || !pf.IsConsonant() {
			continue
		}

		var marked string
		switch vowel.Rounding {
		case phonetics.RoundingRound:
			if strings.Contains(prev, labialized) || strings.Contains(prev, labializedSoft) {
				continue
			}
			switch {
			case strings.Contains(prev, phonetics.Palatalized):
				marked = strings.Replace(prev, phonetics.Palatalized, "", 1) + labializedSoft
			case pf.Palatalization == phonetics.AlwaysSoft:
				marked = prev + labializedSoft
			default:
				marked = prev + labialized
			}
		case phonetics.RoundingVelarize:
			if strings.Contains(prev, velarized) || pf.Palatalization.IsSoft() {
				continue
			}
			marked = prev + velarized
		default:
			continue
		}

		if r.table.Has(marked) {
			out[i-1] = marked
		}
	}
	return out
}
