package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/rbright/rutranscript/internal/phonetics"
)

const long = "ː"

var (
	// Lemmas whose consonants never take assimilative softness.
	palatalizationExceptions = map[string]struct{}{
		"сосиска": {}, "злить": {}, "после": {}, "ёлка": {}, "день": {},
		"транскрипция": {}, "джаз": {}, "неуклюжий": {}, "шахтёр": {},
	}
	// Consonants whose geminate collapses into a long symbol.
	geminable = "ʂbpfkstrlmndz"
	// Consonants that stay hard before a soft rhotic.
	hardBeforeRhotic = "tzk"

	softRhotics = map[string]struct{}{"rʲ": {}, "rʲː": {}, "r̥ʲ": {}}

	fricativeGLemmas   = map[string]struct{}{"ага": {}, "ого": {}, "угу": {}, "господь": {}, "господи": {}, "бог": {}}
	fricativeXPrefixes = map[string]struct{}{"ах": {}, "эх": {}, "ох": {}, "ух": {}}
)

// MergeSibilants collapses сч, зч, жч and ж before any voiceless
// consonant other than s into a single long ɕː.
func (r *Rules) MergeSibilants(seq []string) []string {
	out := make([]string, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		cur, next := seq[i], at(seq, i+1)
		nextFeature := r.feature(next)
		merge := next == "t͡ɕ" && (cur == "s" || cur == "z" || cur == "ʐ")
		if cur == "ʐ" && next != "s" && nextFeature.IsConsonant() && nextFeature.IsVoiceless() {
			merge = true
		}
		if merge {
			out = append(out, "ɕː")
			i++
			continue
		}
		out = append(out, cur)
	}
	return out
}

// LongZh produces the long voiced ʑː from жж, зж, and from ɕː before a
// voiced obstruent.
func (r *Rules) LongZh(seq []string) []string {
	out := make([]string, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		cur, next := seq[i], at(seq, i+1)
		if next == "ʐ" && (cur == "ʐ" || cur == "z") {
			out = append(out, "ʑː")
			i++
			continue
		}
		if cur == "ɕː" {
			if f := r.feature(next); f.IsConsonant() && f.IsVoiced() && f.Manner != phonetics.MannerNasal {
				cur = "ʑː"
			}
		}
		out = append(out, cur)
	}
	return out
}

// Palatalize spreads softness backward from a soft consonant to a hard
// one. stressed and lemmas carry one entry per word run of seq.
func (r *Rules) Palatalize(seq, stressed, lemmas []string) []string {
	out := clone(seq)
	run := 0
	for i, cur := range seq {
		if cur == phonetics.Space {
			run++
			continue
		}
		lemma := at(lemmas, run)
		if _, ok := palatalizationExceptions[lemma]; ok {
			continue
		}
		if strings.Contains(at(stressed, run), "и+зм") {
			continue
		}

		j := r.nextSound(seq, i)
		if j >= len(seq) {
			continue
		}
		if r.blocksSoftness(cur, seq[j], lemma) {
			continue
		}
		if !r.feature(seq[j]).Palatalization.IsSoft() {
			continue
		}
		if soft := r.softened(cur); soft != "" {
			out[i] = soft
		}
	}
	return out
}

func (r *Rules) blocksSoftness(cur, next, lemma string) bool {
	cf, nf := r.feature(cur), r.feature(next)
	switch {
	case strings.Contains(next, "l"):
		return true
	case cf.Place == phonetics.PlaceDental && nf.Place == phonetics.PlaceLabiodental:
		return true
	case strings.ContainsAny(cur, "rɡ"):
		return true
	case startsWithAny(cur, hardBeforeRhotic) && isSoftRhotic(next):
		return true
	case cf.Place == phonetics.PlaceBilabial && nf.Place == phonetics.PlaceBilabial:
		return lemma != "лобби"
	case (cf.Place == phonetics.PlaceDental || cf.Place == phonetics.PlaceBilabial) && nf.Place == phonetics.PlaceVelar:
		return true
	}
	return false
}

func isSoftRhotic(symbol string) bool {
	_, ok := softRhotics[symbol]
	return ok
}

func startsWithAny(symbol, set string) bool {
	first, _ := utf8.DecodeRuneInString(symbol)
	return first != utf8.RuneError && strings.ContainsRune(set, first)
}

// NasalPlace turns m and n into the labiodental nasal before f and v.
func (r *Rules) NasalPlace(seq []string) []string {
	out := clone(seq)
	for i, cur := range seq {
		if r.feature(at(seq, i+1)).Place != phonetics.PlaceLabiodental {
			continue
		}
		switch cur {
		case "m", "n":
			out[i] = "ɱ"
		case "mʲ", "nʲ":
			out[i] = "ɱʲ"
		}
	}
	return out
}

// DevoiceRhotic devoices r before a voiceless consonant and at the end of
// the section.
func (r *Rules) DevoiceRhotic(seq []string) []string {
	out := clone(seq)
	for i, cur := range seq {
		if i < len(seq)-1 && !r.feature(seq[i+1]).IsVoiceless() {
			continue
		}
		switch cur {
		case "r":
			out[i] = "r̥"
		case "rʲ":
			out[i] = "r̥ʲ"
		}
	}
	return out
}

// VoiceAffricate voices ц before a voiced consonant.
func (r *Rules) VoiceAffricate(seq []string) []string {
	out := clone(seq)
	for i, cur := range seq {
		if cur != "t͡s" {
			continue
		}
		if f := r.feature(at(seq, i+1)); f.IsConsonant() && f.IsVoiced() {
			out[i] = "d̻͡z̪"
		}
	}
	return out
}

// FricativeG rewrites the stop ɡ (or the x of an interjection before a
// voiced sound) to the fricative γ. It runs on transliterated tokens
// aligned with their plain words and lemmas.
func (r *Rules) FricativeG(translit, words, lemmas []string) []string {
	out := clone(translit)
	for i, token := range translit {
		if _, ok := fricativeGLemmas[at(lemmas, i)]; ok {
			out[i] = strings.Replace(token, "ɡ", "γ", 1)
			continue
		}
		if _, ok := fricativeXPrefixes[at(words, i)]; !ok || i+1 >= len(translit) {
			continue
		}
		first, _ := utf8.DecodeRuneInString(translit[i+1])
		if r.feature(string(first)).IsVoiced() {
			out[i] = strings.Replace(token, "x", "γ", 1)
		}
	}
	return out
}

// Geminate collapses two identical consonants into one long symbol. A
// single structural symbol between them is kept after the long consonant.
func (r *Rules) Geminate(seq []string) []string {
	out := make([]string, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		cur := seq[i]
		j := i + 1
		if j < len(seq) && r.feature(seq[j]).IsStructural() {
			j++
		}
		if j < len(seq) && seq[j] == cur && r.canGeminate(cur) {
			out = append(out, cur+long)
			if j == i+2 {
				out = append(out, seq[i+1])
			}
			i = j
			continue
		}
		out = append(out, cur)
	}
	return out
}

func (r *Rules) canGeminate(symbol string) bool {
	if strings.Contains(symbol, long) || !startsWithAny(symbol, geminable) {
		return false
	}
	return r.feature(symbol).IsConsonant() && r.table.Has(symbol+long)
}

// Devoice replaces a word-final voiced obstruent with its voiceless pair
// unless the next word starts with a voiced sound or a vowel.
func (r *Rules) Devoice(seq []string) []string {
	out := clone(seq)
	for i, cur := range seq {
		if i+1 < len(seq) && seq[i+1] != phonetics.Space {
			continue
		}
		if i+2 < len(seq) {
			if after := r.feature(seq[i+2]); after.IsVoiced() || after.IsVowel() {
				continue
			}
		}
		if f := r.feature(cur); f.IsConsonant() && f.IsVoiced() && f.Pair != "" {
			out[i] = f.Pair
		}
	}
	return out
}

// FirstJot turns a section-initial glide into the fricative ʝ.
func (r *Rules) FirstJot(seq []string) []string {
	out := clone(seq)
	if len(out) > 0 && out[0] == "j" {
		out[0] = "ʝ"
	}
	return out
}
