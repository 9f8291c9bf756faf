package rules

import (
	"github.com/rbright/rutranscript/internal/phonetics"
)

// position is a vowel's place relative to stress and word edges.
type position uint8

const (
	posStressed position = iota
	posPretonic
	posOther
	posFinal
	posInitial
)

// vowelContext is what a selection row may inspect.
type vowelContext struct {
	prev, next        string
	prevF, afterPrevF phonetics.Feature
	afterNext         string
	afterNextF        phonetics.Feature
	sectionLen        int
}

func (c vowelContext) hushingOrTs() bool { return phonetics.IsHushingOrTs(c.prev) }

func (c vowelContext) hissingOrTs() bool { return c.prevF.Hissing || phonetics.IsTs(c.prev) }

func (c vowelContext) hard() bool { return c.prevF.Palatalization.IsHard() }

func (c vowelContext) soft() bool { return c.prevF.Palatalization.IsSoft() }

// selection is one row of the decision table. A row with an empty result
// keeps the vowel unchanged.
type selection struct {
	when   func(vowelContext) bool
	result string
}

func always(vowelContext) bool { return true }

var (
	reducedAfterHard = []selection{
		{func(c vowelContext) bool { return c.hissingOrTs() || c.hard() || c.prevF.IsVowel() }, "ə"},
		{always, "ɪ."},
	}
	finalAfterHard = []selection{
		{vowelContext.hissingOrTs, "ə"},
		{vowelContext.hard, "ʌ"},
		{always, "æ."},
	}
	initialOpen = []selection{
		{func(c vowelContext) bool { return c.next == phonetics.Prestress }, "ɐ"},
		{func(c vowelContext) bool { return c.next != phonetics.Stress }, "ə"},
	}
	closeReduced = []selection{
		{vowelContext.hissingOrTs, "ə"},
		{always, "ᵻ"},
	}
	backReduced = []selection{
		{vowelContext.hard, "ʊ"},
		{always, "ᵿ"},
	}
)

func frontReduced(final string) []selection {
	return []selection{
		{vowelContext.hissingOrTs, "ə"},
		{vowelContext.hard, "ᵻ"},
		{always, final},
	}
}

// vowelTable maps a broad vowel and its position to ordered rows; the
// first matching row wins.
var vowelTable = map[string]map[position][]selection{
	"a": {
		posStressed: {
			{vowelContext.hushingOrTs, "ɐ."},
			{func(c vowelContext) bool { return c.hard() && c.afterNext == "l" }, "ɑ"},
			{vowelContext.hard, "a"},
			{always, "æ"},
		},
		posPretonic: {
			{vowelContext.hushingOrTs, "ᵻ"},
			{func(c vowelContext) bool { return c.prevF.IsConsonant() && c.hard() }, "ɐ"},
			{always, "ɪ"},
		},
		posOther:   reducedAfterHard,
		posFinal:   finalAfterHard,
		posInitial: initialOpen,
	},
	"o": {
		posStressed: {
			{vowelContext.hushingOrTs, "ɐ."},
			{func(c vowelContext) bool { return c.soft() || c.prevF.IsVowel() }, "ɵ"},
		},
		posPretonic: {
			{vowelContext.hushingOrTs, "ᵻ"},
			{vowelContext.hard, "ɐ"},
			{always, "ɪ"},
		},
		posOther:   reducedAfterHard,
		posFinal:   finalAfterHard,
		posInitial: initialOpen,
	},
	"e": {
		posStressed: {
			{vowelContext.hushingOrTs, "ᵻ"},
			{vowelContext.hard, "ɛ"},
		},
		posPretonic: frontReduced("ɪ"),
		posOther:    frontReduced("ɪ."),
		posFinal:    frontReduced("æ."),
		posInitial: {
			{func(c vowelContext) bool { return c.next == phonetics.Stress }, "ɛ"},
			{func(c vowelContext) bool { return c.next == phonetics.Prestress }, "ᵻ"},
			{always, "ɪ."},
		},
	},
	"u": {
		posStressed: {
			{vowelContext.soft, "ʉ"},
		},
		posOther: backReduced,
		posFinal: backReduced,
	},
	"ɨ": {
		posStressed: {
			{func(c vowelContext) bool {
				return c.prev == "l" && c.sectionLen > 4 && c.afterPrevF.Place.IsLabial()
			}, "ɯ̟ɨ̟"},
			{func(c vowelContext) bool {
				lingual := c.prevF.Place == phonetics.PlaceDental || c.prevF.Place == phonetics.PlacePalatinodental
				return lingual && c.afterNextF.Place == phonetics.PlaceVelar
			}, "ɨ̟"},
		},
		posOther: closeReduced,
		posFinal: closeReduced,
	},
	"i": {
		posOther: {
			{func(c vowelContext) bool { return !c.prevF.IsConsonant() }, ""},
			{vowelContext.hushingOrTs, "ɨ"},
			{func(c vowelContext) bool { return c.next != phonetics.Stress }, "ɪ"},
		},
	},
}

// SelectVowels replaces every broad vowel with its positional allophone.
func (r *Rules) SelectVowels(seq []string) []string {
	out := clone(seq)
	n := len(seq)
	for i, cur := range seq {
		rows, ok := vowelTable[cur]
		if !ok {
			continue
		}
		c := vowelContext{
			prev:       at(seq, i-1),
			next:       at(seq, i+1),
			prevF:      r.feature(at(seq, i-1)),
			afterPrevF: r.feature(at(seq, i-2)),
			afterNext:  at(seq, i+2),
			afterNextF: r.feature(at(seq, i+2)),
			sectionLen: n,
		}
		for _, row := range rows[classify(cur, i, c.prev, c.next, n)] {
			if row.when(c) {
				if row.result != "" {
					out[i] = row.result
				}
				break
			}
		}
	}
	return out
}

func classify(vowel string, i int, prev, next string, n int) position {
	last := i == n-1 || next == phonetics.Space
	switch vowel {
	case "i":
		return posOther
	case "u", "ɨ":
		switch {
		case last:
			return posFinal
		case next == phonetics.Stress:
			return posStressed
		default:
			return posOther
		}
	}
	switch {
	case last:
		return posFinal
	case i == 0 || prev == phonetics.Space:
		return posInitial
	case next == phonetics.Stress:
		return posStressed
	case next == phonetics.Prestress:
		return posPretonic
	default:
		return posOther
	}
}

// MarkPrestress inserts the prestress marker after the vowel nearest
// before each stressed vowel within the same word.
func (r *Rules) MarkPrestress(seq []string) []string {
	mark := make(map[int]bool)
	for k, symbol := range seq {
		if symbol != phonetics.Stress {
			continue
		}
		for j := k - 2; j >= 0 && seq[j] != phonetics.Space; j-- {
			if !r.feature(seq[j]).IsVowel() {
				continue
			}
			if at(seq, j+1) != phonetics.Stress {
				mark[j] = true
			}
			break
		}
	}

	out := make([]string, 0, len(seq)+len(mark))
	for i, symbol := range seq {
		out = append(out, symbol)
		if mark[i] {
			out = append(out, phonetics.Prestress)
		}
	}
	return out
}
