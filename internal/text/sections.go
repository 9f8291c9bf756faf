package text

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rbright/rutranscript/internal/phonetics"
)

// Pause is a prosodic break rendered between sections.
type Pause string

const (
	ShortPause Pause = phonetics.ShortPause
	LongPause  Pause = phonetics.LongPause
)

// PauseMap maps the 1-based ordinal of each punctuation mark to its pause.
type PauseMap map[int]Pause

// Ordinals returns the keys in ascending order.
func (m PauseMap) Ordinals() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

const (
	pauseMarks     = ".,:;()—|?!…"
	longPauseMarks = ".?!…"
)

var (
	sectionBreak    = regexp.MustCompile(`[.?!,:;()—…]`)
	wordPunctuation = regexp.MustCompile(`[,.\\|/;:()*&^%$#@?!\[\]{}"—…«»]`)
)

// Pauses records one pause per punctuation mark in s.
func Pauses(s string) PauseMap {
	pauses := PauseMap{}
	ordinal := 1
	for _, r := range s {
		if !strings.ContainsRune(pauseMarks, r) {
			continue
		}
		if strings.ContainsRune(longPauseMarks, r) {
			pauses[ordinal] = LongPause
		} else {
			pauses[ordinal] = ShortPause
		}
		ordinal++
	}
	return pauses
}

// Sections splits normalized text at clause punctuation and returns the
// words of each non-empty section with punctuation stripped.
func Sections(s string) [][]string {
	var sections [][]string
	for _, part := range sectionBreak.Split(s, -1) {
		var words []string
		for _, word := range strings.Fields(part) {
			if word = wordPunctuation.ReplaceAllString(word, ""); word != "" {
				words = append(words, word)
			}
		}
		if len(words) > 0 {
			sections = append(sections, words)
		}
	}
	return sections
}

// StripHyphens removes hyphens from a compound token. A token with more
// than one stress keeps only the first.
func StripHyphens(token string) string {
	if strings.Count(token, "+") > 1 {
		token = RemoveExtraStresses(token)
	}
	return strings.ReplaceAll(token, "-", "")
}
