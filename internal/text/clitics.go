package text

import (
	"strings"
	"unicode/utf8"

	"github.com/rbright/rutranscript/internal/rules"
)

var (
	// Prepositions, conjunctions and particles that lean on the next word.
	proclitics = setOf(
		"в", "во", "на", "с", "со", "к", "ко", "о", "об", "обо", "от", "ото",
		"до", "по", "за", "из", "изо", "у", "без", "безо", "под", "подо",
		"над", "надо", "при", "про", "через", "для", "и", "а", "но", "да",
		"или", "не", "ни",
	)
	// Particles that lean on the previous word.
	enclitics = setOf("же", "ж", "ли", "ль", "бы", "б")
	// Prepositions that also work as adverbs and keep their own stress.
	adverbialPrepositions = setOf("после", "кругом", "мимо", "около", "вокруг", "напротив", "поперёк")
)

// A proclitic does not attach to a word that starts with one of these.
const iotatedLetters = "еёюяи"

// FindClitics returns the clitic attachments of one section's plain words.
func FindClitics(words []string) []rules.CliticRelation {
	var relations []rules.CliticRelation
	for i, word := range words {
		word = strings.ReplaceAll(word, "+", "")
		if _, ok := adverbialPrepositions[word]; ok {
			continue
		}
		if _, ok := enclitics[word]; ok {
			if i > 0 {
				relations = append(relations, rules.CliticRelation{Main: i - 1, Clitic: i})
			}
			continue
		}
		if _, ok := proclitics[word]; !ok {
			continue
		}
		switch {
		case i+1 < len(words) && !startsWithIotated(words[i+1]):
			relations = append(relations, rules.CliticRelation{Main: i + 1, Clitic: i})
		case i > 0:
			relations = append(relations, rules.CliticRelation{Main: i - 1, Clitic: i})
		}
	}
	return relations
}

func startsWithIotated(word string) bool {
	first, size := utf8.DecodeRuneInString(word)
	return size > 0 && strings.ContainsRune(iotatedLetters, first)
}

func setOf(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
