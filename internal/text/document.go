package text

import (
	"strings"
)

var plainWord = strings.NewReplacer("-", "", "+", "")

// Section is one clause of prepared text.
type Section struct {
	// Words are the plain orthographic words.
	Words []string
	// Display keeps the stressed words as the user will see them.
	Display []string
	// Stressed are the engine inputs: after placement, hyphens removed.
	Stressed []string
}

// Document is text split into sections with the pauses between them.
type Document struct {
	Sections []Section
	Pauses   PauseMap
}

// PrepareOptions controls Prepare.
type PrepareOptions struct {
	StressPlace  StressPlace
	Replacements map[string]string
	Lexicon      *StressLexicon
}

// Prepare normalizes plain and stressed text and aligns them section by
// section. An empty stressed text reuses the plain text. When a stressed
// section does not have as many words as the plain one, the plain words
// are used for it.
func Prepare(plain, stressed string, opts PrepareOptions) Document {
	plain = ApplyReplacements(Normalize(plain), opts.Replacements)
	if strings.TrimSpace(stressed) == "" {
		stressed = plain
	} else {
		stressed = ApplyReplacements(Normalize(stressed), opts.Replacements)
	}

	plainSections := Sections(plain)
	stressedSections := Sections(stressed)

	doc := Document{Pauses: Pauses(plain)}
	for i, words := range plainSections {
		source := words
		if i < len(stressedSections) && len(stressedSections[i]) == len(words) {
			source = stressedSections[i]
		}

		section := Section{
			Words:    make([]string, len(words)),
			Display:  make([]string, len(words)),
			Stressed: make([]string, len(words)),
		}
		for j, word := range words {
			placed := opts.Lexicon.Place(source[j], opts.StressPlace)
			section.Words[j] = plainWord.Replace(word)
			section.Display[j] = placed
			section.Stressed[j] = StripHyphens(placed)
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

// StressedText joins the display words of every section, optionally
// moving stress before the vowel and swapping the stress symbol.
func (d Document) StressedText(place StressPlace, symbol string) string {
	parts := make([]string, 0, len(d.Sections))
	for _, section := range d.Sections {
		joined := strings.Join(section.Display, " ")
		if place == StressBefore {
			joined = MoveStressBeforeText(joined)
		}
		parts = append(parts, joined)
	}
	out := strings.Join(parts, " ")
	if symbol != "" && symbol != "+" {
		out = strings.ReplaceAll(out, "+", symbol)
	}
	return out
}
