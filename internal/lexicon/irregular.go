package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

//go:embed data/irregular.tsv
var irregularData string

// Irregular is a pronunciation lexicon keyed by stem, so inflected forms
// of an entry share its pronunciation stem.
type Irregular struct {
	stemmer Stemmer
	words   map[string]string
	// stems maps an entry stem to the matching prefix of its pronunciation.
	stems map[string]string
}

// NewIrregular returns an empty lexicon.
func NewIrregular(stemmer Stemmer) *Irregular {
	return &Irregular{stemmer: stemmer, words: map[string]string{}, stems: map[string]string{}}
}

// DefaultIrregular returns the embedded lexicon.
func DefaultIrregular(stemmer Stemmer) *Irregular {
	lex := NewIrregular(stemmer)
	if err := lex.Load(strings.NewReader(irregularData)); err != nil {
		panic(fmt.Sprintf("lexicon: embedded irregular lexicon is invalid: %v", err))
	}
	return lex
}

// Load merges tab-separated "word<TAB>pronunciation" lines. Later entries
// override earlier ones.
func (l *Irregular) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, pron, ok := strings.Cut(line, "\t")
		word, pron = strings.TrimSpace(word), strings.TrimSpace(pron)
		if !ok || word == "" || pron == "" {
			return fmt.Errorf("irregular line %d: expected \"word<TAB>pronunciation\"", lineNo)
		}
		l.Add(word, pron)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read irregular lexicon: %w", err)
	}
	return nil
}

// Add registers one entry.
func (l *Irregular) Add(word, pron string) {
	stem := l.stemmer.Stem(word)
	if !strings.HasPrefix(word, stem) {
		stem = word
	}
	ending := strings.TrimPrefix(word, stem)
	pstem := strings.TrimSuffix(pron, ending)
	if pstem == pron && ending != "" {
		runes := []rune(pron)
		pstem = string(runes[:max(0, len(runes)-utf8.RuneCountInString(ending))])
	}
	l.words[word] = pron
	l.stems[stem] = pstem
}

// Len reports the number of stems.
func (l *Irregular) Len() int { return len(l.stems) }

// Lookup returns the pronunciation spelling of a plain word.
func (l *Irregular) Lookup(word string) (string, bool) {
	if pron, ok := l.words[word]; ok {
		return pron, true
	}
	stem := l.stemmer.Stem(word)
	pstem, ok := l.stems[stem]
	if !ok || !strings.HasPrefix(word, stem) {
		return "", false
	}
	return pstem + strings.TrimPrefix(word, stem), true
}
