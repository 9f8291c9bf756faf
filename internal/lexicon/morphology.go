package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/kljensen/snowball/russian"
)

// Stemmer returns the morphological stem of a plain word.
type Stemmer interface {
	Stem(word string) string
}

// Lemmatizer returns the dictionary form of a plain word.
type Lemmatizer interface {
	Lemma(word string) string
}

// StemmerFunc adapts a function to Stemmer.
type StemmerFunc func(string) string

func (f StemmerFunc) Stem(word string) string { return f(word) }

// SnowballStemmer stems with the Russian Snowball algorithm.
type SnowballStemmer struct{}

func (SnowballStemmer) Stem(word string) string {
	return russian.Stem(word, false)
}

//go:embed data/lemmas.txt
var lemmaData string

// LemmaTable maps inflected forms to lemmas. Unknown words are their own
// lemma.
type LemmaTable struct {
	forms map[string]string
}

// DefaultLemmas returns the embedded lemma table.
func DefaultLemmas() *LemmaTable {
	table, err := LoadLemmas(strings.NewReader(lemmaData))
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded lemma table is invalid: %v", err))
	}
	return table
}

// LoadLemmas parses "lemma: form, form" lines.
func LoadLemmas(r io.Reader) (*LemmaTable, error) {
	table := &LemmaTable{forms: map[string]string{}}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lemma, forms, ok := strings.Cut(line, ":")
		lemma = strings.TrimSpace(lemma)
		if !ok || lemma == "" {
			return nil, fmt.Errorf("lemmas line %d: expected \"lemma: form, form\"", lineNo)
		}
		for _, form := range strings.Split(forms, ",") {
			if form = strings.TrimSpace(form); form != "" {
				table.forms[form] = lemma
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lemmas: %w", err)
	}
	return table, nil
}

func (t *LemmaTable) Lemma(word string) string {
	if lemma, ok := t.forms[word]; ok {
		return lemma
	}
	return word
}
