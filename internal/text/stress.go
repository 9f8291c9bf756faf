package text

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed data/stresses.txt
var stressesData string

// StressPlace says on which side of the stressed vowel "+" stands.
type StressPlace string

const (
	StressAfter  StressPlace = "after"
	StressBefore StressPlace = "before"
)

// ParseStressPlace validates a configured stress place. Empty means after.
func ParseStressPlace(raw string) (StressPlace, error) {
	switch StressPlace(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StressAfter:
		return StressAfter, nil
	case StressBefore:
		return StressBefore, nil
	default:
		return "", fmt.Errorf("invalid stress place %q (expected after|before)", raw)
	}
}

const vowelLetters = "аеёиоуыэюя"

func isVowelLetter(r rune) bool {
	return strings.ContainsRune(vowelLetters, r)
}

// StressToAfter moves the first "+" of a token written with the before
// placement behind its vowel.
func StressToAfter(token string) string {
	runes := []rune(token)
	idx := -1
	for i, r := range runes {
		if r == '+' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return token
	}
	rest := append(append([]rune{}, runes[:idx]...), runes[idx+1:]...)
	at := min(idx+1, len(rest))
	out := append(append(append([]rune{}, rest[:at]...), '+'), rest[at:]...)
	return string(out)
}

// RemoveExtraStresses keeps only the first "+" of a token.
func RemoveExtraStresses(token string) string {
	first := strings.Index(token, "+")
	if first < 0 {
		return token
	}
	return token[:first+1] + strings.ReplaceAll(token[first+1:], "+", "")
}

// MoveStressBefore swaps every "+" with the symbol before it.
func MoveStressBefore(symbols []string) []string {
	out := make([]string, len(symbols))
	copy(out, symbols)
	for i, symbol := range symbols {
		if symbol == "+" && i > 0 {
			out[i], out[i-1] = out[i-1], out[i]
		}
	}
	return out
}

// MoveStressBeforeText is MoveStressBefore over the runes of s.
func MoveStressBeforeText(s string) string {
	runes := []rune(s)
	symbols := make([]string, len(runes))
	for i, r := range runes {
		symbols[i] = string(r)
	}
	return strings.Join(MoveStressBefore(symbols), "")
}

// StressLexicon places stress on words that arrive without it.
type StressLexicon struct {
	words map[string]string
}

// DefaultStressLexicon returns the embedded lexicon.
func DefaultStressLexicon() *StressLexicon {
	lex := &StressLexicon{words: map[string]string{}}
	if err := lex.Load(strings.NewReader(stressesData)); err != nil {
		panic(fmt.Sprintf("text: embedded stress lexicon is invalid: %v", err))
	}
	return lex
}

// Load merges one stressed word per line.
func (l *StressLexicon) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Count(line, "+") != 1 || strings.ContainsAny(line, " \t") {
			return fmt.Errorf("stress lexicon line %d: expected one word with a single \"+\"", lineNo)
		}
		l.words[strings.ReplaceAll(line, "+", "")] = line
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stress lexicon: %w", err)
	}
	return nil
}

// Len reports the number of entries.
func (l *StressLexicon) Len() int { return len(l.words) }

// Place returns token with its stress in the after placement. Tokens
// that already carry "+" are only converted from place. Unstressed tokens
// are looked up, then stressed on ё or on their only vowel; anything else
// is returned unchanged.
func (l *StressLexicon) Place(token string, place StressPlace) string {
	if strings.Contains(token, "+") {
		if place == StressBefore {
			return StressToAfter(token)
		}
		return token
	}
	if l != nil {
		if stressed, ok := l.words[token]; ok {
			return stressed
		}
	}
	if i := strings.IndexRune(token, 'ё'); i >= 0 {
		end := i + len("ё")
		return token[:end] + "+" + token[end:]
	}

	vowels, last := 0, -1
	for i, r := range token {
		if isVowelLetter(r) {
			vowels++
			last = i + len(string(r))
		}
	}
	if vowels != 1 {
		return token
	}
	return token[:last] + "+" + token[last:]
}
