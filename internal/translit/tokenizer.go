package translit

import (
	"fmt"

	"github.com/rbright/rutranscript/internal/phonetics"
)

const (
	// DefaultMaxAttempts bounds failed prefix lookups per section.
	DefaultMaxAttempts = 10000
	window             = 4
)

// TokenizationError reports a position no inventory symbol matches, or a
// section that exhausted the attempt budget.
type TokenizationError struct {
	Token    string
	Position int
	Reason   string
}

func (e *TokenizationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("tokenize %q at %d: %s", e.Token, e.Position, e.Reason)
	}
	return fmt.Sprintf("tokenize %q at %d: no matching symbol", e.Token, e.Position)
}

// Tokenizer splits broad transcriptions into inventory symbols by greedy
// longest match.
type Tokenizer struct {
	symbols     map[string]struct{}
	maxAttempts int
}

// NewTokenizer registers every sound of table plus the bare palatalization
// mark. maxAttempts <= 0 selects DefaultMaxAttempts.
func NewTokenizer(table *phonetics.Table, maxAttempts int) *Tokenizer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	symbols := map[string]struct{}{phonetics.Palatalized: {}}
	for _, symbol := range table.Symbols() {
		symbols[symbol] = struct{}{}
	}
	return &Tokenizer{symbols: symbols, maxAttempts: maxAttempts}
}

// Tokenize joins the transliterated tokens with the word boundary marker
// and splits the result into symbols.
func (t *Tokenizer) Tokenize(tokens []string) ([]string, error) {
	var out []string
	attempts := 0
	for ti, token := range tokens {
		if ti > 0 {
			out = append(out, phonetics.Space)
		}
		runes := []rune(token)
		pos := 0
		for pos < len(runes) {
			r := string(runes[pos])
			if r == phonetics.Stress || r == phonetics.Prestress || r == phonetics.Space {
				out = append(out, r)
				pos++
				continue
			}

			matched := 0
			for n := min(window, len(runes)-pos); n > 0; n-- {
				if _, ok := t.symbols[string(runes[pos:pos+n])]; ok {
					matched = n
					break
				}
				attempts++
				if attempts > t.maxAttempts {
					return nil, &TokenizationError{Token: token, Position: pos, Reason: "attempt budget exhausted"}
				}
			}
			if matched == 0 {
				return nil, &TokenizationError{Token: token, Position: pos}
			}
			out = append(out, string(runes[pos:pos+matched]))
			pos += matched
		}
	}
	return cleanup(out), nil
}

// cleanup drops empty and bare palatalization symbols. Every letter unit
// transliterates to exactly one broad symbol, so no adjacent pair needs
// folding.
func cleanup(symbols []string) []string {
	out := symbols[:0]
	for _, s := range symbols {
		if s == "" || s == phonetics.Palatalized {
			continue
		}
		out = append(out, s)
	}
	return out
}
