// Package rules implements the ordered phonological rewrite passes that turn
// a broad phoneme section into its allophone sequence. Every pass returns a
// new slice and leaves its input untouched.
package rules

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rbright/rutranscript/internal/phonetics"
)

// Rules binds the passes to a feature table.
type Rules struct {
	table  *phonetics.Table
	logger *slog.Logger
}

// New returns passes over table. A nil logger discards.
func New(table *phonetics.Table, logger *slog.Logger) *Rules {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Rules{table: table, logger: logger}
}

// Table returns the feature table the passes read.
func (r *Rules) Table() *phonetics.Table { return r.table }

func (r *Rules) feature(symbol string) phonetics.Feature {
	return r.table.Lookup(symbol)
}

// at returns seq[i], or the empty edge symbol outside the slice.
func at(seq []string, i int) string {
	if i < 0 || i >= len(seq) {
		return ""
	}
	return seq[i]
}

// nextSound returns the index of the first non-structural symbol after i,
// or len(seq).
func (r *Rules) nextSound(seq []string, i int) int {
	j := i + 1
	for j < len(seq) && r.feature(seq[j]).IsStructural() {
		j++
	}
	return j
}

// softened returns the palatalized form of a plain consonant, or "" when
// the consonant cannot take one.
func (r *Rules) softened(symbol string) string {
	f := r.feature(symbol)
	if !f.IsConsonant() || f.Palatalization.IsAlways() || strings.Contains(symbol, phonetics.Palatalized) {
		return ""
	}
	soft := symbol + phonetics.Palatalized
	if !r.table.Has(soft) {
		return ""
	}
	return soft
}

func clone(seq []string) []string {
	out := make([]string, len(seq))
	copy(out, seq)
	return out
}
