package pipeline

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/rbright/rutranscript/internal/phonetics"
	"github.com/rbright/rutranscript/internal/text"
)

// RenderOptions controls how sections are flattened for output.
type RenderOptions struct {
	StressPlace  text.StressPlace
	StressSymbol string
	SaveStresses bool
	SaveSpaces   bool
	SavePauses   bool
}

// Symbols that already mean something in the transcription.
var conflictingStressSymbols = []string{".", "_", "-", "ʲ", "ᶣ", "ʷ", "ˠ", "ː", "͡"}

// ConflictingStressSymbol reports a stress symbol that clashes with IPA
// diacritics or structural markers.
func ConflictingStressSymbol(symbol string) bool {
	return slices.Contains(conflictingStressSymbols, symbol)
}

// Render flattens sections into one symbol list. The prestress marker is
// always dropped; stress and word boundary markers only survive when asked
// for. With SavePauses each pause is inserted after the section it follows.
func Render(sections [][]string, pauses text.PauseMap, opts RenderOptions) []string {
	escaped := map[string]bool{phonetics.Prestress: true}
	if !opts.SaveStresses {
		escaped[phonetics.Stress] = true
	}
	if !opts.SaveSpaces {
		escaped[phonetics.Space] = true
	}

	items := slices.Clone(sections)
	if opts.SavePauses {
		for idx, ordinal := range pauses.Ordinals() {
			at := min(idx+ordinal, len(items))
			items = slices.Insert(items, at, []string{string(pauses[ordinal])})
		}
	}

	var out []string
	for _, item := range items {
		for _, symbol := range item {
			if symbol == "" || escaped[symbol] {
				continue
			}
			out = append(out, symbol)
		}
	}

	if opts.StressPlace == text.StressBefore {
		out = text.MoveStressBefore(out)
	}
	if opts.SaveStresses && opts.StressSymbol != "" && opts.StressSymbol != phonetics.Stress {
		for i, symbol := range out {
			out[i] = strings.ReplaceAll(symbol, phonetics.Stress, opts.StressSymbol)
		}
	}
	return out
}

func warnStressSymbol(logger *slog.Logger, symbol string) {
	if ConflictingStressSymbol(symbol) {
		logger.Warn("stress symbol conflicts with transcription signs", "symbol", symbol, "conflicting", strings.Join(conflictingStressSymbols, " "))
	}
}

// Render is the package Render with a warning for a conflicting stress
// symbol.
func (t *Transcriber) Render(sections [][]string, pauses text.PauseMap, opts RenderOptions) []string {
	warnStressSymbol(t.logger, opts.StressSymbol)
	return Render(sections, pauses, opts)
}
