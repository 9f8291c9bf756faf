package pipeline

import (
	"context"
	"log/slog"

	"github.com/rbright/rutranscript/internal/lexicon"
	"github.com/rbright/rutranscript/internal/text"
)

// Request is raw text to transcribe. StressedText, when set, supplies the
// stress of Text word by word; StressPlace says how both texts mark it.
type Request struct {
	Text         string
	StressedText string
	StressPlace  text.StressPlace
	Replacements map[string]string
}

// Output is a transcribed document. Failed sections render empty.
type Output struct {
	Document text.Document
	Batch    Batch

	logger *slog.Logger
}

// Transcribe prepares req and processes its sections.
func (t *Transcriber) Transcribe(ctx context.Context, req Request) Output {
	doc := text.Prepare(req.Text, req.StressedText, text.PrepareOptions{
		StressPlace:  req.StressPlace,
		Replacements: req.Replacements,
		Lexicon:      t.stresses,
	})
	t.logger.Debug("prepared text", "sections", len(doc.Sections), "pauses", len(doc.Pauses))

	return Output{
		Document: doc,
		Batch:    t.Process(ctx, Sections(doc)),
		logger:   t.logger,
	}
}

// Sections builds engine sections from a prepared document.
func Sections(doc text.Document) []Section {
	sections := make([]Section, len(doc.Sections))
	for i, sec := range doc.Sections {
		tokens := make([]lexicon.Token, len(sec.Words))
		for j, word := range sec.Words {
			tokens[j] = lexicon.Token{Word: word, Stressed: sec.Stressed[j]}
		}
		sections[i] = Section{Tokens: tokens, Clitics: text.FindClitics(sec.Words)}
	}
	return sections
}

// Err reports the section failures, if any.
func (o Output) Err() error { return o.Batch.Err() }

// Allophones renders the allophone layer.
func (o Output) Allophones(opts RenderOptions) []string {
	o.warn(opts.StressSymbol)
	return Render(o.Batch.Allophones(), o.Document.Pauses, opts)
}

// Phonemes renders the phoneme layer.
func (o Output) Phonemes(opts RenderOptions) []string {
	o.warn(opts.StressSymbol)
	return Render(o.Batch.Phonemes(), o.Document.Pauses, opts)
}

// StressedText returns the input text with its resolved stress.
func (o Output) StressedText(place text.StressPlace, symbol string) string {
	o.warn(symbol)
	return o.Document.StressedText(place, symbol)
}

func (o Output) warn(symbol string) {
	if o.logger != nil {
		warnStressSymbol(o.logger, symbol)
	}
}
