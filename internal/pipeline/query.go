package pipeline

import (
	"context"
	"maps"

	"github.com/rbright/rutranscript/internal/text"
)

// Query is one transcription call from an outer surface: the text plus
// how the answer should be rendered.
type Query struct {
	Request
	Render RenderOptions
}

// Answer carries every output layer of a query. Errors lists the failed
// sections; their symbols are missing from the layers.
type Answer struct {
	Allophones   []string `json:"allophones" yaml:"allophones"`
	Phonemes     []string `json:"phonemes" yaml:"phonemes"`
	StressedText string   `json:"stressed_text" yaml:"stressed_text"`
	Errors       []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Answer transcribes q and renders all layers with q.Render.
func (t *Transcriber) Answer(ctx context.Context, q Query) Answer {
	out := t.Transcribe(ctx, q.Request)

	symbol := q.Render.StressSymbol
	if symbol == "" {
		symbol = "+"
	}
	place := q.Render.StressPlace
	if place == "" {
		place = text.StressAfter
	}

	answer := Answer{
		Allophones:   out.Allophones(q.Render),
		Phonemes:     Render(out.Batch.Phonemes(), out.Document.Pauses, q.Render),
		StressedText: out.Document.StressedText(place, symbol),
	}
	for _, sectionErr := range out.Batch.Errors {
		answer.Errors = append(answer.Errors, sectionErr.Error())
	}
	return answer
}

// Overrides are per-call settings sent by a client. Empty strings and
// false flags keep the defaults; Replacements are layered over the default
// map, the client winning on a shared key.
type Overrides struct {
	StressPlace  string
	StressSymbol string
	SaveStresses bool
	SaveSpaces   bool
	SavePauses   bool
	Replacements map[string]string
}

// With returns a copy of q for the given texts with o applied. The stress
// place governs both the input texts and the rendered output.
func (q Query) With(plain, stressed string, o Overrides) (Query, error) {
	q.Text = plain
	q.StressedText = stressed
	if o.StressPlace != "" {
		place, err := text.ParseStressPlace(o.StressPlace)
		if err != nil {
			return Query{}, err
		}
		q.StressPlace = place
		q.Render.StressPlace = place
	}
	if o.StressSymbol != "" {
		q.Render.StressSymbol = o.StressSymbol
	}
	q.Render.SaveStresses = q.Render.SaveStresses || o.SaveStresses
	q.Render.SaveSpaces = q.Render.SaveSpaces || o.SaveSpaces
	q.Render.SavePauses = q.Render.SavePauses || o.SavePauses
	if len(o.Replacements) > 0 {
		merged := maps.Clone(q.Replacements)
		if merged == nil {
			merged = make(map[string]string, len(o.Replacements))
		}
		maps.Copy(merged, o.Replacements)
		q.Replacements = merged
	}
	return q, nil
}
