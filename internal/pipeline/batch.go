package pipeline

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SectionError ties a failure to the section that produced it.
type SectionError struct {
	Index int
	Err   error
}

func (e SectionError) Error() string {
	return fmt.Sprintf("section %d: %v", e.Index, e.Err)
}

func (e SectionError) Unwrap() error { return e.Err }

// Batch is the outcome of Process. Results has one entry per input
// section; a failed section leaves a zero Result and an entry in Errors.
type Batch struct {
	Results []Result
	Errors  []SectionError
}

// Err joins the section errors, or returns nil.
func (b Batch) Err() error {
	if len(b.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(b.Errors))
	for _, e := range b.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Phonemes returns the phoneme layer of every result in order.
func (b Batch) Phonemes() [][]string {
	out := make([][]string, len(b.Results))
	for i, r := range b.Results {
		out[i] = r.Phonemes
	}
	return out
}

// Allophones returns the allophone layer of every result in order.
func (b Batch) Allophones() [][]string {
	out := make([][]string, len(b.Results))
	for i, r := range b.Results {
		out[i] = r.Allophones
	}
	return out
}

// Process transforms sections on a bounded worker pool. Results keep input
// order and a failing section never stops its siblings. Once ctx is done no
// new section is scheduled; sections already running finish.
func (t *Transcriber) Process(ctx context.Context, sections []Section) Batch {
	results := make([]Result, len(sections))
	errs := make([]error, len(sections))

	var g errgroup.Group
	g.SetLimit(t.workers)
	for i := range sections {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(sections); j++ {
				errs[j] = err
			}
			break
		}
		g.Go(func() error {
			results[i], errs[i] = t.Transform(sections[i])
			return nil
		})
	}
	_ = g.Wait()

	batch := Batch{Results: results}
	for i, err := range errs {
		if err == nil {
			continue
		}
		t.logger.Warn("section failed", "section", i, "error", err)
		batch.Errors = append(batch.Errors, SectionError{Index: i, Err: err})
	}
	return batch
}
