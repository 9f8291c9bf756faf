package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"

	"github.com/rbright/rutranscript/internal/lexicon"
	"github.com/rbright/rutranscript/internal/phonetics"
	"github.com/rbright/rutranscript/internal/rules"
	"github.com/rbright/rutranscript/internal/text"
	"github.com/rbright/rutranscript/internal/translit"
)

// Section is one clause ready for transformation: stressed tokens plus the
// clitic attachments between them.
type Section struct {
	Tokens  []lexicon.Token
	Clitics []rules.CliticRelation
}

// Result holds both transcription layers of a section.
type Result struct {
	// Phonemes is the sequence after the phonemic rules, before allophone
	// selection. Stress and word boundary markers are kept.
	Phonemes []string
	// Allophones is the final sequence, with stress, prestress and word
	// boundary markers.
	Allophones []string
}

// Options configures a Transcriber. Zero values select the embedded data.
type Options struct {
	Workers             int
	MaxTokenizeAttempts int

	Table      *phonetics.Table
	Stemmer    lexicon.Stemmer
	Lemmatizer lexicon.Lemmatizer
	Irregular  *lexicon.Irregular
	Stresses   *text.StressLexicon
}

// Transcriber owns the read-only tables and runs the rewrite passes. It is
// safe for concurrent use.
type Transcriber struct {
	logger *slog.Logger

	workers    int
	table      *phonetics.Table
	rules      *rules.Rules
	tokenizer  *translit.Tokenizer
	resolver   *lexicon.Resolver
	lemmatizer lexicon.Lemmatizer
	irregular  *lexicon.Irregular
	stresses   *text.StressLexicon
}

// NewTranscriber fills missing options with defaults. A nil logger discards.
func NewTranscriber(opts Options, logger *slog.Logger) *Transcriber {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Table == nil {
		opts.Table = phonetics.Default()
	}
	if opts.Stemmer == nil {
		opts.Stemmer = lexicon.SnowballStemmer{}
	}
	if opts.Lemmatizer == nil {
		opts.Lemmatizer = lexicon.DefaultLemmas()
	}
	if opts.Irregular == nil {
		opts.Irregular = lexicon.DefaultIrregular(opts.Stemmer)
	}
	if opts.Stresses == nil {
		opts.Stresses = text.DefaultStressLexicon()
	}

	return &Transcriber{
		logger:     logger,
		workers:    opts.Workers,
		table:      opts.Table,
		rules:      rules.New(opts.Table, logger),
		tokenizer:  translit.NewTokenizer(opts.Table, opts.MaxTokenizeAttempts),
		resolver:   lexicon.NewResolver(opts.Irregular, opts.Stemmer),
		lemmatizer: opts.Lemmatizer,
		irregular:  opts.Irregular,
		stresses:   opts.Stresses,
	}
}

// Table returns the feature table the transcriber validates against.
func (t *Transcriber) Table() *phonetics.Table { return t.table }

// Stats counts the loaded table and lexicon entries.
type Stats struct {
	Symbols   int
	Irregular int
	Stresses  int
	Workers   int
}

func (t *Transcriber) Stats() Stats {
	return Stats{
		Symbols:   len(t.table.Symbols()),
		Irregular: t.irregular.Len(),
		Stresses:  t.stresses.Len(),
		Workers:   t.workers,
	}
}

// Transform runs every pass over one section. The same section always
// yields the same result.
func (t *Transcriber) Transform(section Section) (Result, error) {
	if len(section.Tokens) == 0 {
		return Result{}, nil
	}

	n := len(section.Tokens)
	words := make([]string, n)
	lemmas := make([]string, n)
	stressed := make([]string, n)
	broad := make([]string, n)
	for i, tok := range section.Tokens {
		resolved, err := t.resolver.Resolve(tok)
		if err != nil {
			return Result{}, fmt.Errorf("resolve %q: %w", tok.Word, err)
		}
		words[i] = tok.Word
		lemmas[i] = t.lemmatizer.Lemma(tok.Word)
		stressed[i] = resolved.Form()
		broad[i] = translit.Transliterate(stressed[i])
	}
	broad = t.rules.FricativeG(broad, words, lemmas)

	seq, err := t.tokenizer.Tokenize(broad)
	if err != nil {
		return Result{}, fmt.Errorf("tokenize section: %w", err)
	}
	seq, err = t.rules.Jotize(seq, translit.SectionLetters(stressed))
	if err != nil {
		return Result{}, fmt.Errorf("jotize section: %w", err)
	}

	seq = t.rules.MergeSibilants(seq)
	seq = t.rules.LongZh(seq)
	seq = t.rules.Palatalize(seq, stressed, lemmas)
	seq = t.rules.Geminate(seq)
	seq = t.rules.Devoice(seq)
	phonemes := slices.Clone(seq)

	seq = t.rules.FirstJot(seq)
	seq = t.rules.NasalPlace(seq)
	seq = t.rules.DevoiceRhotic(seq)
	seq = t.rules.VoiceAffricate(seq)
	seq = t.rules.MergeClitics(seq, section.Clitics)
	seq = t.rules.MarkPrestress(seq)
	seq = t.rules.SelectVowels(seq)
	seq = t.rules.Articulate(seq)

	for _, symbol := range seq {
		if _, err := t.table.Resolve(symbol); err != nil {
			return Result{}, fmt.Errorf("validate allophones: %w", err)
		}
	}

	return Result{Phonemes: phonemes, Allophones: seq}, nil
}
