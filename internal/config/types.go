// Package config resolves, parses, validates, and defaults rutranscript configuration.
package config

import "github.com/rbright/rutranscript/internal/text"

// Config is the fully materialized runtime configuration used by rutranscript.
type Config struct {
	Stress       StressConfig
	Output       OutputConfig
	Pipeline     PipelineConfig
	Lexicon      LexiconConfig
	Server       ServerConfig
	Log          LogConfig
	Replacements map[string]string
}

// StressConfig controls how stress is read from input and written to output.
type StressConfig struct {
	Place  text.StressPlace
	Symbol string
}

// OutputConfig controls rendering of transcriptions.
type OutputConfig struct {
	Format       string
	SaveStresses bool
	SaveSpaces   bool
	SavePauses   bool
}

// PipelineConfig controls the transformation engine.
type PipelineConfig struct {
	Workers             int
	MaxTokenizeAttempts int
}

// LexiconConfig lists user lexicon files merged over the embedded ones.
type LexiconConfig struct {
	IrregularPaths []string
	StressPaths    []string
}

// ServerConfig controls the network surfaces started by `serve`.
type ServerConfig struct {
	GRPC   string
	Socket string
}

// LogConfig controls the JSONL runtime log.
type LogConfig struct {
	Level string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
