package config

import (
	"github.com/rbright/rutranscript/internal/text"
	"github.com/rbright/rutranscript/internal/translit"
)

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Stress: StressConfig{Place: text.StressAfter, Symbol: "+"},
		Output: OutputConfig{Format: "text"},
		Pipeline: PipelineConfig{
			Workers:             0,
			MaxTokenizeAttempts: translit.DefaultMaxAttempts,
		},
		Server:       ServerConfig{GRPC: "127.0.0.1:50071"},
		Log:          LogConfig{Level: "info"},
		Replacements: map[string]string{},
	}
}
