package config

import (
	"fmt"
	"strings"

	"github.com/rbright/rutranscript/internal/pipeline"
	"github.com/rbright/rutranscript/internal/text"
)

var (
	outputFormats = []string{"text", "json", "yaml"}
	logLevels     = []string{"debug", "info", "warn", "error"}
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if _, err := text.ParseStressPlace(string(cfg.Stress.Place)); err != nil {
		return nil, fmt.Errorf("stress.place: %w", err)
	}
	if cfg.Stress.Symbol == "" {
		return nil, fmt.Errorf("stress.symbol must not be empty")
	}
	if pipeline.ConflictingStressSymbol(cfg.Stress.Symbol) {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("stress.symbol %q conflicts with transcription signs", cfg.Stress.Symbol)})
	}
	if !oneOf(cfg.Output.Format, outputFormats) {
		return nil, fmt.Errorf("output.format must be one of: %s", strings.Join(outputFormats, ", "))
	}
	if cfg.Pipeline.Workers < 0 {
		return nil, fmt.Errorf("pipeline.workers must be >= 0")
	}
	if cfg.Pipeline.MaxTokenizeAttempts < 0 {
		return nil, fmt.Errorf("pipeline.max_tokenize_attempts must be >= 0")
	}
	if strings.TrimSpace(cfg.Server.GRPC) == "" {
		return nil, fmt.Errorf("server.grpc must not be empty")
	}
	if !oneOf(cfg.Log.Level, logLevels) {
		return nil, fmt.Errorf("log.level must be one of: %s", strings.Join(logLevels, ", "))
	}

	return warnings, nil
}

func oneOf(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
