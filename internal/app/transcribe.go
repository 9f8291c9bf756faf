package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rbright/rutranscript/internal/cli"
	"github.com/rbright/rutranscript/internal/config"
	"github.com/rbright/rutranscript/internal/pipeline"
	"github.com/rbright/rutranscript/internal/rpc"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

const remoteDialTimeout = 3 * time.Second

// commandText transcribes input with the local engine.
func (r Runner) commandText(ctx context.Context, parsed cli.Parsed, cfg config.Config, tr *pipeline.Transcriber, logger *slog.Logger) int {
	input, err := r.readInput(parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	q, err := defaultQuery(cfg).With(input, parsed.Stressed, pipeline.Overrides{})
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	started := time.Now()
	answer := tr.Answer(ctx, q)
	logger.Info("transcribe complete",
		"command", parsed.Command,
		"chars", len(input),
		"symbols", len(answer.Allophones),
		"errors", len(answer.Errors),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return r.emit(parsed.Command, cfg.Output.Format, answer)
}

// commandRemote sends input to a running gRPC server.
func (r Runner) commandRemote(ctx context.Context, parsed cli.Parsed, cfg config.Config, logger *slog.Logger) int {
	input, err := r.readInput(parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	client, err := rpc.Dial(ctx, parsed.Remote, remoteDialTimeout)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("remote dial failed", "remote", parsed.Remote, "error", err.Error())
		return 1
	}
	defer func() { _ = client.Close() }()

	started := time.Now()
	answer, err := client.Transcribe(ctx, rpc.Request{
		Text:         input,
		StressedText: parsed.Stressed,
		StressPlace:  string(cfg.Stress.Place),
		StressSymbol: cfg.Stress.Symbol,
		SaveStresses: cfg.Output.SaveStresses,
		SaveSpaces:   cfg.Output.SaveSpaces,
		SavePauses:   cfg.Output.SavePauses,
		Replacements: cfg.Replacements,
	})
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("remote transcribe failed", "remote", parsed.Remote, "error", err.Error())
		return 1
	}
	logger.Info("remote transcribe complete",
		"remote", parsed.Remote,
		"grpc_latency_ms", time.Since(started).Milliseconds(),
	)
	return r.emit(parsed.Command, cfg.Output.Format, answer)
}

func (r Runner) readInput(parsed cli.Parsed) (string, error) {
	input := strings.Join(parsed.Text, " ")
	if input == "" && r.Stdin != nil {
		raw, err := io.ReadAll(r.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		input = string(raw)
	}
	if strings.TrimSpace(input) == "" {
		return "", errors.New("no input text")
	}
	return input, nil
}

// report is the structured output of one text command.
type report struct {
	Allophones   []string `json:"allophones,omitempty" yaml:"allophones,omitempty"`
	Phonemes     []string `json:"phonemes,omitempty" yaml:"phonemes,omitempty"`
	StressedText string   `json:"stressed_text,omitempty" yaml:"stressed_text,omitempty"`
	Errors       []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// emit writes the layer selected by command and reports section failures.
// Failed sections make the exit code 1 after the rest is printed.
func (r Runner) emit(command cli.Command, format string, answer pipeline.Answer) int {
	out := report{Errors: answer.Errors}
	var line string
	switch command {
	case cli.CommandPhonemes:
		out.Phonemes = answer.Phonemes
		line = strings.Join(answer.Phonemes, " ")
	case cli.CommandStressed:
		out.StressedText = answer.StressedText
		line = answer.StressedText
	default:
		out.Allophones = answer.Allophones
		line = strings.Join(answer.Allophones, " ")
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(r.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(r.Stderr, "error: encode json: %v\n", err)
			return 1
		}
	case formatYAML:
		enc := yaml.NewEncoder(r.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(r.Stderr, "error: encode yaml: %v\n", err)
			return 1
		}
		if err := enc.Close(); err != nil {
			fmt.Fprintf(r.Stderr, "error: encode yaml: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintln(r.Stdout, line)
		for _, msg := range answer.Errors {
			fmt.Fprintf(r.Stderr, "error: %s\n", msg)
		}
	}

	if len(answer.Errors) > 0 {
		return 1
	}
	return 0
}
