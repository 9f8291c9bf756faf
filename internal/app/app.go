package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rbright/rutranscript/internal/cli"
	"github.com/rbright/rutranscript/internal/config"
	"github.com/rbright/rutranscript/internal/doctor"
	"github.com/rbright/rutranscript/internal/lexicon"
	"github.com/rbright/rutranscript/internal/logging"
	"github.com/rbright/rutranscript/internal/pipeline"
	"github.com/rbright/rutranscript/internal/text"
	"github.com/rbright/rutranscript/internal/version"
)

type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("rutranscript"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("rutranscript"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if err := applyFlags(&cfgLoaded.Config, parsed); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("rutranscript"))
		return 2
	}

	logRuntime, err := logging.New(cfgLoaded.Config.Log.Level)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	if parsed.TakesText() && parsed.Remote != "" {
		return r.commandRemote(ctx, parsed, cfgLoaded.Config, logger)
	}

	started := time.Now()
	transcriber, err := newTranscriber(cfgLoaded.Config, logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load lexicons failed", "error", err.Error())
		return 1
	}
	logger.Debug("transcriber ready", "load_ms", time.Since(started).Milliseconds())

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(ctx, cfgLoaded, transcriber)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandServe:
		return r.commandServe(ctx, cfgLoaded.Config, transcriber, logger)
	case cli.CommandTranscribe, cli.CommandPhonemes, cli.CommandStressed:
		return r.commandText(ctx, parsed, cfgLoaded.Config, transcriber, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// applyFlags lays command-line overrides over the loaded config.
func applyFlags(cfg *config.Config, parsed cli.Parsed) error {
	if parsed.StressPlace != "" {
		place, err := text.ParseStressPlace(parsed.StressPlace)
		if err != nil {
			return fmt.Errorf("--stress-place: %w", err)
		}
		cfg.Stress.Place = place
	}
	if parsed.StressSymbol != "" {
		cfg.Stress.Symbol = parsed.StressSymbol
	}
	if parsed.Format != "" {
		format := strings.ToLower(strings.TrimSpace(parsed.Format))
		switch format {
		case formatText, formatJSON, formatYAML:
			cfg.Output.Format = format
		default:
			return fmt.Errorf("--format: unsupported format %q (expected text|json|yaml)", parsed.Format)
		}
	}
	cfg.Output.SaveStresses = cfg.Output.SaveStresses || parsed.SaveStresses
	cfg.Output.SaveSpaces = cfg.Output.SaveSpaces || parsed.SaveSpaces
	cfg.Output.SavePauses = cfg.Output.SavePauses || parsed.SavePauses
	return nil
}

// newTranscriber builds the engine and merges the configured lexicon files
// over the embedded ones.
func newTranscriber(cfg config.Config, logger *slog.Logger) (*pipeline.Transcriber, error) {
	stemmer := lexicon.SnowballStemmer{}
	irregular := lexicon.DefaultIrregular(stemmer)
	for _, path := range cfg.Lexicon.IrregularPaths {
		if err := loadFile(path, irregular.Load); err != nil {
			return nil, fmt.Errorf("load irregular lexicon: %w", err)
		}
	}
	stresses := text.DefaultStressLexicon()
	for _, path := range cfg.Lexicon.StressPaths {
		if err := loadFile(path, stresses.Load); err != nil {
			return nil, fmt.Errorf("load stress lexicon: %w", err)
		}
	}
	logger.Debug("lexicons loaded", "irregular", irregular.Len(), "stresses", stresses.Len())

	return pipeline.NewTranscriber(pipeline.Options{
		Workers:             cfg.Pipeline.Workers,
		MaxTokenizeAttempts: cfg.Pipeline.MaxTokenizeAttempts,
		Stemmer:             stemmer,
		Irregular:           irregular,
		Stresses:            stresses,
	}, logger), nil
}

func loadFile(path string, load func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// defaultQuery turns config into the render settings every surface starts
// from.
func defaultQuery(cfg config.Config) pipeline.Query {
	return pipeline.Query{
		Request: pipeline.Request{
			StressPlace:  cfg.Stress.Place,
			Replacements: cfg.Replacements,
		},
		Render: pipeline.RenderOptions{
			StressPlace:  cfg.Stress.Place,
			StressSymbol: cfg.Stress.Symbol,
			SaveStresses: cfg.Output.SaveStresses,
			SaveSpaces:   cfg.Output.SaveSpaces,
			SavePauses:   cfg.Output.SavePauses,
		},
	}
}
