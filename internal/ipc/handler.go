package ipc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rbright/rutranscript/internal/pipeline"
)

// Commands understood by the transcription handler.
const (
	CommandStatus     = "status"
	CommandTranscribe = "transcribe"
)

// NewHandler serves status and transcribe requests with tr. Request
// fields override defaults when set.
func NewHandler(tr *pipeline.Transcriber, defaults pipeline.Query, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return HandlerFunc(func(ctx context.Context, req Request) Response {
		switch strings.TrimSpace(req.Command) {
		case CommandStatus:
			return Response{OK: true, State: "serving"}
		case CommandTranscribe:
			q, err := queryFromRequest(defaults, req)
			if err != nil {
				return Response{OK: false, Error: err.Error()}
			}
			answer := tr.Answer(ctx, q)
			logger.Debug("ipc transcribe", "chars", len(req.Text), "errors", len(answer.Errors))
			return Response{
				OK:           true,
				Allophones:   answer.Allophones,
				Phonemes:     answer.Phonemes,
				StressedText: answer.StressedText,
				Errors:       answer.Errors,
			}
		default:
			return Response{OK: false, Error: fmt.Sprintf("unknown command %q", req.Command)}
		}
	})
}

func queryFromRequest(defaults pipeline.Query, req Request) (pipeline.Query, error) {
	return defaults.With(req.Text, req.StressedText, pipeline.Overrides{
		StressPlace:  req.StressPlace,
		StressSymbol: req.StressSymbol,
		SaveStresses: req.SaveStresses,
		SaveSpaces:   req.SaveSpaces,
		SavePauses:   req.SavePauses,
	})
}
