package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rbright/rutranscript/internal/pipeline"
)

// Server answers Transcribe calls with a local transcriber.
type Server struct {
	transcriber *pipeline.Transcriber
	defaults    pipeline.Query
	logger      *slog.Logger
}

// NewServer builds a Transcription service. defaults carries the
// configured render settings; request fields override them.
func NewServer(tr *pipeline.Transcriber, defaults pipeline.Query, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{transcriber: tr, defaults: defaults, logger: logger}
}

// Transcribe implements TranscriptionServer.
func (s *Server) Transcribe(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := requestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	q, err := s.defaults.With(req.Text, req.StressedText, pipeline.Overrides{
		StressPlace:  req.StressPlace,
		StressSymbol: req.StressSymbol,
		SaveStresses: req.SaveStresses,
		SaveSpaces:   req.SaveSpaces,
		SavePauses:   req.SavePauses,
		Replacements: req.Replacements,
	})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	started := time.Now()
	answer := s.transcriber.Answer(ctx, q)
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	s.logger.Info("grpc transcribe",
		"chars", len(req.Text),
		"symbols", len(answer.Allophones),
		"errors", len(answer.Errors),
		"latency_ms", time.Since(started).Milliseconds(),
	)
	return answerToStruct(answer), nil
}

// Serve runs a gRPC server for srv on lis until ctx is done, then stops
// it gracefully.
func Serve(ctx context.Context, lis net.Listener, srv TranscriptionServer) error {
	gs := grpc.NewServer()
	RegisterTranscriptionServer(gs, srv)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		gs.GracefulStop()
	}()

	err := gs.Serve(lis)
	if ctx.Err() != nil {
		<-stopped
		return nil
	}
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve grpc: %w", err)
	}
	return nil
}
