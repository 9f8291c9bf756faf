package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rbright/rutranscript/internal/config"
	"github.com/rbright/rutranscript/internal/ipc"
	"github.com/rbright/rutranscript/internal/pipeline"
	"github.com/rbright/rutranscript/internal/rpc"
)

// commandServe runs the gRPC service and the IPC socket until ctx is done
// or the process receives SIGINT or SIGTERM.
func (r Runner) commandServe(ctx context.Context, cfg config.Config, tr *pipeline.Transcriber, logger *slog.Logger) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	socketPath, err := ipc.SocketPath(cfg.Server.Socket)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	socket, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintf(r.Stderr, "error: %v at %s\n", err, socketPath)
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = socket.Close()
		_ = os.Remove(socketPath)
	}()

	grpcListener, err := net.Listen("tcp", cfg.Server.GRPC)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: listen grpc %s: %v\n", cfg.Server.GRPC, err)
		return 1
	}

	defaults := defaultQuery(cfg)
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ipcErrCh := make(chan error, 1)
	go func() {
		ipcErrCh <- ipc.Serve(serveCtx, socket, ipc.NewHandler(tr, defaults, logger))
	}()
	grpcErrCh := make(chan error, 1)
	go func() {
		grpcErrCh <- rpc.Serve(serveCtx, grpcListener, rpc.NewServer(tr, defaults, logger))
	}()

	logger.Info("serving", "grpc", grpcListener.Addr().String(), "socket", socketPath)
	fmt.Fprintf(r.Stdout, "serving grpc=%s socket=%s\n", grpcListener.Addr().String(), socketPath)

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-ipcErrCh:
		ipcErrCh <- nil
	case serveErr = <-grpcErrCh:
		grpcErrCh <- nil
	}
	cancel()

	for _, ch := range []chan error{ipcErrCh, grpcErrCh} {
		if err := <-ch; err != nil && serveErr == nil {
			serveErr = err
		}
	}
	if serveErr != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", serveErr)
		logger.Error("serve failed", "error", serveErr.Error())
		return 1
	}

	logger.Info("serve stopped")
	return 0
}
