package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rbright/rutranscript/internal/pipeline"
)

const defaultDialTimeout = 3 * time.Second

// Client calls a remote Transcription service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to endpoint and waits until the connection is ready.
func Dial(ctx context.Context, endpoint string, timeout time.Duration) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("grpc endpoint is empty")
	}
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial grpc %q: %w", endpoint, err)
	}

	readyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn.Connect()
	if err := waitForReady(readyCtx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("wait for grpc readiness: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Transcribe sends req and decodes the answer.
func (c *Client) Transcribe(ctx context.Context, req Request) (pipeline.Answer, error) {
	in, err := req.toStruct()
	if err != nil {
		return pipeline.Answer{}, fmt.Errorf("encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, TranscribeMethod, in, out); err != nil {
		return pipeline.Answer{}, fmt.Errorf("transcribe: %w", err)
	}
	return answerFromStruct(out), nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Ready reports whether a server accepts connections at endpoint within
// timeout.
func Ready(ctx context.Context, endpoint string, timeout time.Duration) error {
	c, err := Dial(ctx, endpoint, timeout)
	if err != nil {
		return err
	}
	return c.Close()
}

// waitForReady blocks until gRPC connection enters Ready or fails.
func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("grpc connection entered shutdown state")
		}

		if !conn.WaitForStateChange(ctx, state) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("grpc readiness wait timed out in state %s", state.String())
		}
	}
}
