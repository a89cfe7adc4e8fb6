package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"worklens/internal/tools"
)

// StdioServer speaks JSON-RPC 2.0 with Content-Length framing over a
// reader/writer pair, normally stdin/stdout.
type StdioServer struct {
	registry *tools.Registry
	logger   *slog.Logger
}

// NewStdioServer creates a stdio transport for the registry.
func NewStdioServer(registry *tools.Registry, logger *slog.Logger) *StdioServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StdioServer{registry: registry, logger: logger}
}

// Serve processes requests until EOF or context cancellation.
func (s *StdioServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req, err := readMessage(r)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			s.logger.Error("failed to read request", "error", err)
			_ = writeMessage(w, makeError(nil, -32700, err.Error()))
			return err
		}

		resp := dispatch(ctx, s.registry, req)
		if err := writeMessage(w, resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

func writeMessage(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

func readMessage(r *bufio.Reader) (*jsonrpcRequest, error) {
	headers := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if i := strings.IndexByte(line, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(line[:i]))
			headers[key] = strings.TrimSpace(line[i+1:])
		}
	}

	clStr, ok := headers["content-length"]
	if !ok {
		return nil, fmt.Errorf("missing Content-Length")
	}
	length, err := strconv.Atoi(clStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Content-Length: %w", err)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
