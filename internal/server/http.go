package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"worklens/internal/contextutil"
	"worklens/internal/tools"
)

// NewRouter creates an HTTP handler serving the same JSON-RPC surface as
// the stdio transport at POST /rpc, plus a health endpoint.
func NewRouter(registry *tools.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Post("/rpc", func(w http.ResponseWriter, req *http.Request) {
		var rpcReq jsonrpcRequest
		if err := json.NewDecoder(req.Body).Decode(&rpcReq); err != nil {
			writeJSON(w, http.StatusBadRequest, makeError(nil, -32700, "Parse error"))
			return
		}

		resp := dispatch(req.Context(), registry, &rpcReq)
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// requestLogger adds a structured logger with request attributes to the
// context.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default().With(
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx := contextutil.WithLogger(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe runs the HTTP transport until the context is cancelled.
func ListenAndServe(ctx context.Context, addr string, registry *tools.Registry) error {
	srv := &http.Server{Addr: addr, Handler: NewRouter(registry)}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
