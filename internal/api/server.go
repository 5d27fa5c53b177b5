// Package api exposes the SDR agent over HTTP REST.
//
// Endpoints:
//
//	GET  /api/        → service banner
//	POST /api/chat/init → initial greeting for a new session
//	POST /api/chat      → one stateless conversation turn
//	GET  /health        → liveness probe
//	GET  /ready         → readiness probe (pings the database)
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: recovery, request-id, logging, CORS
//   - chat.go: chat endpoints
//   - health.go: health check endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliselabs/sdragent/internal/log"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds header reads (Slowloris protection).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Chat turns make two model calls, so this stays generous.
	WriteTimeout = 90 * time.Second

	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the SDR agent API.
type Server struct {
	mux         *http.ServeMux
	corsOrigins []string
	logger      log.Logger

	chat   *ChatHandler
	health *HealthHandler
}

// NewServer creates a server with all routes registered.
func NewServer(service ChatService, pool *pgxpool.Pool, corsOrigins []string, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNop()
	}

	mux := http.NewServeMux()
	s := &Server{
		mux:         mux,
		corsOrigins: corsOrigins,
		logger:      logger.With("component", "api"),
		chat:        NewChatHandler(service, logger),
		health:      NewHealthHandler(pool, logger),
	}

	s.chat.RegisterRoutes(mux)
	s.health.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Order: recovery → request id → logging → CORS → handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		s.recoveryMiddleware,
		requestIDMiddleware,
		s.loggingMiddleware,
		corsMiddleware(s.corsOrigins),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
