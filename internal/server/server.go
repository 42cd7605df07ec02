// Package server exposes shelf lookups over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/biblioteca/shelfmap/pkg/shelfmap"
	"go.uber.org/zap"
)

// Server serves lookups from a shelfmap cache.
type Server struct {
	cache *shelfmap.Cache
	log   *zap.Logger
}

// New creates a Server. A nil logger disables logging.
func New(cache *shelfmap.Cache, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cache: cache, log: logger}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /api/search", s.search)
	mux.HandleFunc("GET /mapping.json", s.mapping)
	mux.HandleFunc("POST /api/reload", s.reload)

	return chain(mux, requestID, s.accessLog, s.recoverPanics)
}

// Run serves on addr until ctx is done, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		s.log.Info("http server stopped")
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
