// Package api exposes the analysis pipeline over HTTP. Uploads run the
// full pipeline synchronously; completed runs are persisted and can be
// listed and fetched later by session ID.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"etlmap/internal/auth"
	"etlmap/internal/config"
	"etlmap/internal/logging"
	"etlmap/internal/pipeline"
	"etlmap/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	addr     string
	logger   *logging.Logger
	config   *config.Config
	pipeline *pipeline.Pipeline
	runs     *storage.RunStore
	tokens   *auth.TokenStore
	limiter  *AnalysisLimiter
}

// NewServer creates a new HTTP server instance. The token store may be
// nil when auth is disabled in the config.
func NewServer(cfg *config.Config, pipe *pipeline.Pipeline, runs *storage.RunStore, tokens *auth.TokenStore, logger *logging.Logger) *Server {
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	s := &Server{
		addr:     addr,
		logger:   logger,
		config:   cfg,
		pipeline: pipe,
		runs:     runs,
		tokens:   tokens,
		limiter:  NewAnalysisLimiter(cfg.Server.MaxConcurrentAnalyses),
		router:   http.NewServeMux(),
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", logging.Fields{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = AnalysisLimitMiddleware(s.limiter)(handler)
	if s.config.Auth.Enabled && s.tokens != nil {
		handler = AuthMiddleware(s.tokens)(handler)
	}
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
