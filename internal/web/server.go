// Package web provides the HTTP API for loading score sheets and reading
// their histograms and statistics.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/gradebook/internal/config"
	"github.com/JonMunkholm/gradebook/internal/core"
	mw "github.com/JonMunkholm/gradebook/internal/web/middleware"
)

// Server is the HTTP server for the gradebook API.
type Server struct {
	cfg       *config.Config
	ranges    []core.Range
	workspace *Workspace
	limiter   *core.LoadLimiter
	router    *chi.Mux
	server    *http.Server
}

// NewServer creates a Server from a validated configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	ranges, err := cfg.Histogram.Ranges()
	if err != nil {
		return nil, fmt.Errorf("histogram buckets: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		ranges:    ranges,
		workspace: NewWorkspace(),
		limiter:   core.NewLoadLimiter(cfg.Load.MaxConcurrent, cfg.Load.MaxWaitTime),
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		// Loading
		r.Post("/load", s.handleLoad)

		// Raw grid and typed records
		r.Get("/table", s.handleTable)
		r.Get("/records", s.handleRecords)

		// Statistics
		r.Get("/averages", s.handleAverages)
		r.Get("/histograms", s.handleHistograms)
		r.Get("/histograms/{field}", s.handleHistogram)
		r.Get("/summary/{field}", s.handleSummary)
		r.Get("/correlation", s.handleCorrelation)

		// Export
		r.Get("/report.xlsx", s.handleReport)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown waits for in-flight loads, then gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if active := s.limiter.ActiveCount(); active > 0 {
		slog.Info("waiting for loads to complete", "active", active)
		if err := s.limiter.WaitForDrain(ctx); err != nil {
			slog.Warn("loads did not complete in time", "error", err)
		}
	}

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Workspace returns the snapshot holder.
func (s *Server) Workspace() *Workspace {
	return s.workspace
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
