// File: internal/server/server.go

// Package server exposes the evaluation pipeline over HTTP. Every operation
// is a POST under /api/v1 taking a small JSON body; failures map onto status
// codes by error kind (bad identifiers are the caller's fault, everything the
// upstream provider breaks is a gateway failure).
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/promptlens/promptlens-cli/internal/config"
)

// Server hosts the HTTP surface over a single Evaluator.
type Server struct {
	cfg      config.ServerConfig
	defaults config.EvaluationConfig
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	eval     Evaluator
}

// NewServer builds the router and wires the middleware chain.
func NewServer(cfg config.ServerConfig, defaults config.EvaluationConfig, eval Evaluator, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		defaults: defaults,
		logger:   logger.Named("server"),
		eval:     eval,
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(Recovery(s.logger))
	router.Use(Logger(s.logger))

	router.Get("/health", s.handleHealth)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(limiter))

		r.Get("/models", s.handleModels)
		r.Post("/goal", s.handleGoal)
		r.Post("/fragments", s.handleFragments)
		r.Post("/logs", s.handleLogs)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/test", s.handleTest)
		r.Post("/execute", s.handleExecute)
	})

	s.router = router
	return s
}

// Handler exposes the routing tree, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving requests until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.RequestTimeout,
		WriteTimeout: s.cfg.RequestTimeout,
	}
	s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
	return s.server.ListenAndServe()
}

// Stop drains in-flight requests until the context expires.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
