// internal/server/server.go
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"review-analyzer/internal/common/config"
	"review-analyzer/internal/common/logger"
	"review-analyzer/internal/common/validation"
)

// Server is the HTTP surface over the analysis orchestrator.
type Server struct {
	analysis  AnalysisService
	validator *validation.Validator
	logger    logger.Logger
	httpSrv   *http.Server
}

// New builds the server and its router.
func New(cfg config.ServerConfig, analysis AnalysisService, log logger.Logger) (*Server, error) {
	validator, err := validation.NewValidator(analyzeRequestSchema)
	if err != nil {
		return nil, err
	}

	s := &Server{
		analysis:  analysis,
		validator: validator,
		logger:    log,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogging(log))
	r.Use(corsHeaders)

	r.Post("/analyze", s.handleAnalyze)
	r.Options("/analyze", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	s.httpSrv = &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s, nil
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.httpSrv.Addr})
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
