// Package server serves a rendered dashboard document over HTTP. The
// document is rendered once at startup and held in memory; the server
// exposes it at the root path alongside health and metrics endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quantlab/backplot/internal/metrics"
)

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	MetricsPath string // empty disables the metrics endpoint
}

// Server represents the dashboard HTTP server
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	registry   *metrics.Registry

	document []byte
}

// NewServer creates a server holding one rendered document
func NewServer(cfg Config, document []byte, reg *metrics.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:   logger,
		mux:      mux,
		registry: reg,
		document: document,
	}

	s.setupRoutes(cfg.MetricsPath)

	var handler http.Handler = mux
	if reg != nil {
		handler = metrics.HTTPMiddleware(reg)(mux)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes(metricsPath string) {
	s.mux.HandleFunc("/", s.handleDashboard)
	s.mux.HandleFunc("/healthz", s.handleHealth)

	if s.registry != nil && metricsPath != "" {
		s.mux.Handle(metricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
		s.registry.SetDocumentBytes(len(s.document))
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting dashboard server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down dashboard server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.document)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
