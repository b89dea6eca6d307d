// Package server exposes the feasibility engine and the study store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/config"
	"github.com/tirecycle/feasibility/internal/store"
)

// maxBodyBytes bounds request bodies; a plant configuration is a few kilobytes.
const maxBodyBytes = 1 << 20

// Server holds the collaborators shared by every handler. The engine is stateless apart
// from its assumptions, so one instance serves concurrent requests.
type Server struct {
	engine *calculation.Engine
	store  store.Store
	parser *config.InputParser
	log    *zap.Logger
}

// New builds a server. A nil logger discards output.
func New(engine *calculation.Engine, st store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: engine, store: st, parser: config.NewInputParser(), log: log}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/scenarios", s.handleScenarios)
		r.Post("/sensitivity", s.handleSensitivity)
		r.Post("/heatmap", s.handleHeatmap)

		r.Route("/studies", func(r chi.Router) {
			r.Get("/", s.handleListStudies)
			r.Post("/", s.handleSaveStudy)
			r.Get("/compare", s.handleCompareStudies)
			r.Get("/{id}", s.handleGetStudy)
			r.Delete("/{id}", s.handleDeleteStudy)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context, settings config.HTTPSettings) error {
	srv := &http.Server{
		Addr:         settings.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", zap.String("addr", settings.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server", zap.Duration("timeout", settings.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
