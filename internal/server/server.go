// internal/server/server.go

// Package server exposes the simulation core over a REST API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pcrsim-core/scoring"

	"pcrsim/internal/config"
	"pcrsim/internal/version"
)

// Server wires the HTTP API onto a scoring configuration. Settings are
// immutable, so one Server can handle concurrent requests.
type Server struct {
	cfg      config.ServerConfig
	settings *scoring.Settings
	log      *zap.Logger
}

// New returns a Server using the given scoring settings as the default
// for requests that do not override the cutoffs.
func New(cfg config.ServerConfig, settings *scoring.Settings, log *zap.Logger) *Server {
	if settings == nil {
		settings = scoring.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, settings: settings, log: log}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(instrument)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(time.Duration(s.cfg.RequestTimeout) * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simulate", s.handleSimulate)
		r.Post("/search", s.handleSearch)
		r.Post("/tm", s.handleTm)
		r.Post("/dimer", s.handleDimer)
		r.Get("/settings", s.handleSettings)
		r.Get("/version", s.handleVersion)
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(s.cfg.RequestTimeout+5) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("server listening", zap.String("addr", s.cfg.Addr))

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.log.Info("server shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		srv.SetKeepAlivesEnabled(false)
		return srv.Shutdown(shutCtx)
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": version.Version})
}
