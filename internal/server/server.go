// Package server hosts the signature and pricing components behind a chi
// router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	pricingcomponent "github.com/goliatone/go-lumio/components/pricing"
	signaturescomponent "github.com/goliatone/go-lumio/components/signatures"
	"github.com/goliatone/go-lumio/internal/config"
	"github.com/goliatone/go-lumio/pkg/catalog"
	"github.com/goliatone/go-lumio/pkg/directory"
	"github.com/goliatone/go-lumio/pkg/orchestrator"
	"github.com/goliatone/go-lumio/pkg/pricing"
	"github.com/goliatone/go-lumio/pkg/widgets"
)

// Deps are the collaborators the server routes to. Orchestrator and Catalog
// are required.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Catalog      *catalog.Provider
	Pricing      []pricing.CalculatorOption
	Directory    *directory.Directory
	Widgets      *widgets.Registry
	Logger       zerolog.Logger
}

// Server represents the HTTP API server
type Server struct {
	config     config.ServerConfig
	deps       Deps
	router     chi.Router
	server     *http.Server
	calculator atomic.Pointer[pricing.Calculator]
}

// New creates the server, validates the embedded OpenAPI document, and
// resolves the pricing catalog once.
func New(ctx context.Context, cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Orchestrator == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("server: catalog provider is required")
	}
	if deps.Widgets == nil {
		deps.Widgets = widgets.NewRegistry()
	}

	validator, err := NewSchemaValidator(ctx)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: cfg,
		deps:   deps,
		router: chi.NewRouter(),
	}
	s.RefreshCatalog(ctx)

	if err := s.setupRoutes(validator); err != nil {
		return nil, err
	}

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// RefreshCatalog re-resolves the live catalog. Failures keep serving the
// fallback catalog.
func (s *Server) RefreshCatalog(ctx context.Context) {
	resolution := s.deps.Catalog.Resolve(ctx)
	s.calculator.Store(resolution.Calculator(s.deps.Pricing...))
	s.deps.Logger.Info().
		Int("packages", resolution.Catalog.Len()).
		Bool("fallback", resolution.UsingFallback).
		Msg("pricing catalog ready")
}

func (s *Server) currentCalculator(context.Context) *pricing.Calculator {
	return s.calculator.Load()
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(validator *SchemaValidator) error {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.deps.Logger))
	s.router.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	if len(s.config.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Disposition", "X-Lumio-Variant", "X-Lumio-Variant-Fallback"},
			MaxAge:         300,
		}))
	}

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	s.router.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIDocument)
	})

	signatures := signaturescomponent.New(
		signaturescomponent.WithOrchestrator(s.deps.Orchestrator),
		signaturescomponent.WithDirectory(s.deps.Directory),
		signaturescomponent.WithWidgets(s.deps.Widgets),
		signaturescomponent.WithValidator(validator),
		signaturescomponent.WithLogger(s.deps.Logger),
	)
	if _, err := signatures.RegisterRoutes(s.router, "/"); err != nil {
		return fmt.Errorf("server: register signature routes: %w", err)
	}

	prices := pricingcomponent.New(
		pricingcomponent.WithCalculatorFunc(s.currentCalculator),
		pricingcomponent.WithValidator(validator),
		pricingcomponent.WithLogger(s.deps.Logger),
	)
	if _, err := prices.RegisterRoutes(s.router, "/"); err != nil {
		return fmt.Errorf("server: register pricing routes: %w", err)
	}
	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.deps.Logger.Info().Msg("shutting down HTTP server")
		return s.server.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Msg("http request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
