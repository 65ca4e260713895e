// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness and build version
//	POST /v1/plans          lay out the page document in the request body
//	GET  /v1/plans/{id}     render a plan computed by an earlier request
//	GET  /v1/pages/{path}   lay out a document from the configured pages dir
//
// All plan routes take ?format= (json, svg, dot, tree, png, pdf; default
// json), ?scale= and ?refresh=true. Errors are returned as JSON
// {"code": ..., "message": ...}.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/siderail/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Runner executes layouts. Required.
	Runner *pipeline.Runner

	// PagesDir is served under /v1/pages/. The route is disabled when empty.
	PagesDir string

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	pagesDir string
	logger   *log.Logger
	router   chi.Router
}

// New creates a server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		runner:   cfg.Runner,
		pagesDir: cfg.PagesDir,
		logger:   cfg.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.pagesDir != "" && !pagesDirExists(s.pagesDir) {
		s.logger.Warn("pages dir does not exist", "dir", s.pagesDir)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/plans", s.handleCreatePlan)
		r.Get("/plans/{id}", s.handleGetPlan)
		if s.pagesDir != "" {
			r.Get("/pages/*", s.handlePage)
		}
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound("no route for %s %s", r.Method, r.URL.Path))
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "pages", s.pagesDir)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
