// Package httpserver wires the build and admin HTTP servers.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/previewbuilder/internal/config"
	derrors "git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/metrics"
	"git.home.luguber.info/inful/previewbuilder/internal/server/handlers"
	smw "git.home.luguber.info/inful/previewbuilder/internal/server/middleware"
)

const readHeaderTimeout = 10 * time.Second

// Options carries optional wiring for the server.
type Options struct {
	// Registry backs the /metrics endpoint; nil disables it.
	Registry *prom.Registry
}

// Server manages the build and admin HTTP endpoints.
type Server struct {
	buildServer *http.Server
	adminServer *http.Server
	cfg         *config.Config
	opts        Options

	buildHandlers      *handlers.BuildHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler
}

// New constructs the HTTP wiring around a build runner.
func New(cfg *config.Config, runner handlers.BuildRunner, opts Options) *Server {
	errorAdapter := derrors.NewHTTPErrorAdapter(slog.Default())
	return &Server{
		cfg:                cfg,
		opts:               opts,
		buildHandlers:      handlers.NewBuildHandlers(runner),
		monitoringHandlers: handlers.NewMonitoringHandlers(),
		mchain:             smw.Chain(slog.Default(), errorAdapter),
	}
}

// Start pre-binds all required ports so we can fail fast and surface
// aggregate errors instead of logging independent 'address already in use'
// lines after partial initialization, then launches both servers.
func (s *Server) Start(ctx context.Context) error {
	type preBind struct {
		name string
		port int
		ln   net.Listener
	}
	binds := []preBind{
		{name: "build", port: s.cfg.HTTP.BuildPort},
		{name: "admin", port: s.cfg.HTTP.AdminPort},
	}

	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		addr := fmt.Sprintf(":%d", binds[i].port)
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s port %d: %w", binds[i].name, binds[i].port, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return fmt.Errorf("http startup failed: %w", errors.Join(bindErrs...))
	}

	s.buildServer = &http.Server{
		Handler:           s.mchain(s.buildMux()),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.adminServer = &http.Server{
		Handler:           s.mchain(s.adminMux()),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.serve("build", s.buildServer, binds[0].ln)
	s.serve("admin", s.adminServer, binds[1].ln)

	slog.Info("HTTP servers started",
		slog.Int("build_port", s.cfg.HTTP.BuildPort),
		slog.Int("admin_port", s.cfg.HTTP.AdminPort))
	return nil
}

// buildMux routes the public build endpoint.
func (s *Server) buildMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/builds", s.buildHandlers.HandleBuild)
	return mux
}

// adminMux routes health and metrics.
func (s *Server) adminMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.monitoringHandlers.HandleHealth)
	if s.opts.Registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	return mux
}

// serve launches an http.Server on a pre-bound listener, standardizing
// goroutine startup and error logging.
func (s *Server) serve(kind string, srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(fmt.Sprintf("%s server error", kind), "error", err)
		}
	}()
}

// Stop gracefully shuts down both HTTP servers.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error
	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}
	if s.buildServer != nil {
		if err := s.buildServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("build server shutdown: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	slog.Info("HTTP servers stopped")
	return nil
}
