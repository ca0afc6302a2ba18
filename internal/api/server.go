package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flexgrid/pkg/observability"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 30 * time.Second
)

// Server wires the HTTP routes to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server. The runner's logger is used for request logs.
func New(runner *pipeline.Runner) *Server {
	return &Server{runner: runner, logger: runner.Logger}
}

// Handler returns the chi router serving all routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.observe(r))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/screens", s.handleListScreens)
		r.Get("/screens/{name}", s.handleScreen)
		r.Post("/grid", s.handleGrid)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// observe reports requests to the HTTP hooks and logs them at debug level.
// The route pattern is resolved up front so OnRequest sees the same route
// as OnResponse.
func (s *Server) observe(routes chi.Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.HTTP()

			route := r.URL.Path
			if rc := chi.NewRouteContext(); routes.Match(rc, r.Method, r.URL.Path) {
				route = rc.RoutePattern()
			}
			hooks.OnRequest(r.Context(), r.Method, route)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
			s.logger.Debug("request",
				"method", r.Method,
				"route", route,
				"status", status,
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start))
		})
	}
}
