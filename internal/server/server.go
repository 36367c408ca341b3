// Package server serves the deck over HTTP: HTML pages, a JSON API,
// chart images, health and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id the server assigned to the request, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithVersion sets the version reported by /healthz and the JSON API.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// Server is the HTTP surface. The registry is shared read-only by all
// requests; every request gets its own Navigator.
type Server struct {
	router   *mux.Router
	http     *http.Server
	registry *deck.Registry
	metrics  *Metrics
	logger   *log.Logger
	version  string

	cfg atomic.Pointer[config.Config]
}

// New builds a server for reg. It does not listen until Start or
// Serve is called.
func New(reg *deck.Registry, cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		registry: reg,
		metrics:  NewMetrics(),
		logger:   log.Default(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.Store(cfg)
	s.routes()

	s.http = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Config returns the configuration currently in effect.
func (s *Server) Config() *config.Config {
	return s.cfg.Load()
}

// SetConfig swaps the configuration used by subsequent requests. The
// listen address and timeouts are fixed at construction.
func (s *Server) SetConfig(cfg *config.Config) {
	s.cfg.Store(cfg)
	s.metrics.ConfigReloads.Inc()
	s.logger.Info("configuration reloaded", "title", cfg.Title)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve serves on l until Shutdown. A clean shutdown returns nil.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("serving deck", "addr", l.Addr().String())
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/sections/{slug}", s.handleSection).Methods(http.MethodGet)
	s.router.HandleFunc("/charts/{slug}/{index:[0-9]+}.{format:svg|png}", s.handleChart).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(jsonContentTypeMiddleware)
	api.HandleFunc("/sections", s.handleAPISections).Methods(http.MethodGet)
	api.HandleFunc("/sections/{slug}", s.handleAPISection).Methods(http.MethodGet)

	// mux skips Use middleware when no route matches.
	s.router.NotFoundHandler = s.requestIDMiddleware(s.loggingMiddleware(http.HandlerFunc(s.handleNotFound)))
}

// requestIDMiddleware adds a short unique id to each request.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// unmatchedRoute is the route label of requests that matched no route.
const unmatchedRoute = "unmatched"

// loggingMiddleware logs each request and records its metrics.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		elapsed := time.Since(start)

		route := unmatchedRoute
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(wrapper.statusCode)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Debug("request",
			"id", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", elapsed,
		)
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// responseWrapper captures HTTP status codes for logging.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
