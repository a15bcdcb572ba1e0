// Package http exposes the REST surface: lake readings, forced refresh, the
// visit counter, liveness, and metrics.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/anchorpoint/lakewatch/internal/lakes"
	"github.com/anchorpoint/lakewatch/internal/observability"
)

// LakeReader serves cached lake readings and forced refreshes.
type LakeReader interface {
	Get(ctx context.Context) lakes.Result
	Refresh(ctx context.Context) lakes.Result
}

// VisitCounter is the monotonic page-visit counter.
type VisitCounter interface {
	Increment() (int64, error)
	Count() (int64, error)
}

// Server routes the public endpoints and owns the underlying http.Server.
type Server struct {
	httpServer *http.Server
	lakes      LakeReader
	visits     VisitCounter
	cacheTTL   time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the HTTP server. corsOrigins feeds the CORS middleware;
// the frontend is served from a different origin than the API.
func NewServer(addr string, svc LakeReader, visits VisitCounter, corsOrigins []string, cacheTTL time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		lakes:    svc,
		visits:   visits,
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  metrics,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /lakes", s.handleLakes)
	mux.HandleFunc("GET /refresh", s.handleRefresh)
	mux.HandleFunc("GET /visits", s.handleVisits)
	mux.HandleFunc("GET /visits/count", s.handleVisitsCount)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(mux)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: handler,
		// A cold /refresh blocks on two upstream fetches, so the write
		// timeout must exceed twice the scrape timeout.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "lakewatch API is running",
		"endpoints":   []string{"/lakes", "/refresh", "/visits", "/visits/count", "/healthz", "/metrics"},
		"cacheWindow": s.cacheTTL.String(),
	})
}

func (s *Server) handleLakes(w http.ResponseWriter, r *http.Request) {
	res := s.lakes.Get(r.Context())
	writeJSON(w, statusFor(res), res)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	res := s.lakes.Refresh(r.Context())
	writeJSON(w, statusFor(res), res)
}

func (s *Server) handleVisits(w http.ResponseWriter, _ *http.Request) {
	count, err := s.visits.Increment()
	if err != nil {
		s.logger.Error("visit increment failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "visit counter unavailable"})
		return
	}
	s.metrics.Visits.Inc()
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (s *Server) handleVisitsCount(w http.ResponseWriter, _ *http.Request) {
	count, err := s.visits.Count()
	if err != nil {
		s.logger.Error("visit read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "visit counter unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// statusFor maps an error envelope to 502: the upstream report, not this
// service, is what failed.
func statusFor(res lakes.Result) int {
	if res.Source == lakes.SourceError {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
