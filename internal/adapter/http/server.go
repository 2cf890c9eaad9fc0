package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/storm-underwriter/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// maxRequestBytes bounds underwriting request bodies.
	maxRequestBytes = 1 << 16

	writeTimeout = 60 * time.Second

	// underwriteTimeout caps one decision so a slow weather provider still
	// leaves time to write the REFER response before writeTimeout.
	underwriteTimeout = writeTimeout - 5*time.Second
)

// Underwriter decides a single application.
type Underwriter interface {
	Process(ctx context.Context, query domain.LocationQuery) (*domain.Application, error)
}

// Server exposes the underwriting endpoint plus health, readiness, and metrics.
type Server struct {
	httpServer        *http.Server
	underwriter       Underwriter
	underwriteTimeout time.Duration
	logger            *slog.Logger
}

// NewServer creates an HTTP server with /v1/underwrite, /healthz, /readyz, and /metrics routes.
// requestTimeout bounds each underwriting decision; values <= 0 or beyond the
// write budget fall back to the write budget.
func NewServer(addr string, uw Underwriter, ready sharedobs.ReadinessChecker, requestTimeout time.Duration, logger *slog.Logger) *Server {
	if requestTimeout <= 0 || requestTimeout > underwriteTimeout {
		requestTimeout = underwriteTimeout
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		underwriter:       uw,
		underwriteTimeout: requestTimeout,
		logger:            logger,
	}

	mux.HandleFunc("POST /v1/underwrite", s.handleUnderwrite)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

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

type underwriteRequest struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
}

func (s *Server) handleUnderwrite(w http.ResponseWriter, r *http.Request) {
	var req underwriteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	query, err := domain.NewLocationQuery(req.City, req.CountryCode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.underwriteTimeout)
	defer cancel()

	app, err := s.underwriter.Process(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Error("underwriting failed", "city", query.City, "error", err)
		writeError(w, http.StatusInternalServerError, "underwriting failed")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, app)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
