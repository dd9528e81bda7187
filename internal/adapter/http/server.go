package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the dashboard API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the dashboard API, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, svc Service, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	h := &handlers{svc: svc, logger: logger}
	mux.HandleFunc("GET /api/dashboard-populasi", h.population)
	mux.HandleFunc("GET /api/dashboard-populasi/chart.png", h.populationChart)
	mux.HandleFunc("GET /api/status-ikan", h.statusTable)
	mux.HandleFunc("GET /api/status-ikan/export.xlsx", h.statusWorkbook)
	mux.HandleFunc("GET /api/card-infoekologi", h.speciesCards)
	mux.HandleFunc("GET /api/peta-kepatuhan", h.statusMap)
	mux.HandleFunc("GET /api/filters", h.filters)
	mux.HandleFunc("GET /api/status-distribution", h.statusDistribution)
	mux.HandleFunc("POST /api/predict-overfishing", h.predict)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
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
