// Package api exposes the read-only HTTP accessor consumed by the dashboard.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/emilroby/nsefi-harvester/internal/harvest"
)

// Server wires HTTP handlers to the snapshot store. It never writes
// snapshots; the publish command owns those.
type Server struct {
	router chi.Router
	store  harvest.Store
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(store harvest.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:  store,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/updates/{year}/{month}", s.getMonthUpdates)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// monthUpdatesResponse is the accessor payload. Absence is reported with
// found=false and an empty payload, never as an error; the dashboard renders
// it as "no updates found".
type monthUpdatesResponse struct {
	Found       bool            `json:"found"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
	Payload     harvest.Payload `json:"payload"`
}

func (s *Server) getMonthUpdates(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "year must be a positive integer"})
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be between 1 and 12"})
		return
	}

	snap, err := s.store.Read(r.Context(), year, month)
	switch {
	case errors.Is(err, harvest.ErrSnapshotNotFound):
		writeJSON(w, http.StatusOK, monthUpdatesResponse{Found: false, Payload: harvest.Payload{}})
	case err != nil:
		s.logger.Error("Snapshot read failed",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "snapshot read failed"})
	default:
		writeJSON(w, http.StatusOK, monthUpdatesResponse{
			Found:       true,
			LastUpdated: &snap.LastUpdated,
			Payload:     snap.Payload,
		})
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("Request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
