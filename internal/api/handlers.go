package api

import (
	"encoding/json"
	"net/http"

	"macau-pulse/internal/cache"
	"macau-pulse/internal/health"
	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
	"macau-pulse/internal/orchestrator"
	"macau-pulse/internal/quality"
	"macau-pulse/internal/realtime"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	orch     *orchestrator.Orchestrator
	cache    *cache.Cache
	tracker  *health.Tracker
	metrics  *metrics.Registry
	analyzer *quality.Analyzer
	hub      *realtime.Hub
}

// NewHandler creates a new API handler.
func NewHandler(
	orch *orchestrator.Orchestrator,
	cacheStore *cache.Cache,
	tracker *health.Tracker,
	metricsRegistry *metrics.Registry,
	logger *logs.Logger,
	hub *realtime.Hub,
) *Handler {
	return &Handler{
		orch:     orch,
		cache:    cacheStore,
		tracker:  tracker,
		metrics:  metricsRegistry,
		analyzer: quality.NewAnalyzer(metricsRegistry, logger),
		hub:      hub,
	}
}

/* ---------------- GET /snapshot ---------------- */

// GetSnapshot is the dashboard's single data endpoint. It always
// answers 200: feeds that failed this pass are simply absent.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.orch.BuildSnapshot(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

/* ---------------- POST /admin/cache/clear ---------------- */

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

/* ---------------- GET /admin/cache/stats ---------------- */

func (h *Handler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.cache.Stats())
}

/* ---------------- GET /admin/feeds ---------------- */

func (h *Handler) GetFeeds(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.tracker.Snapshot())
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.metrics.Snapshot())
}

/* ---------------- GET /health ---------------- */

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := h.analyzer.Analyze()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

/* ---------------- GET /realtime ---------------- */

// Realtime upgrades to a websocket and streams feed updates.
func (h *Handler) Realtime(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}
