package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"macau-pulse/internal/logs"
)

// NewRouter wires every endpoint onto a chi router behind the recovery
// and logging middleware.
func NewRouter(h *Handler, logger *logs.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery(logger))
	r.Use(Logging(logger))

	// Dashboard API
	r.Get("/snapshot", h.GetSnapshot)
	r.Get("/realtime", h.Realtime)

	// Admin APIs
	r.Post("/admin/cache/clear", h.ClearCache)
	r.Get("/admin/cache/stats", h.GetCacheStats)
	r.Get("/admin/feeds", h.GetFeeds)

	// Observability APIs
	r.Get("/metrics", h.GetMetrics)
	r.Get("/health", h.GetHealth)

	return r
}
