package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Cache
	CacheKeysTotal    MetricKey = "cache_keys_total"
	CachePutsTotal    MetricKey = "cache_puts_total"
	CacheGetsTotal    MetricKey = "cache_gets_total"
	CacheMissesTotal  MetricKey = "cache_misses_total"
	CacheExpiredTotal MetricKey = "cache_expired_total"
	CacheClearsTotal  MetricKey = "cache_clears_total"

	// Feeds
	FeedFetchesTotal       MetricKey = "feed_fetches_total"
	FeedFetchFailuresTotal MetricKey = "feed_fetch_failures_total"
	FeedFallbacksTotal     MetricKey = "feed_fallbacks_total"
	FeedsUnhealthy         MetricKey = "feeds_unhealthy"

	// Snapshot orchestration
	SnapshotBuildsTotal MetricKey = "snapshot_builds_total"
	CategoryAbortsTotal MetricKey = "category_aborts_total"

	// Realtime push
	RealtimePollsTotal        MetricKey = "realtime_polls_total"
	RealtimePollFailuresTotal MetricKey = "realtime_poll_failures_total"
	RealtimePushesTotal       MetricKey = "realtime_pushes_total"
	RealtimeClientsConnected  MetricKey = "realtime_clients_connected"
)

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	var val int64
	r.counters[key] = &val
	atomic.AddInt64(&val, delta)
}
