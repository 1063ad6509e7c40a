package cache

import (
	"encoding/json"
	"sync"
	"time"

	"macau-pulse/internal/metrics"
)

// Cache is the single-process memory of the most recent successful
// result per feed key.
//
// Design principles:
// - Safe for concurrent access using RWMutex
// - Expiry is lazy: stale entries are dropped when read, never swept
//   in the background, so memory is bounded by the fixed feed-key set
// - Put unconditionally overwrites; overlapping snapshot builds racing
//   on the same key are a benign last-write-wins race since both are
//   writing fresh data
//
// Note:
// TTL testing uses short sleeps instead of injecting a clock,
// keeping the cache free of test-only concerns.
type Cache struct {
	mu      sync.RWMutex
	data    map[string]Entry
	metrics *metrics.Registry
}

// Stat describes one entry for diagnostics.
type Stat struct {
	ApproxSize   int           `json:"approx_size"`
	RemainingTTL time.Duration `json:"remaining_ttl_ms"`
}

// New initializes and returns an empty Cache.
func New(metricsRegistry *metrics.Registry) *Cache {
	return &Cache{
		data:    make(map[string]Entry),
		metrics: metricsRegistry,
	}
}

// Put inserts or overwrites a key with a freshly stamped FetchedAt.
// The payload shape is not validated; absence of validation is what
// lets one store serve 21 heterogeneous record shapes.
func (c *Cache) Put(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics.Inc(metrics.CachePutsTotal)

	if _, exists := c.data[key]; !exists {
		c.metrics.Inc(metrics.CacheKeysTotal)
	}

	c.data[key] = Entry{
		Value:     value,
		FetchedAt: time.Now(),
		TTL:       ttl,
	}
}

// Get retrieves a value from the cache.
//
// Behavior:
// - Returns (value, true) if key exists and is not expired
// - If the key is expired, it is deleted and treated as missing
func (c *Cache) Get(key string) (any, bool) {
	c.metrics.Inc(metrics.CacheGetsTotal)

	c.mu.RLock()
	entry, exists := c.data[key]
	c.mu.RUnlock()

	if !exists {
		c.metrics.Inc(metrics.CacheMissesTotal)
		return nil, false
	}

	if entry.IsExpired(time.Now()) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()

		c.metrics.Inc(metrics.CacheExpiredTotal)
		c.metrics.Add(metrics.CacheKeysTotal, -1)

		return nil, false
	}

	return entry.Value, true
}

// Clear removes all entries. Used for manual cache-busting and test
// isolation; no selective invalidation by category exists.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics.Inc(metrics.CacheClearsTotal)
	c.metrics.Add(metrics.CacheKeysTotal, -int64(len(c.data)))
	c.data = make(map[string]Entry)
}

// Stats reports per-key diagnostics for all non-expired entries.
// Reading stats never refreshes an entry: RemainingTTL is computed,
// FetchedAt is untouched.
func (c *Cache) Stats() map[string]Stat {
	now := time.Now()
	out := make(map[string]Stat)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for key, entry := range c.data {
		if entry.IsExpired(now) {
			continue
		}

		remaining := entry.TTL - now.Sub(entry.FetchedAt)
		if remaining < 0 {
			remaining = 0
		}

		out[key] = Stat{
			ApproxSize:   approxSize(entry.Value),
			RemainingTTL: remaining,
		}
	}
	return out
}

// approxSize is the length of the JSON encoding, good enough for
// diagnostics. Unencodable payloads count as zero.
func approxSize(v any) int {
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(b)
}
