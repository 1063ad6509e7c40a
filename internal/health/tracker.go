package health

import (
	"sync"
	"time"

	"macau-pulse/internal/feeds"
	"macau-pulse/internal/metrics"
)

// State represents the health state of a feed.
type State string

const (
	Healthy   State = "healthy"
	Unhealthy State = "unhealthy"
)

// Thresholds define when a feed flips state.
type Thresholds struct {
	FailureThreshold int // consecutive failures to mark unhealthy
	SuccessThreshold int // consecutive successes to mark healthy again
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		FailureThreshold: 3,
		SuccessThreshold: 2,
	}
}

// FeedHealth tracks the health-related state for a single feed.
type FeedHealth struct {
	Key          feeds.Key `json:"key"`
	State        State     `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastSuccess  time.Time `json:"last_success,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
}

// Tracker manages the health state of every feed. Feeds start healthy;
// the failure threshold keeps one transient upstream hiccup from
// flipping the admin view.
type Tracker struct {
	mu         sync.RWMutex
	feeds      map[feeds.Key]*FeedHealth
	thresholds Thresholds
	metrics    *metrics.Registry
}

// NewTracker pre-registers the whole closed feed-key set.
func NewTracker(thresholds Thresholds, metricsRegistry *metrics.Registry) *Tracker {
	t := &Tracker{
		feeds:      make(map[feeds.Key]*FeedHealth),
		thresholds: thresholds,
		metrics:    metricsRegistry,
	}
	for _, key := range feeds.AllKeys() {
		t.feeds[key] = &FeedHealth{Key: key, State: Healthy}
	}
	return t
}

// MarkFailure records a failed fetch for a feed.
func (t *Tracker) MarkFailure(key feeds.Key, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fh, ok := t.feeds[key]
	if !ok {
		return
	}
	fh.FailureCount++
	fh.SuccessCount = 0
	fh.LastError = reason

	if fh.State == Healthy && fh.FailureCount >= t.thresholds.FailureThreshold {
		fh.State = Unhealthy
		t.metrics.Inc(metrics.FeedsUnhealthy)
	}
}

// MarkSuccess records a successful fetch for a feed.
func (t *Tracker) MarkSuccess(key feeds.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fh, ok := t.feeds[key]
	if !ok {
		return
	}
	fh.SuccessCount++
	fh.FailureCount = 0
	fh.LastSuccess = time.Now()
	fh.LastError = ""

	if fh.State == Unhealthy && fh.SuccessCount >= t.thresholds.SuccessThreshold {
		fh.State = Healthy
		t.metrics.Add(metrics.FeedsUnhealthy, -1)
	}
}

// IsHealthy reports whether a feed is currently healthy.
func (t *Tracker) IsHealthy(key feeds.Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	fh, ok := t.feeds[key]
	return ok && fh.State == Healthy
}

// Snapshot returns a copy of every feed's health state.
func (t *Tracker) Snapshot() map[feeds.Key]FeedHealth {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[feeds.Key]FeedHealth, len(t.feeds))
	for key, fh := range t.feeds {
		out[key] = *fh
	}
	return out
}
