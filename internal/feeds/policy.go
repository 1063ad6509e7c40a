package feeds

import "time"

// Policy maps a feed to its freshness window. Membership decides the
// TTL, except for two realtime feeds with their own windows: weather
// changes slower than border queues, parking faster than flights age
// out of relevance.
type Policy struct {
	byCategory map[Category]time.Duration
	overrides  map[Key]time.Duration
}

// NewPolicy builds a policy from explicit tables. Most callers want
// DefaultPolicy; this exists for tests that need short windows.
func NewPolicy(byCategory map[Category]time.Duration, overrides map[Key]time.Duration) Policy {
	return Policy{byCategory: byCategory, overrides: overrides}
}

// DefaultPolicy returns the production TTL table.
func DefaultPolicy() Policy {
	return Policy{
		byCategory: map[Category]time.Duration{
			CategoryMacro:    24 * time.Hour,
			CategoryRealtime: 5 * time.Minute,
			CategoryPOI:      7 * 24 * time.Hour,
			CategoryInsight:  time.Hour,
		},
		overrides: map[Key]time.Duration{
			KeyWeather: 30 * time.Minute,
			KeyParking: 15 * time.Minute,
		},
	}
}

// TTLFor resolves the freshness window for a feed key.
func (p Policy) TTLFor(k Key) time.Duration {
	if ttl, ok := p.overrides[k]; ok {
		return ttl
	}
	return p.byCategory[CategoryOf(k)]
}
