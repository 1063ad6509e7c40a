package cache

import "time"

// Entry is a single cached feed result.
//
// Design choices:
// - Value is type-agnostic: the cache never validates payload shape.
// - FetchedAt is stamped by Put, never by reads.
// - TTL is per-entry because two feeds in the same orchestration pass
//   can carry freshness windows two orders of magnitude apart.
type Entry struct {
	Value     any
	FetchedAt time.Time
	TTL       time.Duration
}

// IsExpired checks whether the entry is stale at the given time.
func (e Entry) IsExpired(now time.Time) bool {
	return now.Sub(e.FetchedAt) > e.TTL
}
