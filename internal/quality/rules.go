package quality

import "macau-pulse/internal/metrics"

// RuleResult represents the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Signal         string
	Recommendation string
	Severity       Status
}

// Rule evaluates a metrics snapshot.
type Rule func(snapshot map[string]int64) RuleResult

// ---------- RULES ----------

// Fetch failures mean some dashboard tiles are rendering placeholders.
func FetchFailureRule(snapshot map[string]int64) RuleResult {
	failures := snapshot[string(metrics.FeedFetchFailuresTotal)]

	if failures > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Feed fetch failures detected",
			Recommendation: "Check upstream endpoint availability and the APPCODE credential",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Fallback series served in place of live data.
func FallbackRule(snapshot map[string]int64) RuleResult {
	fallbacks := snapshot[string(metrics.FeedFallbacksTotal)]

	if fallbacks > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Fallback series served in place of live data",
			Recommendation: "Inspect the CSV-backed feeds for sparse or malformed downloads",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// An aborted category means a whole group of tiles went dark at once.
func CategoryAbortRule(snapshot map[string]int64) RuleResult {
	aborts := snapshot[string(metrics.CategoryAbortsTotal)]

	if aborts > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "A feed category aborted mid-pass",
			Recommendation: "Inspect logs for the panicking adapter",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}

// Feeds past the consecutive-failure threshold.
func UnhealthyFeedRule(snapshot map[string]int64) RuleResult {
	unhealthy := snapshot[string(metrics.FeedsUnhealthy)]

	if unhealthy > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "One or more feeds are persistently failing",
			Recommendation: "Check the per-feed states under /admin/feeds",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}
