package quality

import (
	"strings"

	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
)

// Analyzer converts metrics + logs into a data-quality report.
type Analyzer struct {
	metrics *metrics.Registry
	logger  *logs.Logger
	rules   []Rule
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(
	reg *metrics.Registry,
	logger *logs.Logger,
) *Analyzer {
	return &Analyzer{
		metrics: reg,
		logger:  logger,
		rules: []Rule{
			FetchFailureRule,
			FallbackRule,
			CategoryAbortRule,
			UnhealthyFeedRule,
		},
	}
}

// Analyze evaluates metrics and logs and returns a quality report.
func (a *Analyzer) Analyze() Report {
	snapshot := a.metrics.Snapshot()

	var (
		signals         = []string{}
		recommendations = []string{}
		status          = StatusOK
	)

	/* ---------- METRICS-BASED RULES ---------- */

	for _, rule := range a.rules {
		result := rule(snapshot)
		if !result.Triggered {
			continue
		}

		signals = append(signals, result.Signal)
		recommendations = append(recommendations, result.Recommendation)

		// Escalate status
		if result.Severity == StatusCritical {
			status = StatusCritical
		} else if result.Severity == StatusDegraded && status == StatusOK {
			status = StatusDegraded
		}
	}

	/* ---------- LOG-BASED SIGNALS ---------- */

	logEntries := a.logger.GetLast(100)

	fetchFailures := 0
	panicCount := 0

	for _, entry := range logEntries {
		if entry.Level == logs.WARN &&
			strings.Contains(entry.Message, "fetch failed") {
			fetchFailures++
		}

		if entry.Level == logs.ERROR &&
			strings.Contains(entry.Message, "panic") {
			panicCount++
		}
	}

	if fetchFailures >= 3 {
		signals = append(signals,
			"Repeated feed fetch failures detected in logs",
		)
		recommendations = append(recommendations,
			"Investigate upstream connectivity or rate limiting",
		)
		if status == StatusOK {
			status = StatusDegraded
		}
	}

	if panicCount > 0 {
		signals = append(signals,
			"Adapter panics detected in logs",
		)
		recommendations = append(recommendations,
			"Inspect stack traces and stabilize the offending adapter",
		)
		status = StatusCritical
	}

	/* ---------- SUMMARY ---------- */

	summary := "All feeds serving live data"
	if status != StatusOK {
		summary = "Data quality issues detected"
	}

	return Report{
		OverallStatus:   status,
		Summary:         summary,
		Signals:         signals,
		Recommendations: recommendations,
	}
}
