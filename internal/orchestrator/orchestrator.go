package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"macau-pulse/internal/cache"
	"macau-pulse/internal/feeds"
	"macau-pulse/internal/health"
	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
)

// Orchestrator produces one composite snapshot per call by running
// every feed's get-or-fetch sequence, grouped by category so a failure
// in one category cannot blank out the others.
type Orchestrator struct {
	cache   *cache.Cache
	source  Source
	policy  feeds.Policy
	tracker *health.Tracker
	metrics *metrics.Registry
	logger  *logs.Logger

	// Overlapping snapshot builds racing on the same stale key would
	// each hit the upstream; singleflight collapses them into one
	// fetch whose result all callers share.
	sf singleflight.Group
}

func New(
	cacheStore *cache.Cache,
	source Source,
	policy feeds.Policy,
	tracker *health.Tracker,
	metricsRegistry *metrics.Registry,
	logger *logs.Logger,
) *Orchestrator {
	return &Orchestrator{
		cache:   cacheStore,
		source:  source,
		policy:  policy,
		tracker: tracker,
		metrics: metricsRegistry,
		logger:  logger,
	}
}

// BuildSnapshot is the sole public aggregation entry point. It always
// returns a snapshot: absent fields mean the feed failed this pass,
// which callers render as placeholders, never as an error.
//
// Categories run in a fixed order; each category's loop is wrapped in
// a panic boundary so an adapter blowing up aborts only the remaining
// feeds of its own category.
func (o *Orchestrator) BuildSnapshot(ctx context.Context) *feeds.Snapshot {
	o.metrics.Inc(metrics.SnapshotBuildsTotal)
	o.logger.Debug("snapshot build started")

	snap := &feeds.Snapshot{LastUpdated: time.Now()}

	o.runCategory(feeds.CategoryMacro, func() {
		snap.GDP = resolve(ctx, o, feeds.KeyGDP, o.source.FetchGDP)
		snap.RetailSales = resolve(ctx, o, feeds.KeyRetail, o.source.FetchRetailSales)
		snap.Visitors = resolve(ctx, o, feeds.KeyVisitors, o.source.FetchVisitors)
		snap.HotelRates = resolve(ctx, o, feeds.KeyHotelRates, o.source.FetchHotelOccupancy)
		snap.Unemployment = resolve(ctx, o, feeds.KeyUnemployment, o.source.FetchUnemployment)
		snap.Workers = resolve(ctx, o, feeds.KeyWorkers, o.source.FetchWorkers)
	})

	o.runCategory(feeds.CategoryRealtime, func() {
		snap.Parking = resolve(ctx, o, feeds.KeyParking, o.source.FetchParking)
		snap.Weather = resolve(ctx, o, feeds.KeyWeather, o.source.FetchWeather)
		snap.Borders = resolve(ctx, o, feeds.KeyBorders, o.source.FetchBorders)
		snap.Flights = resolve(ctx, o, feeds.KeyFlights, o.source.FetchFlights)
	})

	o.runCategory(feeds.CategoryPOI, func() {
		snap.Restaurants = resolve(ctx, o, feeds.KeyRestaurants, o.source.FetchRestaurants)
		snap.Hotels = resolve(ctx, o, feeds.KeyHotels, o.source.FetchHotels)
		snap.Agencies = resolve(ctx, o, feeds.KeyAgencies, o.source.FetchAgencies)
		snap.Events = resolve(ctx, o, feeds.KeyEvents, o.source.FetchEvents)
		snap.Buses = resolve(ctx, o, feeds.KeyBuses, o.source.FetchBuses)
		snap.Pharmacies = resolve(ctx, o, feeds.KeyPharmacies, o.source.FetchPharmacies)
	})

	o.runCategory(feeds.CategoryInsight, func() {
		snap.Population = resolve(ctx, o, feeds.KeyPopulation, o.source.FetchPopulation)
		snap.Property = resolve(ctx, o, feeds.KeyProperty, o.source.FetchProperty)
		snap.Companies = resolve(ctx, o, feeds.KeyCompanies, o.source.FetchCompanies)
		snap.WiFi = resolve(ctx, o, feeds.KeyWiFi, o.source.FetchWiFi)
		snap.Trademarks = resolve(ctx, o, feeds.KeyTrademarks, o.source.FetchTrademarks)
	})

	o.logger.Debug("snapshot build finished")
	return snap
}

// runCategory is the per-category failure boundary: a panic aborts the
// remaining feeds of this category only. Fields assigned before the
// panic stay assigned.
func (o *Orchestrator) runCategory(cat feeds.Category, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			o.metrics.Inc(metrics.CategoryAbortsTotal)
			o.logger.Error(fmt.Sprintf("panic in %s feeds, remaining feeds of the category skipped: %v", cat, r))
		}
	}()
	fn()
}

// resolve runs one feed's get-or-fetch sequence and returns the zero
// value (absent) on any failure. Fetch errors are swallowed here, at
// the lowest level: they surface only as absence in the snapshot.
func resolve[T any](ctx context.Context, o *Orchestrator, key feeds.Key, fetch func(context.Context) (T, error)) T {
	var zero T

	if cached, ok := o.cache.Get(string(key)); ok {
		if v, ok := cached.(T); ok {
			return v
		}
		// Foreign payload shape under this key; refetch.
	}

	o.metrics.Inc(metrics.FeedFetchesTotal)

	v, err, _ := o.sf.Do(string(key), func() (any, error) {
		res, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		o.cache.Put(string(key), res, o.policy.TTLFor(key))
		return res, nil
	})
	if err != nil {
		o.metrics.Inc(metrics.FeedFetchFailuresTotal)
		o.tracker.MarkFailure(key, err.Error())
		o.logger.Warn(string(key) + " fetch failed: " + err.Error())
		return zero
	}

	o.tracker.MarkSuccess(key)
	return v.(T)
}
