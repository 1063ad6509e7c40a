package realtime

import (
	"context"
	"time"

	"macau-pulse/internal/cache"
	"macau-pulse/internal/feeds"
	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
)

// PollSource is the slice of the feed client the poller needs: only
// the two feeds fresh enough to be worth pushing.
type PollSource interface {
	FetchParking(ctx context.Context) ([]feeds.ParkingLot, error)
	FetchWeather(ctx context.Context) (*feeds.Weather, error)
}

// Publisher receives successful poll results. *Hub in production.
type Publisher interface {
	Publish(topic string, data any)
}

// PollConfig sets the per-topic poll cadence.
type PollConfig struct {
	ParkingInterval time.Duration
	WeatherInterval time.Duration
	Retry           RetryPolicy
}

func DefaultPollConfig() PollConfig {
	return PollConfig{
		ParkingInterval: 30 * time.Second,
		WeatherInterval: 10 * time.Minute,
		Retry:           DefaultRetryPolicy(),
	}
}

// Poller refreshes the pushable realtime feeds on their own cadence,
// independent of snapshot requests. Every successful poll lands in the
// cache too, so the next snapshot build gets a hit instead of a fetch.
type Poller struct {
	source  PollSource
	hub     Publisher
	cache   *cache.Cache
	policy  feeds.Policy
	config  PollConfig
	logger  *logs.Logger
	metrics *metrics.Registry
}

func NewPoller(
	source PollSource,
	hub Publisher,
	cacheStore *cache.Cache,
	policy feeds.Policy,
	config PollConfig,
	logger *logs.Logger,
	metricsRegistry *metrics.Registry,
) *Poller {
	return &Poller{
		source:  source,
		hub:     hub,
		cache:   cacheStore,
		policy:  policy,
		config:  config,
		logger:  logger,
		metrics: metricsRegistry,
	}
}

// Start begins the poll loops
// Stops immediately when the ctx is cancelled
func (p *Poller) Start(ctx context.Context) {
	parking := time.NewTicker(p.config.ParkingInterval)
	weather := time.NewTicker(p.config.WeatherInterval)
	defer parking.Stop()
	defer weather.Stop()

	// Prime both topics so the first websocket client does not wait a
	// full interval for data.
	p.pollParking(ctx)
	p.pollWeather(ctx)

	for {
		select {
		case <-parking.C:
			p.pollParking(ctx)
		case <-weather.C:
			p.pollWeather(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) pollParking(ctx context.Context) {
	p.metrics.Inc(metrics.RealtimePollsTotal)

	var lots []feeds.ParkingLot
	err := Retry(ctx, p.config.Retry, func() error {
		var err error
		lots, err = p.source.FetchParking(ctx)
		return err
	})
	if err != nil {
		p.metrics.Inc(metrics.RealtimePollFailuresTotal)
		p.logger.Warn("parking poll failed: " + err.Error())
		return
	}

	p.cache.Put(string(feeds.KeyParking), lots, p.policy.TTLFor(feeds.KeyParking))
	p.hub.Publish(TopicParking, lots)
}

func (p *Poller) pollWeather(ctx context.Context) {
	p.metrics.Inc(metrics.RealtimePollsTotal)

	var report *feeds.Weather
	err := Retry(ctx, p.config.Retry, func() error {
		var err error
		report, err = p.source.FetchWeather(ctx)
		return err
	})
	if err != nil {
		p.metrics.Inc(metrics.RealtimePollFailuresTotal)
		p.logger.Warn("weather poll failed: " + err.Error())
		return
	}

	p.cache.Put(string(feeds.KeyWeather), report, p.policy.TTLFor(feeds.KeyWeather))
	p.hub.Publish(TopicWeather, report)
}
