package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"macau-pulse/internal/cache"
	"macau-pulse/internal/feeds"
	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPollSource struct {
	mu          sync.Mutex
	parkingErr  error
	weatherErr  error
	parkingHits int
	weatherHits int
}

func (s *stubPollSource) FetchParking(ctx context.Context) ([]feeds.ParkingLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parkingHits++
	if s.parkingErr != nil {
		return nil, s.parkingErr
	}
	return []feeds.ParkingLot{{Name: "Praia Grande", CarSpaces: 120}}, nil
}

func (s *stubPollSource) FetchWeather(ctx context.Context) (*feeds.Weather, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weatherHits++
	if s.weatherErr != nil {
		return nil, s.weatherErr
	}
	return &feeds.Weather{Temperature: 28.5, Condition: "Cloudy"}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	frames []Message
}

func (p *recordingPublisher) Publish(topic string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, Message{Type: topic, Data: data})
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.frames))
	for i, f := range p.frames {
		out[i] = f.Type
	}
	return out
}

func noRetry() RetryPolicy {
	return RetryPolicy{MaxRetries: 0, BaseBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
}

func TestPoller_PrimesAndPublishes(t *testing.T) {
	reg := metrics.NewRegistry()
	store := cache.New(reg)
	source := &stubPollSource{}
	pub := &recordingPublisher{}

	poller := NewPoller(source, pub, store, feeds.DefaultPolicy(), PollConfig{
		ParkingInterval: time.Hour,
		WeatherInterval: time.Hour,
		Retry:           noRetry(),
	}, logs.NewLogger(100, logs.DEBUG), reg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	// The priming pass runs before the first tick.
	require.Eventually(t, func() bool {
		return len(pub.topics()) >= 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	assert.ElementsMatch(t, []string{TopicParking, TopicWeather}, pub.topics())

	_, ok := store.Get(string(feeds.KeyParking))
	assert.True(t, ok, "poll results must land in the cache")
	_, ok = store.Get(string(feeds.KeyWeather))
	assert.True(t, ok)
}

func TestPoller_TicksRepoll(t *testing.T) {
	reg := metrics.NewRegistry()
	store := cache.New(reg)
	source := &stubPollSource{}
	pub := &recordingPublisher{}

	poller := NewPoller(source, pub, store, feeds.DefaultPolicy(), PollConfig{
		ParkingInterval: 20 * time.Millisecond,
		WeatherInterval: time.Hour,
		Retry:           noRetry(),
	}, logs.NewLogger(100, logs.DEBUG), reg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.parkingHits >= 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestPoller_FailedPollPublishesNothing(t *testing.T) {
	reg := metrics.NewRegistry()
	store := cache.New(reg)
	source := &stubPollSource{
		parkingErr: errors.New("upstream down"),
		weatherErr: errors.New("upstream down"),
	}
	pub := &recordingPublisher{}

	poller := NewPoller(source, pub, store, feeds.DefaultPolicy(), PollConfig{
		ParkingInterval: time.Hour,
		WeatherInterval: time.Hour,
		Retry:           noRetry(),
	}, logs.NewLogger(100, logs.DEBUG), reg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return reg.Snapshot()[string(metrics.RealtimePollFailuresTotal)] >= 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	assert.Empty(t, pub.topics())
	_, ok := store.Get(string(feeds.KeyParking))
	assert.False(t, ok, "failures must not be cached")
}

func TestPoller_RetriesBeforeGivingUp(t *testing.T) {
	reg := metrics.NewRegistry()
	store := cache.New(reg)
	source := &stubPollSource{
		parkingErr: errors.New("flaky"),
		weatherErr: errors.New("flaky"),
	}
	pub := &recordingPublisher{}

	poller := NewPoller(source, pub, store, feeds.DefaultPolicy(), PollConfig{
		ParkingInterval: time.Hour,
		WeatherInterval: time.Hour,
		Retry: RetryPolicy{
			MaxRetries:  2,
			BaseBackoff: time.Millisecond,
			MaxBackoff:  2 * time.Millisecond,
		},
	}, logs.NewLogger(100, logs.DEBUG), reg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.parkingHits >= 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
