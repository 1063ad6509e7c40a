package main

import (
	"context"
	"log"
	"net/http"

	"macau-pulse/internal/api"
	"macau-pulse/internal/cache"
	"macau-pulse/internal/config"
	"macau-pulse/internal/feeds"
	"macau-pulse/internal/health"
	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
	"macau-pulse/internal/orchestrator"
	"macau-pulse/internal/realtime"
	"macau-pulse/internal/upstream"
)

func main() {
	// Root context
	ctx := context.Background()

	cfg := config.FromEnv()

	// Logger
	logger := logs.NewLogger(cfg.LogBufferSize, cfg.LogLevel)

	// Metrics
	metricsRegistry := metrics.NewRegistry()

	// Cache
	cacheStore := cache.New(metricsRegistry)

	// Upstream clients
	indicators := upstream.NewIndicatorClient(cfg.IndicatorBaseURL, cfg.AppCode, cfg.RequestTimeout, logger)
	documents := upstream.NewDocumentClient(cfg.DocumentBaseURL, cfg.RequestTimeout, logger)

	// Feed adapters
	client := feeds.NewClient(indicators, documents, cfg.TrademarkToken, logger, metricsRegistry)

	// Feed health
	tracker := health.NewTracker(health.DefaultThresholds(), metricsRegistry)

	// Orchestration
	orch := orchestrator.New(
		cacheStore,
		client,
		feeds.DefaultPolicy(),
		tracker,
		metricsRegistry,
		logger,
	)

	// Realtime push
	hub := realtime.NewHub(logger, metricsRegistry)

	pollConfig := realtime.DefaultPollConfig()
	pollConfig.ParkingInterval = cfg.ParkingInterval
	pollConfig.WeatherInterval = cfg.WeatherInterval

	poller := realtime.NewPoller(
		client,
		hub,
		cacheStore,
		feeds.DefaultPolicy(),
		pollConfig,
		logger,
		metricsRegistry,
	)
	go poller.Start(ctx)

	// API
	handler := api.NewHandler(
		orch,
		cacheStore,
		tracker,
		metricsRegistry,
		logger,
		hub,
	)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(handler, logger),
	}

	logger.Info("server started on " + cfg.ListenAddr)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
