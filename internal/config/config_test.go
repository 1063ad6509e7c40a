package config

import (
	"testing"
	"time"

	"macau-pulse/internal/logs"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults_when_unset", func(t *testing.T) {
		cfg := FromEnv()

		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, "https://dsec.apigateway.data.gov.mo/public", cfg.IndicatorBaseURL)
		assert.Equal(t, 30*time.Second, cfg.ParkingInterval)
		assert.Equal(t, 10*time.Minute, cfg.WeatherInterval)
		assert.Equal(t, logs.DEBUG, cfg.LogLevel)
	})

	t.Run("env_overrides", func(t *testing.T) {
		t.Setenv("PULSE_LISTEN_ADDR", ":9090")
		t.Setenv("PULSE_APP_CODE", "rotated")
		t.Setenv("PULSE_PARKING_INTERVAL_SECONDS", "60")
		t.Setenv("PULSE_LOG_LEVEL", "warn")

		cfg := FromEnv()

		assert.Equal(t, ":9090", cfg.ListenAddr)
		assert.Equal(t, "rotated", cfg.AppCode)
		assert.Equal(t, time.Minute, cfg.ParkingInterval)
		assert.Equal(t, logs.WARN, cfg.LogLevel)
	})

	t.Run("garbage_numbers_keep_defaults", func(t *testing.T) {
		t.Setenv("PULSE_REQUEST_TIMEOUT_SECONDS", "soon")
		t.Setenv("PULSE_LOG_BUFFER_SIZE", "-5")

		cfg := FromEnv()

		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 1000, cfg.LogBufferSize)
	})
}
