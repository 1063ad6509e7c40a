package config

import (
	"os"
	"strconv"
	"time"

	"macau-pulse/internal/logs"
)

// Config holds everything the server needs to run. Defaults are the
// production Macau open-data endpoints; environment variables override
// individual fields for staging and tests.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string

	// IndicatorBaseURL is the DSEC statistics gateway root.
	IndicatorBaseURL string

	// DocumentBaseURL is the document-download API root.
	DocumentBaseURL string

	// AppCode authenticates indicator requests. The public dashboard
	// credential ships as the default; deployments can rotate it via env.
	AppCode string

	// TrademarkToken unlocks the trademark CSV download.
	TrademarkToken string

	// RequestTimeout bounds each upstream HTTP request.
	RequestTimeout time.Duration

	// ParkingInterval and WeatherInterval set the push-poll cadence.
	ParkingInterval time.Duration
	WeatherInterval time.Duration

	// LogBufferSize is the ring logger capacity; LogLevel its floor.
	LogBufferSize int
	LogLevel      logs.Level
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		IndicatorBaseURL: "https://dsec.apigateway.data.gov.mo/public",
		DocumentBaseURL:  "https://api.data.gov.mo/document/download",
		AppCode:          "09d43a591fba407fb862412970667de4",
		TrademarkToken:   "ZsJvwp4NMUMAsFeXeFoX3nhw0SBhmBYD",
		RequestTimeout:   15 * time.Second,
		ParkingInterval:  30 * time.Second,
		WeatherInterval:  10 * time.Minute,
		LogBufferSize:    1000,
		LogLevel:         logs.DEBUG,
	}
}

// FromEnv creates a Config from environment variables, falling back to
// defaults for anything unset or unparsable.
//
// Environment variables:
//   - PULSE_LISTEN_ADDR: HTTP listen address (default ":8080")
//   - PULSE_INDICATOR_BASE_URL: DSEC gateway root
//   - PULSE_DOCUMENT_BASE_URL: document-download root
//   - PULSE_APP_CODE: indicator gateway credential
//   - PULSE_TRADEMARK_TOKEN: trademark CSV token
//   - PULSE_REQUEST_TIMEOUT_SECONDS: upstream request timeout
//   - PULSE_PARKING_INTERVAL_SECONDS: parking push-poll cadence
//   - PULSE_WEATHER_INTERVAL_SECONDS: weather push-poll cadence
//   - PULSE_LOG_BUFFER_SIZE: ring logger capacity
//   - PULSE_LOG_LEVEL: DEBUG | INFO | WARN | ERROR
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("PULSE_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PULSE_INDICATOR_BASE_URL"); v != "" {
		cfg.IndicatorBaseURL = v
	}
	if v := os.Getenv("PULSE_DOCUMENT_BASE_URL"); v != "" {
		cfg.DocumentBaseURL = v
	}
	if v := os.Getenv("PULSE_APP_CODE"); v != "" {
		cfg.AppCode = v
	}
	if v := os.Getenv("PULSE_TRADEMARK_TOKEN"); v != "" {
		cfg.TrademarkToken = v
	}
	if n, ok := envSeconds("PULSE_REQUEST_TIMEOUT_SECONDS"); ok {
		cfg.RequestTimeout = n
	}
	if n, ok := envSeconds("PULSE_PARKING_INTERVAL_SECONDS"); ok {
		cfg.ParkingInterval = n
	}
	if n, ok := envSeconds("PULSE_WEATHER_INTERVAL_SECONDS"); ok {
		cfg.WeatherInterval = n
	}
	if v := os.Getenv("PULSE_LOG_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LogBufferSize = n
		}
	}
	if v := os.Getenv("PULSE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = logs.ParseLevel(v)
	}

	return cfg
}

func envSeconds(name string) (time.Duration, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}
