package feeds

import (
	"errors"

	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
	"macau-pulse/internal/upstream"
)

// ErrNoData marks a response that survived transport but failed
// structural validation: no usable records after field fallbacks.
var ErrNoData = errors.New("upstream returned no usable records")

// Client implements every feed adapter as a method. Each adapter talks
// to exactly one upstream and normalizes its response into this
// package's record shape; all failures surface as errors, never panics.
type Client struct {
	indicators     *upstream.IndicatorClient
	documents      *upstream.DocumentClient
	trademarkToken string
	logger         *logs.Logger
	metrics        *metrics.Registry
}

func NewClient(
	indicators *upstream.IndicatorClient,
	documents *upstream.DocumentClient,
	trademarkToken string,
	logger *logs.Logger,
	metricsRegistry *metrics.Registry,
) *Client {
	return &Client{
		indicators:     indicators,
		documents:      documents,
		trademarkToken: trademarkToken,
		logger:         logger,
		metrics:        metricsRegistry,
	}
}
