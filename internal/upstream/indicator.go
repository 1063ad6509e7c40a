package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"macau-pulse/internal/logs"
)

// IndicatorClient talks to the DSEC statistics gateway. Every indicator
// endpoint shares the same quirks: requests are POSTs authorized with an
// APPCODE header, and the payload may arrive wrapped in a nested JSON
// envelope.
type IndicatorClient struct {
	baseURL string
	appCode string
	client  *http.Client
	logger  *logs.Logger
}

// IndicatorResponse is the unwrapped gateway payload.
type IndicatorResponse struct {
	Values []map[string]any
	Title  string
	Unit   string
}

func NewIndicatorClient(baseURL, appCode string, timeout time.Duration, logger *logs.Logger) *IndicatorClient {
	return &IndicatorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		appCode: appCode,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Fetch POSTs to the given indicator path and unwraps the envelope.
func (c *IndicatorClient) Fetch(ctx context.Context, indicator string, params map[string]string) (*IndicatorResponse, error) {
	u := c.baseURL + "/" + strings.TrimLeft(indicator, "/")
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "APPCODE "+c.appCode)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("indicator request failed: " + indicator + ": " + err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(fmt.Sprintf("indicator %s returned %d", indicator, resp.StatusCode))
		return nil, fmt.Errorf("indicator %s returned %d", indicator, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("indicator %s: %w", indicator, err)
	}

	payload := unwrapEnvelope(raw)

	out := &IndicatorResponse{
		Title: PickString(payload, "", "title"),
		Unit:  PickString(payload, "", "unit"),
	}
	if values, ok := payload["values"].([]any); ok {
		out.Values = make([]map[string]any, 0, len(values))
		for _, v := range values {
			if m, ok := v.(map[string]any); ok {
				out.Values = append(out.Values, m)
			}
		}
	}
	return out, nil
}

// unwrapEnvelope handles the gateway's nesting: the document may arrive
// as a JSON string embedded under "data", as a "value" object, or
// directly at the top level.
func unwrapEnvelope(raw map[string]any) map[string]any {
	if s, ok := raw["data"].(string); ok {
		var inner map[string]any
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			if v, ok := inner["value"].(map[string]any); ok {
				return v
			}
			return inner
		}
	}
	if v, ok := raw["value"].(map[string]any); ok {
		return v
	}
	return raw
}
