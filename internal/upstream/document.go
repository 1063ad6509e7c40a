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

// DocumentClient talks to the open-data document-download family of
// endpoints. These need no credential; each document is addressed by a
// fixed UUID and served as JSON, JSON-in-text, or CSV text.
type DocumentClient struct {
	baseURL string
	client  *http.Client
	logger  *logs.Logger
}

func NewDocumentClient(baseURL string, timeout time.Duration, logger *logs.Logger) *DocumentClient {
	return &DocumentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchJSON downloads a document and decodes it as JSON. Endpoints that
// mislabel JSON as text/plain are handled by decoding the body
// regardless of the declared content type.
func (c *DocumentClient) FetchJSON(ctx context.Context, docID string) (any, error) {
	body, err := c.download(ctx, docID, url.Values{"lang": {"TC"}, "format": {"json"}})
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("document %s: %w", docID, err)
	}
	return payload, nil
}

// FetchText downloads a document as raw text, for CSV datasets.
// Extra query parameters (download tokens) are merged over the defaults.
func (c *DocumentClient) FetchText(ctx context.Context, docID string, params url.Values) (string, error) {
	q := url.Values{"lang": {"TC"}}
	for k, vs := range params {
		q[k] = vs
	}

	body, err := c.download(ctx, docID, q)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *DocumentClient) download(ctx context.Context, docID string, q url.Values) ([]byte, error) {
	u := c.baseURL + "/" + docID + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("document request failed: " + docID + ": " + err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(fmt.Sprintf("document %s returned %d", docID, resp.StatusCode))
		return nil, fmt.Errorf("document %s returned %d", docID, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Items normalizes the two shapes the document endpoints serve records
// in: a bare array, or an object with a "data" array. Returns nil for
// anything else so adapters can treat the response as malformed.
func Items(payload any) []map[string]any {
	var raw []any
	switch p := payload.(type) {
	case []any:
		raw = p
	case map[string]any:
		arr, ok := p["data"].([]any)
		if !ok {
			return nil
		}
		raw = arr
	default:
		return nil
	}

	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// First returns the record to use from endpoints that serve either a
// single object or a one-element array.
func First(payload any) (map[string]any, bool) {
	switch p := payload.(type) {
	case map[string]any:
		return p, true
	case []any:
		if len(p) > 0 {
			if m, ok := p[0].(map[string]any); ok {
				return m, true
			}
		}
	}
	return nil, false
}
