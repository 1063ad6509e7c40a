package feeds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
	"macau-pulse/internal/upstream"
)

// newTestClient serves canned payloads keyed by URL-path fragment, from
// one server standing in for both the indicator gateway and the
// document endpoint. String payloads are written raw (CSV), everything
// else is JSON-encoded.
func newTestClient(t *testing.T, routes map[string]any) (*Client, *metrics.Registry) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for fragment, payload := range routes {
			if !strings.Contains(r.URL.Path, fragment) {
				continue
			}
			switch p := payload.(type) {
			case string:
				_, _ = w.Write([]byte(p))
			case int:
				http.Error(w, "upstream error", p)
			default:
				_ = json.NewEncoder(w).Encode(p)
			}
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	reg := metrics.NewRegistry()
	logger := logs.NewLogger(100, logs.DEBUG)
	indicators := upstream.NewIndicatorClient(srv.URL, "test-appcode", time.Second, logger)
	documents := upstream.NewDocumentClient(srv.URL, time.Second, logger)

	return NewClient(indicators, documents, "", logger, reg), reg
}

func indicatorPayload(values ...map[string]any) map[string]any {
	arr := make([]any, len(values))
	for i, v := range values {
		arr[i] = v
	}
	return map[string]any{"values": arr}
}
