package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"macau-pulse/internal/logs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndicatorTestClient(t *testing.T, handler http.HandlerFunc) *IndicatorClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewIndicatorClient(srv.URL, "test-appcode", time.Second, logs.NewLogger(50, logs.DEBUG))
}

func TestIndicatorFetch_RequestShape(t *testing.T) {
	var gotMethod, gotAuth, gotContentType, gotLang string

	client := newIndicatorTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotLang = r.URL.Query().Get("lang")
		_ = json.NewEncoder(w).Encode(map[string]any{"values": []any{}})
	})

	_, err := client.Fetch(context.Background(), "KeyIndicator/GDP", map[string]string{"lang": "TC"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod, "the gateway only answers POST")
	assert.Equal(t, "APPCODE test-appcode", gotAuth)
	assert.Contains(t, gotContentType, "application/x-www-form-urlencoded")
	assert.Equal(t, "TC", gotLang)
}

func TestIndicatorFetch_EnvelopeVariants(t *testing.T) {
	values := []any{map[string]any{"periodString": "202401", "value": 104.2}}

	t.Run("data_as_json_string", func(t *testing.T) {
		inner, _ := json.Marshal(map[string]any{"value": map[string]any{"values": values, "title": "GDP"}})
		client := newIndicatorTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": string(inner)})
		})

		resp, err := client.Fetch(context.Background(), "KeyIndicator/GDP", nil)
		require.NoError(t, err)
		require.Len(t, resp.Values, 1)
		assert.Equal(t, "GDP", resp.Title)
		assert.Equal(t, "202401", resp.Values[0]["periodString"])
	})

	t.Run("value_object", func(t *testing.T) {
		client := newIndicatorTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"value": map[string]any{"values": values}})
		})

		resp, err := client.Fetch(context.Background(), "KeyIndicator/GDP", nil)
		require.NoError(t, err)
		assert.Len(t, resp.Values, 1)
	})

	t.Run("top_level", func(t *testing.T) {
		client := newIndicatorTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"values": values, "unit": "MOP million"})
		})

		resp, err := client.Fetch(context.Background(), "KeyIndicator/GDP", nil)
		require.NoError(t, err)
		assert.Len(t, resp.Values, 1)
		assert.Equal(t, "MOP million", resp.Unit)
	})
}

func TestIndicatorFetch_Errors(t *testing.T) {
	t.Run("non_200", func(t *testing.T) {
		client := newIndicatorTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "denied", http.StatusForbidden)
		})

		_, err := client.Fetch(context.Background(), "KeyIndicator/GDP", nil)
		assert.Error(t, err)
	})

	t.Run("malformed_body", func(t *testing.T) {
		client := newIndicatorTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		})

		_, err := client.Fetch(context.Background(), "KeyIndicator/GDP", nil)
		assert.Error(t, err)
	})
}
