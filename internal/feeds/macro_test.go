package feeds

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchGDP(t *testing.T) {
	t.Run("parses_period_into_year_and_quarter", func(t *testing.T) {
		client, _ := newTestClient(t, map[string]any{
			"KeyIndicator/GDP": indicatorPayload(
				map[string]any{"periodString": "20241", "value": 104.2, "change_rate": 3.1},
				map[string]any{"periodString": "20242", "value": 106.8},
			),
		})

		points, err := client.FetchGDP(context.Background())
		require.NoError(t, err)
		require.Len(t, points, 2)

		assert.Equal(t, 2024, points[0].Year)
		assert.Equal(t, 1, points[0].Quarter)
		assert.Equal(t, 104.2, points[0].Value)
		assert.Equal(t, 3.1, points[0].ChangeRate)
		assert.Equal(t, 2, points[1].Quarter)
	})

	t.Run("drops_rows_without_a_value", func(t *testing.T) {
		client, _ := newTestClient(t, map[string]any{
			"KeyIndicator/GDP": indicatorPayload(
				map[string]any{"periodString": "20241"},
				map[string]any{"periodString": "20242", "value": 106.8},
				map[string]any{"value": 99.0}, // no period either
			),
		})

		points, err := client.FetchGDP(context.Background())
		require.NoError(t, err)
		assert.Len(t, points, 1)
	})

	t.Run("upstream_error_propagates", func(t *testing.T) {
		client, _ := newTestClient(t, map[string]any{
			"KeyIndicator/GDP": 503,
		})

		_, err := client.FetchGDP(context.Background())
		assert.Error(t, err)
	})

	t.Run("envelope_without_values_is_no_data", func(t *testing.T) {
		client, _ := newTestClient(t, map[string]any{
			"KeyIndicator/GDP": map[string]any{"title": "GDP"},
		})

		_, err := client.FetchGDP(context.Background())
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestFetchVisitors_KeepsLastTwelveMonths(t *testing.T) {
	values := make([]map[string]any, 0, 18)
	for i := 1; i <= 18; i++ {
		values = append(values, map[string]any{
			"periodString": fmt.Sprintf("2023%02d", i),
			"value":        float64(1000 * i),
		})
	}

	client, _ := newTestClient(t, map[string]any{
		"KeyIndicator/VisitorArrivals": indicatorPayload(values...),
	})

	arrivals, err := client.FetchVisitors(context.Background())
	require.NoError(t, err)

	require.Len(t, arrivals, 12)
	assert.Equal(t, 7000, arrivals[0].Value, "window keeps the newest readings")
	assert.Equal(t, 18000, arrivals[11].Value)
}

func TestFetchUnemployment_KeepsLastEight(t *testing.T) {
	values := make([]map[string]any, 0, 10)
	for i := 1; i <= 10; i++ {
		values = append(values, map[string]any{
			"period": fmt.Sprintf("2024-%02d", i),
			"rate":   1.5 + float64(i)/10,
		})
	}

	client, _ := newTestClient(t, map[string]any{
		"KeyIndicator/UnemploymentRate": indicatorPayload(values...),
	})

	readings, err := client.FetchUnemployment(context.Background())
	require.NoError(t, err)
	assert.Len(t, readings, 8)
}

func TestFetchWorkers_FieldFallbacks(t *testing.T) {
	client, _ := newTestClient(t, map[string]any{
		"KeyIndicator/NonResidentWorkers": indicatorPayload(
			map[string]any{"industry": "Hotels", "country_of_origin": "Mainland China", "count": 45000.0},
			map[string]any{"source": "Philippines", "value": 30000.0},
		),
	})

	workers, err := client.FetchWorkers(context.Background())
	require.NoError(t, err)
	require.Len(t, workers, 2)

	assert.Equal(t, "Mainland China", workers[0].Origin)
	assert.Equal(t, 45000, workers[0].Count)

	assert.Equal(t, Unknown, workers[1].Industry, "missing descriptive fields sentinel to Unknown")
	assert.Equal(t, "Philippines", workers[1].Origin)
	assert.Equal(t, 30000, workers[1].Count)
}
