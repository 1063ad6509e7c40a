package feeds

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"macau-pulse/internal/metrics"
	"macau-pulse/internal/upstream"
)

// Market-insight upstream addresses.
const (
	docPopulation = "7a674216-9621-4516-8689-141496267012"
	docProperty   = "4b772131-3624-4722-8708-255114955264"
	docWiFi       = "1d253e98-2793-42ba-842e-472774541116"
	docTrademarks = "8ff5d0ef-235c-4847-a4ca-0f9d5b515bb6"

	indicatorCompanies = "KeyIndicator/NewlyIncorporatedCompanies"
)

// A trademark series with fewer points than this cannot be charted
// meaningfully; the adapter degrades to the default series instead.
const minTrademarkPoints = 3

// FetchPopulation returns population counts by district.
func (c *Client) FetchPopulation(ctx context.Context) ([]PopulationDistrict, error) {
	items, err := c.poiItems(ctx, docPopulation)
	if err != nil {
		return nil, err
	}

	out := make([]PopulationDistrict, 0, len(items))
	for _, item := range items {
		out = append(out, PopulationDistrict{
			District:   pick(item, Unknown, "district_name", "district"),
			Population: upstream.IntOr(item, 0, "population_total", "population"),
			Density:    upstream.FloatOr(item, 0, "density"),
		})
	}
	return out, nil
}

// FetchProperty returns average transaction prices by district and
// month. Price is the primary attribute: zero-priced records are noise
// and get dropped.
func (c *Client) FetchProperty(ctx context.Context) ([]PropertyTransaction, error) {
	items, err := c.poiItems(ctx, docProperty)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]PropertyTransaction, 0, len(items))
	for _, item := range items {
		price := upstream.FloatOr(item, 0, "avg_price_sqm", "avg_price")
		if price <= 0 {
			continue
		}

		year := upstream.IntOr(item, now.Year(), "year")
		month := upstream.IntOr(item, int(now.Month()), "month")

		// Some vintages report a combined "2024-01" period instead.
		if period := pick(item, "", "period"); strings.Contains(period, "-") {
			parts := strings.SplitN(period, "-", 2)
			if y, err := strconv.Atoi(parts[0]); err == nil {
				year = y
			}
			if m, err := strconv.Atoi(parts[1]); err == nil {
				month = m
			}
		}

		out = append(out, PropertyTransaction{
			Year:        year,
			Month:       month,
			District:    pick(item, Unknown, "district"),
			AvgPriceSqm: price,
		})
	}
	return out, nil
}

// FetchCompanies returns the newly-incorporated-companies trend:
// newest reading, previous reading, and month-over-month growth.
func (c *Client) FetchCompanies(ctx context.Context) (*CompanyStats, error) {
	resp, err := c.indicators.Fetch(ctx, indicatorCompanies, map[string]string{"lang": "TC"})
	if err != nil {
		return nil, err
	}
	if resp.Values == nil {
		return nil, ErrNoData
	}

	points := make([]CompanyPoint, 0, len(resp.Values))
	for _, item := range resp.Values {
		period := pick(item, "", "periodString", "period")
		value, ok := pickInt(item, "value")
		if period == "" || !ok {
			continue
		}
		points = append(points, CompanyPoint{Period: period, Value: value})
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Period > points[j].Period
	})

	current := points[0]
	previous := CompanyPoint{}
	if len(points) > 1 {
		previous = points[1]
	}

	growth := 0.0
	if previous.Value != 0 {
		growth = float64(current.Value-previous.Value) / float64(previous.Value) * 100
	}

	return &CompanyStats{
		LatestPeriod: formatPeriod(current.Period),
		Current:      current.Value,
		Previous:     previous.Value,
		GrowthPct:    growth,
		History:      points,
	}, nil
}

// FetchWiFi returns free government WiFi hotspots. Position is the
// primary attribute.
func (c *Client) FetchWiFi(ctx context.Context) ([]WiFiSpot, error) {
	items, err := c.poiItems(ctx, docWiFi)
	if err != nil {
		return nil, err
	}

	out := make([]WiFiSpot, 0, len(items))
	for _, item := range items {
		lat := upstream.FloatOr(item, 0, "latitude", "lat")
		lng := upstream.FloatOr(item, 0, "longitude", "lng")
		if lat == 0 || lng == 0 {
			continue
		}
		out = append(out, WiFiSpot{
			Name:      pick(item, Unknown, "location_name", "name"),
			Latitude:  lat,
			Longitude: lng,
		})
	}
	return out, nil
}

// FetchTrademarks returns monthly trademark application counts parsed
// from the open-data CSV. Unlike the other adapters this one never
// errors: an unreachable upstream or a too-sparse series both degrade
// to the hardcoded default series, flagged in the quality record.
func (c *Client) FetchTrademarks(ctx context.Context) (*TrademarkReport, error) {
	params := url.Values{"isNeedFile": {"0"}}
	if c.trademarkToken != "" {
		params.Set("token", c.trademarkToken)
	}

	text, err := c.documents.FetchText(ctx, docTrademarks, params)
	if err != nil {
		c.logger.Warn("trademark csv unavailable, serving fallback series: " + err.Error())
		return c.fallbackTrademarks(), nil
	}

	points := parseTrademarkCSV(text)
	if len(points) < minTrademarkPoints {
		c.logger.Warn(fmt.Sprintf("trademark csv too sparse (%d points), serving fallback series", len(points)))
		return c.fallbackTrademarks(), nil
	}

	points = lastN(points, 12)
	return &TrademarkReport{
		Points:  points,
		Quality: DataQuality{Source: "live", Points: len(points)},
	}, nil
}

func (c *Client) fallbackTrademarks() *TrademarkReport {
	c.metrics.Inc(metrics.FeedFallbacksTotal)
	points := defaultTrademarkSeries()
	return &TrademarkReport{
		Points:  points,
		Quality: DataQuality{Source: "fallback", Fallback: true, Points: len(points)},
	}
}

// defaultTrademarkSeries is the stand-in used when the live CSV cannot
// be charted.
func defaultTrademarkSeries() []TrademarkPoint {
	return []TrademarkPoint{
		{Month: "1月", Applications: 320},
		{Month: "2月", Applications: 280},
		{Month: "3月", Applications: 350},
		{Month: "4月", Applications: 410},
		{Month: "5月", Applications: 390},
		{Month: "6月", Applications: 450},
		{Month: "7月", Applications: 430},
		{Month: "8月", Applications: 480},
	}
}

// parseTrademarkCSV reads the year,month,quantity layout. Rows with an
// unparseable quantity are skipped; short rows too.
func parseTrademarkCSV(text string) []TrademarkPoint {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil
	}

	var points []TrademarkPoint
	for _, row := range rows[1:] { // skip header
		if len(row) < 3 {
			continue
		}

		year := strings.TrimSpace(row[0])
		month := strings.TrimSpace(row[1])
		qty, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			continue
		}

		if len(year) == 4 {
			year = year[2:]
		}
		m, _ := strconv.Atoi(month)

		points = append(points, TrademarkPoint{
			Month:        fmt.Sprintf("%d月 %s", m, year),
			Applications: qty,
		})
	}
	return points
}

// formatPeriod renders a "YYYYMM" period string for display.
func formatPeriod(period string) string {
	if len(period) != 6 {
		if period == "" {
			return "---"
		}
		return period
	}
	return period[:4] + "年" + period[4:6] + "月"
}
