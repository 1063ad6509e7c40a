package feeds

import (
	"context"
	"strings"
	"time"

	"macau-pulse/internal/upstream"
)

// Document UUIDs for the realtime feeds.
const (
	docParking = "ea50a770-cc35-47cc-a3ba-7f60092d4bc4"
	docWeather = "a56e346b-5314-4157-965c-360df113065a"
	docBorders = "5ea99479-9409-4721-a2c2-67c30454505b"
	docFlights = "9441616d-9345-408e-8f63-d1a847204391"
)

// FetchParking returns current car-park occupancy.
func (c *Client) FetchParking(ctx context.Context) ([]ParkingLot, error) {
	payload, err := c.documents.FetchJSON(ctx, docParking)
	if err != nil {
		return nil, err
	}

	items := upstream.Items(payload)
	if items == nil {
		return nil, ErrNoData
	}

	out := make([]ParkingLot, 0, len(items))
	for _, item := range items {
		out = append(out, ParkingLot{
			Name:            pick(item, Unknown, "Name", "name"),
			CarSpaces:       upstream.IntOr(item, 0, "Car_CNT", "car_spaces"),
			MotorbikeSpaces: upstream.IntOr(item, 0, "Moto_CNT", "motorbike_spaces"),
			UpdatedAt:       pick(item, time.Now().Format(time.RFC3339), "Time", "update_time"),
		})
	}
	return out, nil
}

// FetchWeather returns the current weather reading. The endpoint serves
// either a single object or a one-element array.
func (c *Client) FetchWeather(ctx context.Context) (*Weather, error) {
	payload, err := c.documents.FetchJSON(ctx, docWeather)
	if err != nil {
		return nil, err
	}

	item, ok := upstream.First(payload)
	if !ok {
		return nil, ErrNoData
	}

	return &Weather{
		Temperature: upstream.FloatOr(item, 20, "temperature", "temp"),
		Humidity:    upstream.FloatOr(item, 70, "humidity", "humid"),
		Condition:   pick(item, Unknown, "weatherCondition", "condition"),
		UpdatedAt:   pick(item, time.Now().Format(time.RFC3339), "update_time"),
	}, nil
}

// FetchBorders returns the load state of each border gate.
func (c *Client) FetchBorders(ctx context.Context) ([]BorderCrossing, error) {
	payload, err := c.documents.FetchJSON(ctx, docBorders)
	if err != nil {
		return nil, err
	}

	items := upstream.Items(payload)
	if items == nil {
		return nil, ErrNoData
	}

	out := make([]BorderCrossing, 0, len(items))
	for _, item := range items {
		out = append(out, BorderCrossing{
			Gate:      pick(item, Unknown, "border_gate", "gate_name"),
			Status:    normalizeBorderStatus(pick(item, "", "status")),
			UpdatedAt: pick(item, time.Now().Format(time.RFC3339), "update_time"),
		})
	}
	return out, nil
}

// FetchFlights returns the next ten flight arrivals.
func (c *Client) FetchFlights(ctx context.Context) ([]FlightArrival, error) {
	payload, err := c.documents.FetchJSON(ctx, docFlights)
	if err != nil {
		return nil, err
	}

	items := upstream.Items(payload)
	if items == nil {
		return nil, ErrNoData
	}

	if len(items) > 10 {
		items = items[:10]
	}

	out := make([]FlightArrival, 0, len(items))
	for _, item := range items {
		out = append(out, FlightArrival{
			FlightNo:      pick(item, Unknown, "flight_no", "flightNo"),
			Origin:        pick(item, Unknown, "origin", "from"),
			Status:        normalizeFlightStatus(pick(item, "", "status")),
			ScheduledTime: pick(item, "", "sta", "scheduled_time"),
		})
	}
	return out, nil
}

// The upstream reports gate status in mixed English and Chinese.
func normalizeBorderStatus(status string) string {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "congested") || strings.Contains(status, "擁擠"):
		return BorderCongested
	case strings.Contains(lower, "busy") || strings.Contains(status, "繁忙"):
		return BorderBusy
	default:
		return BorderNormal
	}
}

func normalizeFlightStatus(status string) string {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "cancelled") || strings.Contains(status, "取消"):
		return FlightCancelled
	case strings.Contains(lower, "delayed") || strings.Contains(status, "延誤"):
		return FlightDelayed
	default:
		return FlightOnTime
	}
}
