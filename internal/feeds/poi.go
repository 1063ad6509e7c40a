package feeds

import (
	"context"

	"macau-pulse/internal/upstream"
)

// Document UUIDs for the points-of-interest feeds.
const (
	docRestaurants = "2e811062-338c-4422-9127-e371f92d3698"
	docHotels      = "8735a77d-371b-46b4-b454-53744255b022"
	docAgencies    = "0e5d7495-f252-4852-a525-4106b82c6543"
	docEvents      = "18282406-2073-4224-9741-22169176150a"
	docBuses       = "8f015910-6124-4214-a52a-8f33102570d2"
	docPharmacies  = "2b41806f-b2a3-4555-9816-47c287239922"
)

// FetchRestaurants returns licensed restaurants. Coordinates are the
// primary attribute here: records without a usable position are useless
// to the map layer and get dropped.
func (c *Client) FetchRestaurants(ctx context.Context) ([]Restaurant, error) {
	items, err := c.poiItems(ctx, docRestaurants)
	if err != nil {
		return nil, err
	}

	out := make([]Restaurant, 0, len(items))
	for _, item := range items {
		lat := upstream.FloatOr(item, 0, "latitude", "lat")
		lng := upstream.FloatOr(item, 0, "longitude", "lng")
		if lat == 0 || lng == 0 {
			continue
		}
		out = append(out, Restaurant{
			Name:      pick(item, Unknown, "title", "name"),
			Address:   pick(item, "", "address"),
			Latitude:  lat,
			Longitude: lng,
			Type:      pick(item, "Restaurant", "type", "category"),
		})
	}
	return out, nil
}

// FetchHotels returns the hotel registry. Position is optional for
// hotels; the registry is also used for capacity stats.
func (c *Client) FetchHotels(ctx context.Context) ([]Hotel, error) {
	items, err := c.poiItems(ctx, docHotels)
	if err != nil {
		return nil, err
	}

	out := make([]Hotel, 0, len(items))
	for _, item := range items {
		out = append(out, Hotel{
			Name:      pick(item, Unknown, "name_cn", "name"),
			StarClass: pick(item, "", "star_class", "stars"),
			Rooms:     upstream.IntOr(item, 0, "total_rooms"),
			Address:   pick(item, "", "address"),
			Latitude:  upstream.FloatOr(item, 0, "latitude"),
			Longitude: upstream.FloatOr(item, 0, "longitude"),
		})
	}
	return out, nil
}

// FetchAgencies returns licensed travel agencies.
func (c *Client) FetchAgencies(ctx context.Context) ([]TravelAgency, error) {
	items, err := c.poiItems(ctx, docAgencies)
	if err != nil {
		return nil, err
	}

	out := make([]TravelAgency, 0, len(items))
	for _, item := range items {
		out = append(out, TravelAgency{
			Name:      pick(item, Unknown, "agency_name", "name"),
			Phone:     pick(item, "", "tel", "phone"),
			Address:   pick(item, "", "address"),
			Latitude:  upstream.FloatOr(item, 0, "latitude"),
			Longitude: upstream.FloatOr(item, 0, "longitude"),
		})
	}
	return out, nil
}

// FetchEvents returns upcoming MICE events.
func (c *Client) FetchEvents(ctx context.Context) ([]MICEEvent, error) {
	items, err := c.poiItems(ctx, docEvents)
	if err != nil {
		return nil, err
	}

	out := make([]MICEEvent, 0, len(items))
	for _, item := range items {
		out = append(out, MICEEvent{
			Name:      pick(item, Unknown, "event_name", "name"),
			Venue:     pick(item, "", "venue", "location"),
			DateStart: pick(item, "", "date_start", "start_date"),
			DateEnd:   pick(item, "", "date_end", "end_date"),
			Organizer: pick(item, "", "organizer", "organization"),
		})
	}
	return out, nil
}

// FetchBuses returns bus routes with their stops.
func (c *Client) FetchBuses(ctx context.Context) ([]BusStop, error) {
	items, err := c.poiItems(ctx, docBuses)
	if err != nil {
		return nil, err
	}

	out := make([]BusStop, 0, len(items))
	for _, item := range items {
		out = append(out, BusStop{
			Route:     pick(item, Unknown, "routeName", "route_name"),
			StopCode:  pick(item, "", "busStopCode", "stop_code"),
			StopName:  pick(item, "", "busStopName", "stop_name"),
			Latitude:  upstream.FloatOr(item, 0, "latitude"),
			Longitude: upstream.FloatOr(item, 0, "longitude"),
		})
	}
	return out, nil
}

// FetchPharmacies returns registered pharmacies.
func (c *Client) FetchPharmacies(ctx context.Context) ([]Pharmacy, error) {
	items, err := c.poiItems(ctx, docPharmacies)
	if err != nil {
		return nil, err
	}

	out := make([]Pharmacy, 0, len(items))
	for _, item := range items {
		out = append(out, Pharmacy{
			Name:      pick(item, Unknown, "name"),
			Address:   pick(item, "", "address"),
			District:  pick(item, "", "district"),
			Phone:     pick(item, "", "telephone", "phone"),
			Latitude:  upstream.FloatOr(item, 0, "latitude"),
			Longitude: upstream.FloatOr(item, 0, "longitude"),
		})
	}
	return out, nil
}

func (c *Client) poiItems(ctx context.Context, docID string) ([]map[string]any, error) {
	payload, err := c.documents.FetchJSON(ctx, docID)
	if err != nil {
		return nil, err
	}

	items := upstream.Items(payload)
	if items == nil {
		return nil, ErrNoData
	}
	return items, nil
}
