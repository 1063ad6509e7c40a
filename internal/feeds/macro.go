package feeds

import (
	"context"
	"strconv"
)

// DSEC key-indicator paths. Each feed has a fixed upstream address.
const (
	indicatorGDP          = "KeyIndicator/GDP"
	indicatorRetailSales  = "KeyIndicator/RetailSalesValue"
	indicatorVisitors     = "KeyIndicator/VisitorArrivals"
	indicatorHotelRates   = "KeyIndicator/HotelOccupancyRate"
	indicatorUnemployment = "KeyIndicator/UnemploymentRate"
	indicatorWorkers      = "KeyIndicator/NonResidentWorkers"
)

// FetchGDP returns the quarterly GDP series.
func (c *Client) FetchGDP(ctx context.Context) ([]GDPPoint, error) {
	resp, err := c.indicators.Fetch(ctx, indicatorGDP, map[string]string{
		"lang":      "TC",
		"from_year": "2019",
		"to_year":   "2024",
	})
	if err != nil {
		return nil, err
	}
	if resp.Values == nil {
		return nil, ErrNoData
	}

	out := make([]GDPPoint, 0, len(resp.Values))
	for _, item := range resp.Values {
		period := pick(item, "", "periodString", "period")
		if len(period) < 5 {
			continue
		}
		value, ok := pickFloat(item, "value")
		if !ok {
			continue
		}

		year, _ := strconv.Atoi(period[:4])
		quarter, _ := strconv.Atoi(period[4:])

		p := GDPPoint{Year: year, Quarter: quarter, Value: value}
		if rate, ok := pickFloat(item, "change_rate"); ok {
			p.ChangeRate = rate
		}
		out = append(out, p)
	}
	return out, nil
}

// FetchRetailSales returns the retail sales value series.
func (c *Client) FetchRetailSales(ctx context.Context) ([]RetailSales, error) {
	resp, err := c.indicators.Fetch(ctx, indicatorRetailSales, map[string]string{
		"lang":      "TC",
		"from_year": "2020",
		"to_year":   "2024",
	})
	if err != nil {
		return nil, err
	}
	if resp.Values == nil {
		return nil, ErrNoData
	}

	out := make([]RetailSales, 0, len(resp.Values))
	for _, item := range resp.Values {
		value, ok := pickFloat(item, "value")
		if !ok {
			continue
		}
		out = append(out, RetailSales{
			Period:   pick(item, Unknown, "period", "periodString"),
			Category: pick(item, Unknown, "indicator"),
			Value:    value,
		})
	}
	return out, nil
}

// FetchVisitors returns the last twelve months of visitor arrivals.
func (c *Client) FetchVisitors(ctx context.Context) ([]VisitorArrivals, error) {
	resp, err := c.indicators.Fetch(ctx, indicatorVisitors, map[string]string{
		"lang":        "TC",
		"granularity": "monthly",
		"from_date":   "202301",
	})
	if err != nil {
		return nil, err
	}
	if resp.Values == nil {
		return nil, ErrNoData
	}

	out := make([]VisitorArrivals, 0, len(resp.Values))
	for _, item := range resp.Values {
		value, ok := pickInt(item, "value")
		if !ok {
			continue
		}
		v := VisitorArrivals{
			YearMonth: pick(item, Unknown, "year_month", "periodString"),
			Value:     value,
		}
		if yoy, ok := pickFloat(item, "same_period_last_year_change"); ok {
			v.YoYChange = yoy
		}
		out = append(out, v)
	}
	return lastN(out, 12), nil
}

// FetchHotelOccupancy returns the last twelve months of occupancy
// rates.
func (c *Client) FetchHotelOccupancy(ctx context.Context) ([]HotelOccupancy, error) {
	resp, err := c.indicators.Fetch(ctx, indicatorHotelRates, map[string]string{
		"lang":      "TC",
		"from_year": "2023",
	})
	if err != nil {
		return nil, err
	}
	if resp.Values == nil {
		return nil, ErrNoData
	}

	out := make([]HotelOccupancy, 0, len(resp.Values))
	for _, item := range resp.Values {
		rate, ok := pickFloat(item, "occupancy_rate", "value")
		if !ok {
			continue
		}
		out = append(out, HotelOccupancy{
			YearMonth:  pick(item, Unknown, "year_month", "periodString"),
			Rate:       rate,
			StarRating: pick(item, "", "star_rating"),
		})
	}
	return lastN(out, 12), nil
}

// FetchUnemployment returns the last eight unemployment readings.
func (c *Client) FetchUnemployment(ctx context.Context) ([]Unemployment, error) {
	resp, err := c.indicators.Fetch(ctx, indicatorUnemployment, map[string]string{"lang": "TC"})
	if err != nil {
		return nil, err
	}
	if resp.Values == nil {
		return nil, ErrNoData
	}

	out := make([]Unemployment, 0, len(resp.Values))
	for _, item := range resp.Values {
		rate, ok := pickFloat(item, "rate", "value")
		if !ok {
			continue
		}
		u := Unemployment{
			Period: pick(item, Unknown, "period", "periodString"),
			Rate:   rate,
		}
		if lf, ok := pickInt(item, "labor_force"); ok {
			u.LaborForce = lf
		}
		out = append(out, u)
	}
	return lastN(out, 8), nil
}

// FetchWorkers returns non-resident worker counts by industry and
// origin.
func (c *Client) FetchWorkers(ctx context.Context) ([]NonResidentWorkers, error) {
	resp, err := c.indicators.Fetch(ctx, indicatorWorkers, map[string]string{"lang": "TC"})
	if err != nil {
		return nil, err
	}
	if resp.Values == nil {
		return nil, ErrNoData
	}

	out := make([]NonResidentWorkers, 0, len(resp.Values))
	for _, item := range resp.Values {
		count, ok := pickInt(item, "count", "value")
		if !ok {
			continue
		}
		out = append(out, NonResidentWorkers{
			Industry: pick(item, Unknown, "industry"),
			Origin:   pick(item, Unknown, "country_of_origin", "source"),
			Count:    count,
		})
	}
	return out, nil
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
