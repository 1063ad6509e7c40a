package feeds

// Key identifies one upstream feed. The set is closed: cache memory is
// bounded by one entry per key.
type Key string

const (
	// Macroeconomic (DSEC key indicators)
	KeyGDP          Key = "gdp"
	KeyRetail       Key = "retail"
	KeyVisitors     Key = "visitors"
	KeyHotelRates   Key = "hotel"
	KeyUnemployment Key = "unemployment"
	KeyWorkers      Key = "workers"

	// Realtime (document downloads, minutes-fresh)
	KeyParking Key = "parking"
	KeyWeather Key = "weather"
	KeyBorders Key = "borders"
	KeyFlights Key = "flights"

	// Points of interest (document downloads, days-fresh)
	KeyRestaurants Key = "restaurants"
	KeyHotels      Key = "hotels"
	KeyAgencies    Key = "agencies"
	KeyEvents      Key = "events"
	KeyBuses       Key = "buses"
	KeyPharmacies  Key = "pharmacies"

	// Market insight (mixed sources, hourly)
	KeyPopulation Key = "population"
	KeyProperty   Key = "property"
	KeyCompanies  Key = "companies"
	KeyWiFi       Key = "wifi"
	KeyTrademarks Key = "trademarks"
)

// Category groups feeds sharing a freshness window.
type Category string

const (
	CategoryMacro    Category = "macroeconomic"
	CategoryRealtime Category = "realtime"
	CategoryPOI      Category = "poi"
	CategoryInsight  Category = "market_insight"
)

// categoryKeys fixes both category membership and the per-category feed
// order used by the orchestrator.
var categoryKeys = map[Category][]Key{
	CategoryMacro:    {KeyGDP, KeyRetail, KeyVisitors, KeyHotelRates, KeyUnemployment, KeyWorkers},
	CategoryRealtime: {KeyParking, KeyWeather, KeyBorders, KeyFlights},
	CategoryPOI:      {KeyRestaurants, KeyHotels, KeyAgencies, KeyEvents, KeyBuses, KeyPharmacies},
	CategoryInsight:  {KeyPopulation, KeyProperty, KeyCompanies, KeyWiFi, KeyTrademarks},
}

// Categories returns the fixed orchestration order.
func Categories() []Category {
	return []Category{CategoryMacro, CategoryRealtime, CategoryPOI, CategoryInsight}
}

// Keys returns the feed keys of a category in fixed order.
func Keys(c Category) []Key {
	out := make([]Key, len(categoryKeys[c]))
	copy(out, categoryKeys[c])
	return out
}

// AllKeys returns every feed key, category order preserved.
func AllKeys() []Key {
	var out []Key
	for _, c := range Categories() {
		out = append(out, categoryKeys[c]...)
	}
	return out
}

// CategoryOf reports which category a key belongs to. The mapping is
// total over the closed key set; unknown keys report the empty category.
func CategoryOf(k Key) Category {
	for c, keys := range categoryKeys {
		for _, key := range keys {
			if key == k {
				return c
			}
		}
	}
	return ""
}
