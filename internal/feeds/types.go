package feeds

import "time"

// Record shapes, one per feed. Adapters normalize the heterogeneous
// upstream schemas into these; everything downstream (snapshot, push
// layer, API) speaks only these types.

// Unknown is the sentinel substituted for descriptive fields the
// upstream omits. Primary fields are never sentineled; records missing
// them are dropped instead.
const Unknown = "Unknown"

type GDPPoint struct {
	Year       int     `json:"year"`
	Quarter    int     `json:"quarter"`
	Value      float64 `json:"value"`
	ChangeRate float64 `json:"change_rate,omitempty"`
}

type RetailSales struct {
	Period   string  `json:"period"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type VisitorArrivals struct {
	YearMonth string  `json:"year_month"`
	Value     int     `json:"value"`
	YoYChange float64 `json:"yoy_change,omitempty"`
}

type HotelOccupancy struct {
	YearMonth  string  `json:"year_month"`
	Rate       float64 `json:"rate"`
	StarRating string  `json:"star_rating,omitempty"`
}

type Unemployment struct {
	Period     string  `json:"period"`
	Rate       float64 `json:"rate"`
	LaborForce int     `json:"labor_force,omitempty"`
}

type NonResidentWorkers struct {
	Industry string `json:"industry"`
	Origin   string `json:"origin"`
	Count    int    `json:"count"`
}

type ParkingLot struct {
	Name            string `json:"name"`
	CarSpaces       int    `json:"car_spaces"`
	MotorbikeSpaces int    `json:"motorbike_spaces"`
	UpdatedAt       string `json:"updated_at"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Condition   string  `json:"condition"`
	UpdatedAt   string  `json:"updated_at"`
}

// Border gate load states.
const (
	BorderNormal    = "Normal"
	BorderBusy      = "Busy"
	BorderCongested = "Congested"
)

type BorderCrossing struct {
	Gate      string `json:"gate"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

// Flight arrival states.
const (
	FlightOnTime    = "On Time"
	FlightDelayed   = "Delayed"
	FlightCancelled = "Cancelled"
)

type FlightArrival struct {
	FlightNo      string `json:"flight_no"`
	Origin        string `json:"origin"`
	Status        string `json:"status"`
	ScheduledTime string `json:"scheduled_time"`
}

type Restaurant struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Type      string  `json:"type"`
}

type Hotel struct {
	Name      string  `json:"name"`
	StarClass string  `json:"star_class,omitempty"`
	Rooms     int     `json:"rooms,omitempty"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

type TravelAgency struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

type MICEEvent struct {
	Name      string `json:"name"`
	Venue     string `json:"venue"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	Organizer string `json:"organizer"`
}

type BusStop struct {
	Route     string  `json:"route"`
	StopCode  string  `json:"stop_code"`
	StopName  string  `json:"stop_name"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

type Pharmacy struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	District  string  `json:"district"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

type PopulationDistrict struct {
	District   string  `json:"district"`
	Population int     `json:"population"`
	Density    float64 `json:"density"`
}

type PropertyTransaction struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	District    string  `json:"district"`
	AvgPriceSqm float64 `json:"avg_price_sqm"`
}

type CompanyPoint struct {
	Period string `json:"period"`
	Value  int    `json:"value"`
}

// CompanyStats carries the month-over-month registration trend derived
// from the raw indicator series.
type CompanyStats struct {
	LatestPeriod string         `json:"latest_period"`
	Current      int            `json:"current"`
	Previous     int            `json:"previous"`
	GrowthPct    float64        `json:"growth_pct"`
	History      []CompanyPoint `json:"history"`
}

type WiFiSpot struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type TrademarkPoint struct {
	Month        string `json:"month"`
	Applications int    `json:"applications"`
}

// DataQuality flags whether a series came from the live upstream or a
// hardcoded fallback.
type DataQuality struct {
	Source   string `json:"source"`
	Fallback bool   `json:"fallback"`
	Points   int    `json:"points"`
}

// TrademarkReport pairs the application series with its quality record,
// because the trademark CSV degrades to a default series when too
// sparse to chart.
type TrademarkReport struct {
	Points  []TrademarkPoint `json:"points"`
	Quality DataQuality      `json:"quality"`
}

// Snapshot is the merged result of one orchestration pass. Absent
// fields mean the feed failed or was skipped, which is a normal
// outcome, not an error. Each pass builds a new Snapshot; callers must
// treat it as read-only.
type Snapshot struct {
	GDP          []GDPPoint           `json:"gdp,omitempty"`
	RetailSales  []RetailSales        `json:"retail_sales,omitempty"`
	Visitors     []VisitorArrivals    `json:"visitor_arrivals,omitempty"`
	HotelRates   []HotelOccupancy     `json:"hotel_occupancy,omitempty"`
	Unemployment []Unemployment       `json:"unemployment,omitempty"`
	Workers      []NonResidentWorkers `json:"non_resident_workers,omitempty"`

	Parking []ParkingLot     `json:"parking,omitempty"`
	Weather *Weather         `json:"weather,omitempty"`
	Borders []BorderCrossing `json:"border_crossings,omitempty"`
	Flights []FlightArrival  `json:"flight_arrivals,omitempty"`

	Restaurants []Restaurant   `json:"restaurants,omitempty"`
	Hotels      []Hotel        `json:"hotels,omitempty"`
	Agencies    []TravelAgency `json:"travel_agencies,omitempty"`
	Events      []MICEEvent    `json:"mice_events,omitempty"`
	Buses       []BusStop      `json:"bus_routes,omitempty"`
	Pharmacies  []Pharmacy     `json:"pharmacies,omitempty"`

	Population []PopulationDistrict  `json:"population,omitempty"`
	Property   []PropertyTransaction `json:"property_transactions,omitempty"`
	Companies  *CompanyStats         `json:"companies,omitempty"`
	WiFi       []WiFiSpot            `json:"wifi_locations,omitempty"`
	Trademarks *TrademarkReport      `json:"trademarks,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
}
