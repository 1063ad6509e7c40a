package orchestrator

import (
	"context"

	"macau-pulse/internal/feeds"
)

// Source is the full set of feed adapters the orchestrator fans out
// to. *feeds.Client satisfies it in production; tests substitute stubs
// to count and fail individual feeds.
type Source interface {
	// Macroeconomic
	FetchGDP(ctx context.Context) ([]feeds.GDPPoint, error)
	FetchRetailSales(ctx context.Context) ([]feeds.RetailSales, error)
	FetchVisitors(ctx context.Context) ([]feeds.VisitorArrivals, error)
	FetchHotelOccupancy(ctx context.Context) ([]feeds.HotelOccupancy, error)
	FetchUnemployment(ctx context.Context) ([]feeds.Unemployment, error)
	FetchWorkers(ctx context.Context) ([]feeds.NonResidentWorkers, error)

	// Realtime
	FetchParking(ctx context.Context) ([]feeds.ParkingLot, error)
	FetchWeather(ctx context.Context) (*feeds.Weather, error)
	FetchBorders(ctx context.Context) ([]feeds.BorderCrossing, error)
	FetchFlights(ctx context.Context) ([]feeds.FlightArrival, error)

	// Points of interest
	FetchRestaurants(ctx context.Context) ([]feeds.Restaurant, error)
	FetchHotels(ctx context.Context) ([]feeds.Hotel, error)
	FetchAgencies(ctx context.Context) ([]feeds.TravelAgency, error)
	FetchEvents(ctx context.Context) ([]feeds.MICEEvent, error)
	FetchBuses(ctx context.Context) ([]feeds.BusStop, error)
	FetchPharmacies(ctx context.Context) ([]feeds.Pharmacy, error)

	// Market insight
	FetchPopulation(ctx context.Context) ([]feeds.PopulationDistrict, error)
	FetchProperty(ctx context.Context) ([]feeds.PropertyTransaction, error)
	FetchCompanies(ctx context.Context) (*feeds.CompanyStats, error)
	FetchWiFi(ctx context.Context) ([]feeds.WiFiSpot, error)
	FetchTrademarks(ctx context.Context) (*feeds.TrademarkReport, error)
}
