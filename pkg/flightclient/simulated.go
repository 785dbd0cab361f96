package flightclient

import (
	"context"
	"fmt"
	"math"
	"time"

	"skytrip/internal/flight"
)

// SimulatedProvider fabricates deterministic offers from the request alone.
// Used when no real provider is configured or as an explicit demo mode; the
// pricing is a placeholder with no business meaning.
type SimulatedProvider struct {
	now func() time.Time
}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{now: time.Now}
}

// NewSimulatedProviderAt pins the clock, for deterministic tests.
func NewSimulatedProviderAt(now func() time.Time) *SimulatedProvider {
	return &SimulatedProvider{now: now}
}

func (p *SimulatedProvider) Fetch(_ context.Context, req flight.SearchRequest) ([]flight.Offer, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	price := p.simulatePrice(req.Origin, req.Destination, req.Date)

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		day = p.now().UTC().Truncate(24 * time.Hour)
	}

	nonstop := flight.Offer{
		ID: "1",
		Price: flight.Price{
			Formatted: fmt.Sprintf("$%.2f", price),
			Raw:       price,
			Currency:  currency,
		},
		Legs: []flight.Leg{{
			Origin:          flight.Place{IATACode: req.Origin, City: req.Origin},
			Destination:     flight.Place{IATACode: req.Destination, City: req.Destination},
			Departure:       day.Add(8 * time.Hour),
			Arrival:         day.Add(10 * time.Hour),
			DurationMinutes: 120,
			Carrier:         "Simulated Airlines",
			StopCount:       0,
		}},
	}

	oneStopPrice := math.Round(price*1.3*100) / 100
	oneStop := flight.Offer{
		ID: "2",
		Price: flight.Price{
			Formatted: fmt.Sprintf("$%.2f", oneStopPrice),
			Raw:       oneStopPrice,
			Currency:  currency,
		},
		Legs: []flight.Leg{{
			Origin:          flight.Place{IATACode: req.Origin, City: req.Origin},
			Destination:     flight.Place{IATACode: req.Destination, City: req.Destination},
			Departure:       day.Add(12 * time.Hour),
			Arrival:         day.Add(15 * time.Hour),
			DurationMinutes: 180,
			Carrier:         "Simulated Airlines with Stop",
			StopCount:       1,
		}},
	}

	return []flight.Offer{nonstop, oneStop}, nil
}

// simulatePrice derives a stable demo fare from the route and date. Routes
// whose codes start with the same letter would otherwise price at zero, so
// the multiplier has a floor.
func (p *SimulatedProvider) simulatePrice(origin, destination, date string) float64 {
	const basePrice = 1000.0

	dateMultiplier := 1.0
	if day, err := time.Parse("2006-01-02", date); err == nil && day.After(p.now()) {
		dateMultiplier = 1.2
	}

	routeMultiplier := 0.0
	if origin != "" && destination != "" {
		routeMultiplier = math.Abs(float64(origin[0])-float64(destination[0])) / 10
	}
	if routeMultiplier == 0 {
		routeMultiplier = 0.1
	}

	return math.Round(basePrice*dateMultiplier*routeMultiplier*100) / 100
}
