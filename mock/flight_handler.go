package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type MockPlace struct {
	City     string `json:"city"`
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
}

type MockCarrier struct {
	Name string `json:"name"`
}

type MockLeg struct {
	Origin            MockPlace `json:"origin"`
	Destination       MockPlace `json:"destination"`
	DurationInMinutes int       `json:"durationInMinutes"`
	Carriers          struct {
		Marketing []MockCarrier `json:"marketing"`
	} `json:"carriers"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	StopCount int    `json:"stopCount"`
}

type MockPrice struct {
	Formatted string  `json:"formatted"`
	Raw       float64 `json:"raw"`
	Currency  string  `json:"currency"`
}

type MockOffer struct {
	ID    string    `json:"id"`
	Price MockPrice `json:"price"`
	Legs  []MockLeg `json:"legs"`
}

// FlightSearchHandler serves canned offers for whatever origin/destination
// the caller asks for. The ?envelope= parameter selects which response shape
// to wrap the list in, so all accepted envelope variants can be exercised.
func FlightSearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	origin := strings.ToUpper(q.Get("origin"))
	destination := strings.ToUpper(q.Get("destination"))
	date := q.Get("date")
	currency := q.Get("currency")
	if currency == "" {
		currency = "USD"
	}

	if origin == "" || destination == "" {
		http.Error(w, "origin and destination are required", http.StatusBadRequest)
		return
	}

	offers := buildOffers(origin, destination, date, currency)

	var payload any
	switch q.Get("envelope") {
	case "itineraries":
		payload = map[string]any{"itineraries": offers}
	case "flights":
		payload = map[string]any{"flights": offers}
	case "data.flights":
		payload = map[string]any{"data": map[string]any{"flights": offers}}
	case "results":
		payload = map[string]any{"results": offers}
	default:
		payload = map[string]any{
			"data": map[string]any{"itineraries": offers},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func buildOffers(origin, destination, date, currency string) []MockOffer {
	depart, err := time.Parse("2006-01-02", date)
	if err != nil {
		depart = time.Now().AddDate(0, 0, 7)
	}
	depart = depart.Add(8 * time.Hour)

	leg := func(start time.Time, minutes, stops int, carrier string) MockLeg {
		l := MockLeg{
			Origin:            MockPlace{City: origin, Name: origin + " Airport", IataCode: origin},
			Destination:       MockPlace{City: destination, Name: destination + " Airport", IataCode: destination},
			DurationInMinutes: minutes,
			Departure:         start.Format("2006-01-02T15:04:05"),
			Arrival:           start.Add(time.Duration(minutes) * time.Minute).Format("2006-01-02T15:04:05"),
			StopCount:         stops,
		}
		l.Carriers.Marketing = []MockCarrier{{Name: carrier}}
		return l
	}

	return []MockOffer{
		{
			ID:    "mock-1",
			Price: MockPrice{Formatted: fmt.Sprintf("$%d", 245), Raw: 245, Currency: currency},
			Legs:  []MockLeg{leg(depart, 120, 0, "Mock Air")},
		},
		{
			ID:    "mock-2",
			Price: MockPrice{Formatted: fmt.Sprintf("$%d", 189), Raw: 189, Currency: currency},
			Legs:  []MockLeg{leg(depart.Add(4*time.Hour), 260, 1, "Budget Mock")},
		},
	}
}
