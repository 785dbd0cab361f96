package flight

import "time"

// SearchRequest describes one flight search. Origin and destination are
// 3-letter IATA codes; Date is an ISO 8601 calendar date (YYYY-MM-DD).
type SearchRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Adults      int    `json:"adults,omitempty"`
	Currency    string `json:"currency,omitempty"`
	CabinClass  string `json:"cabin_class,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// Price carries both the display string and the raw amount so the UI never
// has to re-format provider output.
type Price struct {
	Formatted string  `json:"formatted"`
	Raw       float64 `json:"raw"`
	Currency  string  `json:"currency,omitempty"`
}

type Place struct {
	IATACode string `json:"iataCode"`
	City     string `json:"city"`
	Name     string `json:"name,omitempty"`
}

// Leg is one origin→destination segment of an offer's itinerary.
type Leg struct {
	Origin          Place     `json:"origin"`
	Destination     Place     `json:"destination"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	DurationMinutes int       `json:"durationInMinutes"`
	Carrier         string    `json:"carrier"`
	StopCount       int       `json:"stopCount"`
}

// Offer is a single priced itinerary returned by a search. Offers are
// produced fresh per search call and never mutated or cached.
type Offer struct {
	ID    string `json:"id"`
	Price Price  `json:"price"`
	Legs  []Leg  `json:"legs"`
}
