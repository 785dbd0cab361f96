package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

type MockAirport struct {
	IataCode    string  `json:"iata_code"`
	AirportName string  `json:"airport_name"`
	City        string  `json:"city"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

var airportDirectory = []MockAirport{
	{IataCode: "AMS", AirportName: "Amsterdam Airport Schiphol", City: "Amsterdam", CountryCode: "NL", Latitude: 52.308613, Longitude: 4.763889},
	{IataCode: "BCN", AirportName: "Barcelona-El Prat Airport", City: "Barcelona", CountryCode: "ES", Latitude: 41.2971, Longitude: 2.078463},
	{IataCode: "DEN", AirportName: "Denver International Airport", City: "Denver", CountryCode: "US", Latitude: 39.861698, Longitude: -104.672997},
	{IataCode: "FRA", AirportName: "Frankfurt Airport", City: "Frankfurt", CountryCode: "DE", Latitude: 50.033333, Longitude: 8.570556},
	{IataCode: "HND", AirportName: "Tokyo Haneda Airport", City: "Tokyo", CountryCode: "JP", Latitude: 35.552299, Longitude: 139.779999},
	{IataCode: "MIA", AirportName: "Miami International Airport", City: "Miami", CountryCode: "US", Latitude: 25.79325, Longitude: -80.290558},
	{IataCode: "ORD", AirportName: "O'Hare International Airport", City: "Chicago", CountryCode: "US", Latitude: 41.9786, Longitude: -87.9048},
	{IataCode: "SEA", AirportName: "Seattle-Tacoma International Airport", City: "Seattle", CountryCode: "US", Latitude: 47.449162, Longitude: -122.311134},
	{IataCode: "SFO", AirportName: "San Francisco International Airport", City: "San Francisco", CountryCode: "US", Latitude: 37.618999, Longitude: -122.375},
	{IataCode: "SYD", AirportName: "Sydney Kingsford Smith Airport", City: "Sydney", CountryCode: "AU", Latitude: -33.946111, Longitude: 151.177222},
}

// AirportDirectoryHandler mimics an aviationstack-style directory: records
// under "data", filtered by the ?search= parameter. An unknown code returns
// an empty data list, not an error.
func AirportDirectoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Query().Get("access_key") == "" {
		http.Error(w, `{"error":{"code":"missing_access_key"}}`, http.StatusUnauthorized)
		return
	}

	search := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("search")))

	matches := make([]MockAirport, 0)
	for _, a := range airportDirectory {
		if search == "" || strings.EqualFold(a.IataCode, search) ||
			strings.Contains(strings.ToUpper(a.City), search) {
			matches = append(matches, a)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": matches})
}
