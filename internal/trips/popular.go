package trips

import "sort"

// Trip is one curated popular route shown on the trips tab.
type Trip struct {
	ID               string `json:"id"`
	From             string `json:"from"`
	To               string `json:"to"`
	Date             string `json:"date"`
	ReturnDate       string `json:"returnDate,omitempty"`
	Price            string `json:"price"`
	Airline          string `json:"airline"`
	FlightNumber     string `json:"flightNumber"`
	Status           string `json:"status"`
	BookingReference string `json:"bookingReference"`
	Gate             string `json:"gate,omitempty"`
	Terminal         string `json:"terminal,omitempty"`
	Seat             string `json:"seat,omitempty"`
	Popularity       int    `json:"popularity"`
}

// DefaultPopularLimit matches the number of trips the trips tab renders.
const DefaultPopularLimit = 7

// catalog is static demo data; a real backend would rank live bookings.
var catalog = []Trip{
	{ID: "1", From: "New York (JFK)", To: "Los Angeles (LAX)", Date: "Mar 15, 2025", ReturnDate: "Mar 22, 2025", Price: "$299", Airline: "Delta Airlines", FlightNumber: "DL 2456", Status: "upcoming", BookingReference: "DL7X9K", Gate: "A12", Terminal: "Terminal 4", Seat: "14A", Popularity: 95},
	{ID: "2", From: "London (LHR)", To: "Paris (CDG)", Date: "Apr 10, 2025", ReturnDate: "Apr 14, 2025", Price: "$189", Airline: "British Airways", FlightNumber: "BA 308", Status: "upcoming", BookingReference: "BA9M3K", Gate: "B15", Terminal: "Terminal 5", Seat: "12F", Popularity: 92},
	{ID: "3", From: "Tokyo (NRT)", To: "Seoul (ICN)", Date: "May 5, 2025", Price: "$245", Airline: "Japan Airlines", FlightNumber: "JL 958", Status: "upcoming", BookingReference: "JL4K8P", Seat: "18A", Popularity: 89},
	{ID: "4", From: "Dubai (DXB)", To: "Mumbai (BOM)", Date: "Apr 20, 2025", ReturnDate: "Apr 28, 2025", Price: "$320", Airline: "Emirates", FlightNumber: "EK 508", Status: "upcoming", BookingReference: "EK7L2M", Gate: "C8", Terminal: "Terminal 3", Seat: "22C", Popularity: 87},
	{ID: "5", From: "Sydney (SYD)", To: "Melbourne (MEL)", Date: "Mar 25, 2025", ReturnDate: "Mar 30, 2025", Price: "$149", Airline: "Qantas", FlightNumber: "QF 401", Status: "upcoming", BookingReference: "QF5N9R", Gate: "D12", Terminal: "Terminal 1", Seat: "8B", Popularity: 85},
	{ID: "6", From: "Barcelona (BCN)", To: "Rome (FCO)", Date: "Jun 12, 2025", ReturnDate: "Jun 18, 2025", Price: "$175", Airline: "Vueling", FlightNumber: "VY 6134", Status: "upcoming", BookingReference: "VY3P7Q", Seat: "15E", Popularity: 83},
	{ID: "7", From: "Singapore (SIN)", To: "Bangkok (BKK)", Date: "May 15, 2025", Price: "$128", Airline: "Singapore Airlines", FlightNumber: "SQ 711", Status: "upcoming", BookingReference: "SQ8R4T", Gate: "A7", Terminal: "Terminal 2", Seat: "11D", Popularity: 81},
	{ID: "8", From: "Chicago (ORD)", To: "Miami (MIA)", Date: "Apr 20, 2025", Price: "$249", Airline: "American Airlines", FlightNumber: "AA 1234", Status: "upcoming", BookingReference: "AA8M2P", Seat: "22F", Popularity: 78},
	{ID: "9", From: "San Francisco (SFO)", To: "Seattle (SEA)", Date: "Jan 10, 2025", ReturnDate: "Jan 15, 2025", Price: "$189", Airline: "Alaska Airlines", FlightNumber: "AS 567", Status: "completed", BookingReference: "AS3K7L", Popularity: 75},
	{ID: "10", From: "Boston (BOS)", To: "Denver (DEN)", Date: "Feb 28, 2025", Price: "$199", Airline: "United Airlines", FlightNumber: "UA 892", Status: "upcoming", BookingReference: "UA5N8Q", Gate: "B7", Terminal: "Terminal 1", Seat: "18C", Popularity: 72},
}

// Popular returns the n most popular trips, highest popularity first.
func Popular(n int) []Trip {
	if n <= 0 {
		n = DefaultPopularLimit
	}

	sorted := make([]Trip, len(catalog))
	copy(sorted, catalog)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Popularity > sorted[j].Popularity
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
