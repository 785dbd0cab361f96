package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

// Local stand-in for the flight and airport providers, for running the app
// without external API keys. Point FLIGHT_PROVIDER_BASE_URL and
// AIRPORT_PROVIDER_BASE_URL at this server.
func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/v1/flights/search", FlightSearchHandler)
	http.HandleFunc("/v1/airports", AirportDirectoryHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock provider server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
