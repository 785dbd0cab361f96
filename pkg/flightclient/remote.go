package flightclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"skytrip/internal/flight"
	"skytrip/pkg/logger"
)

const (
	defaultAdults      = 1
	defaultCurrency    = "USD"
	defaultCabinClass  = "economy"
	defaultCountryCode = "US"

	apiKeyHeader = "X-Api-Key"
)

// envelopePaths are the accepted locations of the offer list inside a
// provider response, tried in order. The provider nests results under
// different field names across API versions; the first non-empty list wins.
var envelopePaths = []string{
	"data.itineraries",
	"itineraries",
	"data.flights",
	"flights",
	"results",
}

// RemoteProvider fetches offers from a configured flight-data endpoint with
// one HTTP GET per search. No retries; timeouts come from the injected
// http.Client.
type RemoteProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     logger.Client
}

func NewRemoteProvider(httpClient *http.Client, baseURL, apiKey string, logger logger.Client) *RemoteProvider {
	return &RemoteProvider{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type remotePlace struct {
	City     string `json:"city"`
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
}

type remoteCarrier struct {
	Name string `json:"name"`
}

type remoteLeg struct {
	Origin            remotePlace `json:"origin"`
	Destination       remotePlace `json:"destination"`
	DurationInMinutes int         `json:"durationInMinutes"`
	Carriers          struct {
		Marketing []remoteCarrier `json:"marketing"`
	} `json:"carriers"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	StopCount int    `json:"stopCount"`
}

type remoteOffer struct {
	ID    string `json:"id"`
	Price struct {
		Formatted string  `json:"formatted"`
		Raw       float64 `json:"raw"`
		Currency  string  `json:"currency"`
	} `json:"price"`
	Legs []remoteLeg `json:"legs"`
}

func (p *RemoteProvider) Fetch(ctx context.Context, req flight.SearchRequest) ([]flight.Offer, error) {
	endpoint, err := p.buildURL(req)
	if err != nil {
		return nil, fmt.Errorf("flight provider: failed to build request url: %w", err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("flight provider: failed to build request: %w", err)
	}
	if p.apiKey != "" {
		r.Header.Set(apiKeyHeader, p.apiKey)
	}

	resp, err := p.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("flight provider: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight provider: external api returned non-200 status: %d", resp.StatusCode)
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("flight provider: failed to decode json response: %w", err)
	}

	items, ok := extractOfferList(payload)
	if !ok {
		// A well-formed response with no recognizable list is an empty result,
		// not an error.
		return []flight.Offer{}, nil
	}

	return p.mapOffers(req, items), nil
}

func (p *RemoteProvider) buildURL(req flight.SearchRequest) (string, error) {
	u, err := url.Parse(p.baseURL + "/v1/flights/search")
	if err != nil {
		return "", err
	}

	adults := req.Adults
	if adults <= 0 {
		adults = defaultAdults
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	cabinClass := req.CabinClass
	if cabinClass == "" {
		cabinClass = defaultCabinClass
	}
	country := req.CountryCode
	if country == "" {
		country = defaultCountryCode
	}

	q := u.Query()
	q.Set("origin", req.Origin)
	q.Set("destination", req.Destination)
	q.Set("date", req.Date)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("currency", currency)
	q.Set("cabinClass", cabinClass)
	q.Set("country", country)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// extractOfferList probes the accepted envelope paths in order and returns
// the first non-empty JSON list found.
func extractOfferList(payload json.RawMessage) ([]json.RawMessage, bool) {
	for _, path := range envelopePaths {
		if items, ok := listAtPath(payload, path); ok && len(items) > 0 {
			return items, true
		}
	}
	return nil, false
}

func listAtPath(payload json.RawMessage, path string) ([]json.RawMessage, bool) {
	current := payload
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' {
			continue
		}
		field := path[start:i]
		start = i + 1

		if i == len(path) {
			var items []json.RawMessage
			var object map[string]json.RawMessage
			if err := json.Unmarshal(current, &object); err != nil {
				return nil, false
			}
			raw, ok := object[field]
			if !ok {
				return nil, false
			}
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, false
			}
			return items, true
		}

		var object map[string]json.RawMessage
		if err := json.Unmarshal(current, &object); err != nil {
			return nil, false
		}
		next, ok := object[field]
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

func (p *RemoteProvider) mapOffers(req flight.SearchRequest, items []json.RawMessage) []flight.Offer {
	mapped := make([]flight.Offer, 0, len(items))

	for _, item := range items {
		var rOffer remoteOffer
		if err := json.Unmarshal(item, &rOffer); err != nil {
			p.logger.Warn("flight provider: skipping malformed offer",
				logger.Field{Key: "err", Value: err})
			continue
		}

		legs := make([]flight.Leg, 0, len(rOffer.Legs))
		for _, rLeg := range rOffer.Legs {
			carrier := ""
			if len(rLeg.Carriers.Marketing) > 0 {
				carrier = rLeg.Carriers.Marketing[0].Name
			}
			legs = append(legs, flight.Leg{
				Origin: flight.Place{
					IATACode: rLeg.Origin.IataCode,
					City:     rLeg.Origin.City,
					Name:     rLeg.Origin.Name,
				},
				Destination: flight.Place{
					IATACode: rLeg.Destination.IataCode,
					City:     rLeg.Destination.City,
					Name:     rLeg.Destination.Name,
				},
				Departure:       parseLegTime(rLeg.Departure),
				Arrival:         parseLegTime(rLeg.Arrival),
				DurationMinutes: rLeg.DurationInMinutes,
				Carrier:         carrier,
				StopCount:       rLeg.StopCount,
			})
		}

		// Offers without legs never reach the UI.
		if len(legs) == 0 {
			p.logger.Warn("flight provider: skipping offer without legs",
				logger.Field{Key: "offer_id", Value: rOffer.ID})
			continue
		}

		currency := rOffer.Price.Currency
		if currency == "" {
			currency = req.Currency
		}

		mapped = append(mapped, flight.Offer{
			ID: rOffer.ID,
			Price: flight.Price{
				Formatted: rOffer.Price.Formatted,
				Raw:       rOffer.Price.Raw,
				Currency:  currency,
			},
			Legs: legs,
		})
	}

	return mapped
}

func parseLegTime(value string) time.Time {
	const legTimeLayout = "2006-01-02T15:04:05"

	if t, err := time.Parse(legTimeLayout, value); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, value)
	return t
}
