// Package airportclient talks to an aviationstack-style airport directory:
// one HTTP GET per uncached lookup, JSON records keyed under "data".
package airportclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"skytrip/internal/airport"
	"skytrip/pkg/logger"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     logger.Client
}

func NewClient(httpClient *http.Client, baseURL, apiKey string, logger logger.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type airportRecord struct {
	IataCode    string  `json:"iata_code"`
	AirportName string  `json:"airport_name"`
	City        string  `json:"city"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type airportResponse struct {
	Data []airportRecord `json:"data"`
}

// LookupCode fetches the directory record for one IATA code. An empty result
// set returns (nil, nil); the resolver treats both that and errors as absent.
func (c *Client) LookupCode(ctx context.Context, code string) (*airport.Record, error) {
	endpoint, err := url.Parse(c.baseURL + "/v1/airports")
	if err != nil {
		return nil, fmt.Errorf("airport provider: failed to build request url: %w", err)
	}

	q := endpoint.Query()
	q.Set("access_key", c.apiKey)
	q.Set("search", code)
	endpoint.RawQuery = q.Encode()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("airport provider: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("airport provider: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("airport provider: external api returned non-200 status: %d", resp.StatusCode)
	}

	var apiResp airportResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("airport provider: failed to decode json response: %w", err)
	}

	if len(apiResp.Data) == 0 {
		return nil, nil
	}

	record := apiResp.Data[0]
	return &airport.Record{
		IATACode:    record.IataCode,
		Name:        record.AirportName,
		City:        record.City,
		CountryCode: record.CountryCode,
		Latitude:    record.Latitude,
		Longitude:   record.Longitude,
	}, nil
}
