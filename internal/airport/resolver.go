package airport

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"skytrip/pkg/logger"
)

// Info is the resolved, display-ready form of an airport code.
type Info struct {
	IATACode    string `json:"iata_code"`
	City        string `json:"city"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name"`
}

// Record is the raw shape returned by an external airport directory.
type Record struct {
	IATACode    string
	Name        string
	City        string
	CountryCode string
	Latitude    float64
	Longitude   float64
}

// Lookup is the external airport directory capability. Implemented by
// pkg/airportclient; nil disables external lookups entirely.
type Lookup interface {
	LookupCode(ctx context.Context, code string) (*Record, error)
}

// wellKnown is the fixed allow-list of airports resolved without any
// external call.
var wellKnown = []struct {
	Code string
	Name string
	City string
}{
	{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York"},
	{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles"},
	{Code: "LHR", Name: "Heathrow Airport", City: "London"},
	{Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris"},
	{Code: "DXB", Name: "Dubai International Airport", City: "Dubai"},
	{Code: "SIN", Name: "Changi Airport", City: "Singapore"},
}

// Resolver turns a 3-letter code into a display name: allow-list first, then
// session cache, then one external lookup. The cache is insert-only for the
// lifetime of the process and never stores negative results, so a failed
// lookup can be retried later.
type Resolver struct {
	lookup Lookup
	logger logger.Client

	mu    sync.Mutex
	cache map[string]Info
}

func NewResolver(lookup Lookup, logger logger.Client) *Resolver {
	return &Resolver{
		lookup: lookup,
		logger: logger,
		cache:  make(map[string]Info),
	}
}

// Resolve returns the airport behind code, or false when it cannot be
// resolved. Inputs shorter than 2 characters return false immediately
// without any lookup.
func (r *Resolver) Resolve(ctx context.Context, code string) (Info, bool) {
	code = strings.TrimSpace(code)
	if len(code) < 2 {
		return Info{}, false
	}

	key := strings.ToUpper(code)

	for _, airport := range wellKnown {
		if airport.Code == key {
			return Info{
				IATACode:    airport.Code,
				City:        airport.City,
				Name:        airport.Name,
				DisplayName: displayName(airport.City, airport.Code),
			}, true
		}
	}

	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return cached, true
	}

	if r.lookup == nil {
		return Info{}, false
	}

	record, err := r.lookup.LookupCode(ctx, key)
	if err != nil {
		// Lookup failures are treated as "not found", never propagated.
		r.logger.Warn("airport lookup failed",
			logger.Field{Key: "code", Value: key},
			logger.Field{Key: "err", Value: err},
		)
		return Info{}, false
	}
	if record == nil {
		return Info{}, false
	}

	info := Info{
		IATACode:    record.IATACode,
		City:        record.City,
		Name:        record.Name,
		DisplayName: displayName(record.City, record.IATACode),
	}

	r.mu.Lock()
	r.cache[key] = info
	r.mu.Unlock()

	return info, true
}

func displayName(city, code string) string {
	return fmt.Sprintf("%s (%s)", city, code)
}
