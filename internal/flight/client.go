package flight

import (
	"context"
	"errors"
	"strings"

	"skytrip/pkg/logger"
)

const (
	msgMissingEndpoints = "Please enter both origin and destination airports."
	msgSameEndpoint     = "Origin and destination cannot be the same."
	msgMissingDate      = "Please select a departure date."
	msgSearchFailed     = "Unable to search flights. Please verify your airport codes and try again."
)

// Provider is the pluggable source of flight offers. The remote and the
// simulated implementations live in pkg/flightclient; the concrete choice is
// injected at construction time.
type Provider interface {
	Fetch(ctx context.Context, req SearchRequest) ([]Offer, error)
}

// Client validates a search request and delegates to its Provider. It applies
// no sorting, filtering, or deduplication: provider order is preserved and
// any such policy belongs to the caller.
type Client struct {
	provider Provider
	logger   logger.Client
}

func NewClient(provider Provider, logger logger.Client) *Client {
	return &Client{
		provider: provider,
		logger:   logger,
	}
}

// NormalizeRequest uppercases and trims the endpoints. The normalized form is
// what reaches the provider and what history records persist.
func NormalizeRequest(req SearchRequest) SearchRequest {
	req.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))
	req.Date = strings.TrimSpace(req.Date)
	return req
}

// Search validates req, fetches offers from the provider, and returns them in
// provider order. Validation failures short-circuit before any network call;
// provider failures come back as a single user-facing ProviderError with no
// automatic retry.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Offer, error) {
	req = NormalizeRequest(req)

	if req.Origin == "" || req.Destination == "" {
		return nil, NewValidationError(msgMissingEndpoints)
	}
	if req.Origin == req.Destination {
		return nil, NewValidationError(msgSameEndpoint)
	}
	if req.Date == "" {
		return nil, NewValidationError(msgMissingDate)
	}

	offers, err := c.provider.Fetch(ctx, req)
	if err != nil {
		var appErr *AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		c.logger.Error("flight search failed",
			logger.Field{Key: "origin", Value: req.Origin},
			logger.Field{Key: "destination", Value: req.Destination},
			logger.Field{Key: "err", Value: err},
		)
		return nil, NewProviderError(msgSearchFailed, err)
	}

	return offers, nil
}
