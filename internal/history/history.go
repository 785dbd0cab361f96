package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"skytrip/internal/flight"
	"skytrip/pkg/idgen"
	"skytrip/pkg/kvstore"
	"skytrip/pkg/logger"
)

const (
	searchHistoryKey  = "recentSearches"
	bookingHistoryKey = "bookingHistory"

	// The recent-search list keeps only the newest entries; the booking list
	// is unbounded.
	maxRecentSearches = 5

	fallbackAirline = "Unknown Airline"
)

type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// SearchEntry is the persisted summary of one executed search. The JSON field
// names are part of the stored format and must stay stable across releases.
type SearchEntry struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	CreatedAt   int64  `json:"timestamp"`
	ResultCount int    `json:"resultsCount"`
}

// BookingEntry is the persisted record of one booked offer.
type BookingEntry struct {
	ID            string        `json:"id"`
	Reference     string        `json:"bookingReference"`
	FlightNumber  string        `json:"flightNumber"`
	Airline       string        `json:"airline"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	Date          string        `json:"date"`
	Price         string        `json:"price"`
	Status        BookingStatus `json:"status"`
	CreatedAt     int64         `json:"bookingDate"`
	DepartureTime string        `json:"departureTime"`
	ArrivalTime   string        `json:"arrivalTime"`
	Duration      string        `json:"duration"`
}

// Log owns the search and booking history lists. Both are newest-first,
// persisted as JSON through the key-value store, and re-read on Load. Entries
// are immutable once created; the only mutation is list membership. The mutex
// serializes the read-modify-write against the store.
type Log struct {
	store  kvstore.Store
	ids    idgen.Generator
	logger logger.Client

	mu       sync.Mutex
	searches []SearchEntry
	bookings []BookingEntry
}

func NewLog(store kvstore.Store, ids idgen.Generator, logger logger.Client) *Log {
	return &Log{
		store:  store,
		ids:    ids,
		logger: logger,
	}
}

// Load re-reads both lists from the store. An absent key means an empty
// list; a malformed stored value degrades to an empty list and is logged,
// never surfaced.
func (l *Log) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.searches = loadList[SearchEntry](ctx, l, searchHistoryKey)
	l.bookings = loadList[BookingEntry](ctx, l, bookingHistoryKey)
}

func loadList[T any](ctx context.Context, l *Log, key string) []T {
	value, err := l.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			l.logger.Error("failed to read history",
				logger.Field{Key: "key", Value: key},
				logger.Field{Key: "err", Value: err},
			)
		}
		return []T{}
	}

	var entries []T
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		l.logger.Error("malformed history data, treating as empty",
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "err", Value: err},
		)
		return []T{}
	}
	return entries
}

// RecordSearch prepends a fresh entry and truncates the list to the newest
// five before persisting.
func (l *Log) RecordSearch(ctx context.Context, req flight.SearchRequest, resultCount int) error {
	req = flight.NormalizeRequest(req)

	entry := SearchEntry{
		ID:          l.ids.GenerateStringID(),
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.Date,
		CreatedAt:   time.Now().UnixMilli(),
		ResultCount: resultCount,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.searches = append([]SearchEntry{entry}, l.searches...)
	if len(l.searches) > maxRecentSearches {
		l.searches = l.searches[:maxRecentSearches]
	}

	return l.persist(ctx, searchHistoryKey, l.searches)
}

// RecordBooking derives a booking record from the offer's first leg and
// prepends it to the booking list. Offers without legs fail with an
// incomplete-offer error and nothing is persisted.
func (l *Log) RecordBooking(ctx context.Context, offer flight.Offer) (BookingEntry, error) {
	if len(offer.Legs) == 0 {
		return BookingEntry{}, flight.NewIncompleteOfferError("Flight information is incomplete.")
	}

	leg := offer.Legs[0]

	airline := leg.Carrier
	if airline == "" {
		airline = fallbackAirline
	}

	entry := BookingEntry{
		ID:            l.ids.GenerateStringID(),
		Reference:     newBookingReference(),
		FlightNumber:  "FL" + padCode(offer.ID, 4),
		Airline:       airline,
		From:          fmt.Sprintf("%s (%s)", leg.Origin.City, leg.Origin.IATACode),
		To:            fmt.Sprintf("%s (%s)", leg.Destination.City, leg.Destination.IATACode),
		Date:          leg.Departure.Format("Jan 2, 2006"),
		Price:         offer.Price.Formatted,
		Status:        StatusUpcoming,
		CreatedAt:     time.Now().UnixMilli(),
		DepartureTime: leg.Departure.Format("3:04 PM"),
		ArrivalTime:   leg.Arrival.Format("3:04 PM"),
		Duration:      formatDuration(leg.DurationMinutes),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.bookings = append([]BookingEntry{entry}, l.bookings...)
	if err := l.persist(ctx, bookingHistoryKey, l.bookings); err != nil {
		// Roll the in-memory list back so a failed write is not replayed as
		// state the store never saw.
		l.bookings = l.bookings[1:]
		return BookingEntry{}, err
	}

	return entry, nil
}

// ClearSearches removes the persisted key and empties the in-memory list.
// Irreversible; the caller is responsible for user confirmation.
func (l *Log) ClearSearches(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Del(ctx, searchHistoryKey); err != nil {
		return err
	}
	l.searches = []SearchEntry{}
	return nil
}

// Searches returns the recent searches, newest first.
func (l *Log) Searches() []SearchEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]SearchEntry, len(l.searches))
	copy(out, l.searches)
	return out
}

// Bookings returns the booking history, newest first.
func (l *Log) Bookings() []BookingEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]BookingEntry, len(l.bookings))
	copy(out, l.bookings)
	return out
}

func (l *Log) persist(ctx context.Context, key string, list any) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := l.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// padCode left-pads id with zeros to the fixed display width.
func padCode(id string, width int) string {
	if len(id) >= width {
		return id
	}
	return strings.Repeat("0", width-len(id)) + id
}

func formatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func newBookingReference() string {
	ref := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return ref[:6]
}
