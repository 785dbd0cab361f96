package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytrip/internal/flight"
	"skytrip/pkg/kvstore"
	"skytrip/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...logger.Field) {}
func (nopLogger) Info(string, ...logger.Field)  {}
func (nopLogger) Warn(string, ...logger.Field)  {}
func (nopLogger) Error(string, ...logger.Field) {}

type sequenceIDs struct {
	next int64
}

func (s *sequenceIDs) GenerateID() int64 {
	s.next++
	return s.next
}

func (s *sequenceIDs) GenerateStringID() string {
	return strconv.FormatInt(s.GenerateID(), 10)
}

type failingStore struct {
	kvstore.Store
	setErr error
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func newTestLog() (*Log, kvstore.Store) {
	store := kvstore.NewMemoryStore()
	return NewLog(store, &sequenceIDs{}, nopLogger{}), store
}

func testOffer() flight.Offer {
	day := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	return flight.Offer{
		ID:    "7",
		Price: flight.Price{Formatted: "$245.00", Raw: 245, Currency: "USD"},
		Legs: []flight.Leg{{
			Origin:          flight.Place{IATACode: "JFK", City: "New York"},
			Destination:     flight.Place{IATACode: "LAX", City: "Los Angeles"},
			Departure:       day.Add(8*time.Hour + 30*time.Minute),
			Arrival:         day.Add(14*time.Hour + 35*time.Minute),
			DurationMinutes: 365,
			Carrier:         "Delta",
			StopCount:       0,
		}},
	}
}

func TestRecordSearch_KeepsNewestFive(t *testing.T) {
	log, _ := newTestLog()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		err := log.RecordSearch(ctx, flight.SearchRequest{
			Origin:      fmt.Sprintf("A%02d", i),
			Destination: "LAX",
			Date:        "2026-12-01",
		}, i)
		require.NoError(t, err)
	}

	searches := log.Searches()
	require.Len(t, searches, 5)

	// newest first; the first recorded search fell off
	assert.Equal(t, "A05", searches[0].Origin)
	assert.Equal(t, "A01", searches[4].Origin)
	for _, entry := range searches {
		assert.NotEqual(t, "A00", entry.Origin)
	}
}

func TestRecordSearch_NormalizesEndpoints(t *testing.T) {
	log, _ := newTestLog()

	err := log.RecordSearch(context.Background(), flight.SearchRequest{
		Origin:      " jfk ",
		Destination: "lax",
		Date:        "2026-12-01",
	}, 2)
	require.NoError(t, err)

	searches := log.Searches()
	require.Len(t, searches, 1)
	assert.Equal(t, "JFK", searches[0].Origin)
	assert.Equal(t, "LAX", searches[0].Destination)
	assert.Equal(t, 2, searches[0].ResultCount)
	assert.NotEmpty(t, searches[0].ID)
	assert.Positive(t, searches[0].CreatedAt)
}

func TestRecordSearch_SurvivesReload(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()

	first := NewLog(store, &sequenceIDs{}, nopLogger{})
	require.NoError(t, first.RecordSearch(ctx, flight.SearchRequest{
		Origin: "JFK", Destination: "LAX", Date: "2026-12-01",
	}, 3))

	second := NewLog(store, &sequenceIDs{}, nopLogger{})
	second.Load(ctx)

	assert.Equal(t, first.Searches(), second.Searches())
}

func TestLoad_MalformedDataDegradesToEmpty(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "recentSearches", "{not json"))
	require.NoError(t, store.Set(ctx, "bookingHistory", "42"))

	log := NewLog(store, &sequenceIDs{}, nopLogger{})
	log.Load(ctx)

	assert.Empty(t, log.Searches())
	assert.Empty(t, log.Bookings())
}

func TestRecordBooking_DerivesEntryFromFirstLeg(t *testing.T) {
	log, _ := newTestLog()

	entry, err := log.RecordBooking(context.Background(), testOffer())
	require.NoError(t, err)

	assert.Equal(t, "FL0007", entry.FlightNumber)
	assert.Equal(t, "Delta", entry.Airline)
	assert.Equal(t, "New York (JFK)", entry.From)
	assert.Equal(t, "Los Angeles (LAX)", entry.To)
	assert.Equal(t, "Dec 1, 2026", entry.Date)
	assert.Equal(t, "$245.00", entry.Price)
	assert.Equal(t, StatusUpcoming, entry.Status)
	assert.Equal(t, "8:30 AM", entry.DepartureTime)
	assert.Equal(t, "2:35 PM", entry.ArrivalTime)
	assert.Equal(t, "6h 5m", entry.Duration)
	assert.Len(t, entry.Reference, 6)

	bookings := log.Bookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, entry, bookings[0])
}

func TestRecordBooking_UnknownAirlineFallback(t *testing.T) {
	log, _ := newTestLog()

	offer := testOffer()
	offer.Legs[0].Carrier = ""

	entry, err := log.RecordBooking(context.Background(), offer)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Airline", entry.Airline)
}

func TestRecordBooking_RejectsOfferWithoutLegs(t *testing.T) {
	log, store := newTestLog()
	ctx := context.Background()

	_, err := log.RecordBooking(ctx, flight.Offer{ID: "9"})

	var appErr *flight.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, flight.ErrorCodeIncompleteOffer, appErr.Code)

	assert.Empty(t, log.Bookings())
	_, err = store.Get(ctx, "bookingHistory")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestRecordBooking_RollsBackOnPersistFailure(t *testing.T) {
	store := &failingStore{Store: kvstore.NewMemoryStore(), setErr: errors.New("store down")}
	log := NewLog(store, &sequenceIDs{}, nopLogger{})

	_, err := log.RecordBooking(context.Background(), testOffer())
	require.Error(t, err)
	assert.Empty(t, log.Bookings())
}

func TestRecordBooking_Unbounded(t *testing.T) {
	log, _ := newTestLog()
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := log.RecordBooking(ctx, testOffer())
		require.NoError(t, err)
	}

	assert.Len(t, log.Bookings(), 8)
}

func TestClearSearches_RemovesKey(t *testing.T) {
	log, store := newTestLog()
	ctx := context.Background()

	require.NoError(t, log.RecordSearch(ctx, flight.SearchRequest{
		Origin: "JFK", Destination: "LAX", Date: "2026-12-01",
	}, 1))
	require.NoError(t, log.ClearSearches(ctx))

	assert.Empty(t, log.Searches())
	_, err := store.Get(ctx, "recentSearches")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	// bookings are untouched
	_, err = log.RecordBooking(ctx, testOffer())
	require.NoError(t, err)
	require.NoError(t, log.ClearSearches(ctx))
	assert.Len(t, log.Bookings(), 1)
}
