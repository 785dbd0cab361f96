package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytrip/internal/flight"
)

func newTestHandlerRouter(requireAuth gin.HandlerFunc) (*gin.Engine, *Log) {
	gin.SetMode(gin.TestMode)
	log, _ := newTestLog()
	router := gin.New()
	NewHandler(log).RegisterRoutes(router, requireAuth)
	return router, log
}

func TestListSearchesHandler(t *testing.T) {
	router, log := newTestHandlerRouter(nil)
	require.NoError(t, log.RecordSearch(context.Background(), flight.SearchRequest{
		Origin: "JFK", Destination: "LAX", Date: "2026-12-01",
	}, 2))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/history/searches", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Searches []SearchEntry `json:"searches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Searches, 1)
	assert.Equal(t, "JFK", resp.Searches[0].Origin)
}

func TestClearSearchesHandler(t *testing.T) {
	router, log := newTestHandlerRouter(nil)
	require.NoError(t, log.RecordSearch(context.Background(), flight.SearchRequest{
		Origin: "JFK", Destination: "LAX", Date: "2026-12-01",
	}, 2))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/history/searches", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, log.Searches())
}

func TestRecordBookingHandler_Created(t *testing.T) {
	router, log := newTestHandlerRouter(nil)

	body, err := json.Marshal(testOffer())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var entry BookingEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "FL0007", entry.FlightNumber)
	assert.Equal(t, StatusUpcoming, entry.Status)
	assert.Len(t, log.Bookings(), 1)
}

func TestRecordBookingHandler_IncompleteOffer(t *testing.T) {
	router, log := newTestHandlerRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"id": "9", "legs": []}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(flight.ErrorCodeIncompleteOffer))
	assert.Empty(t, log.Bookings())
}

func TestRecordBookingHandler_AuthGate(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You must be signed in to book flights."})
	}
	router, log := newTestHandlerRouter(deny)

	body, err := json.Marshal(testOffer())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, log.Bookings())

	// read endpoints stay open
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/history/bookings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
