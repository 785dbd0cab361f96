package flight

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
)

type recorderSpy struct {
	calls int
	req   SearchRequest
	count int
	err   error
}

func (r *recorderSpy) RecordSearch(_ context.Context, req SearchRequest, resultCount int) error {
	r.calls++
	r.req = req
	r.count = resultCount
	return r.err
}

func newTestRouter(provider Provider, recorder SearchRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(NewClient(provider, nopLogger{}), recorder, nopLogger{})
	handler.RegisterRoutes(router)
	return router
}

func postSearch(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/flights/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSearchFlightsHandler_OK(t *testing.T) {
	provider := &stubProvider{offers: []Offer{
		{ID: "1", Price: Price{Formatted: "$240.00", Raw: 240, Currency: "USD"}, Legs: []Leg{{Carrier: "Delta"}}},
	}}
	recorder := &recorderSpy{}
	router := newTestRouter(provider, recorder)

	w := postSearch(t, router, `{"origin": "jfk", "destination": "LAX", "date": "2026-12-01"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "JFK", resp.Criteria.Origin)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Offers, 1)
	assert.Equal(t, "1", resp.Offers[0].ID)

	assert.Equal(t, 1, recorder.calls)
	assert.Equal(t, "JFK", recorder.req.Origin)
	assert.Equal(t, 1, recorder.count)
}

func TestSearchFlightsHandler_ValidationError(t *testing.T) {
	provider := &stubProvider{}
	recorder := &recorderSpy{}
	router := newTestRouter(provider, recorder)

	w := postSearch(t, router, `{"origin": "JFK", "destination": "JFK", "date": "2026-12-01"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Origin and destination cannot be the same.")
	assert.Contains(t, w.Body.String(), string(ErrorCodeValidation))
	assert.Zero(t, recorder.calls, "failed searches are not recorded")
}

func TestSearchFlightsHandler_ProviderFailure(t *testing.T) {
	provider := &stubProvider{err: context.DeadlineExceeded}
	router := newTestRouter(provider, &recorderSpy{})

	w := postSearch(t, router, `{"origin": "JFK", "destination": "LAX", "date": "2026-12-01"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), string(ErrorCodeProviderFailure))
	assert.NotContains(t, w.Body.String(), "deadline", "raw provider errors stay out of responses")
}

func TestSearchFlightsHandler_RecorderFailureDoesNotFailSearch(t *testing.T) {
	provider := &stubProvider{offers: []Offer{}}
	recorder := &recorderSpy{err: context.DeadlineExceeded}
	router := newTestRouter(provider, recorder)

	w := postSearch(t, router, `{"origin": "JFK", "destination": "LAX", "date": "2026-12-01"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchFlightsHandler_BadJSON(t *testing.T) {
	router := newTestRouter(&stubProvider{}, &recorderSpy{})

	w := postSearch(t, router, `{"origin": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON body")
}
