package flight

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skytrip/pkg/logger"
)

// SearchRecorder records the outcome of a completed search. Implemented by
// the history log; an interface here keeps the dependency one-directional.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, req SearchRequest, resultCount int) error
}

type SearchResponse struct {
	Criteria SearchRequest `json:"search_criteria"`
	Count    int           `json:"count"`
	Offers   []Offer       `json:"offers"`
}

type Handler struct {
	client   *Client
	recorder SearchRecorder
	logger   logger.Client
}

func NewHandler(client *Client, recorder SearchRecorder, logger logger.Client) *Handler {
	return &Handler{
		client:   client,
		recorder: recorder,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/flights/search", h.SearchFlightsHandler)
}

// SearchFlightsHandler godoc
// @Summary      Search flights
// @Description  Validate a search request and fetch offers from the configured provider
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body SearchRequest true "Search Criteria"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/flights/search [post]
func (h *Handler) SearchFlightsHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	offers, err := h.client.Search(c.Request.Context(), req)
	if err != nil {
		SendError(c, err)
		return
	}

	normalized := NormalizeRequest(req)
	if err := h.recorder.RecordSearch(c.Request.Context(), normalized, len(offers)); err != nil {
		// A failed history write never fails the search itself.
		h.logger.Error("failed to record search",
			logger.Field{Key: "origin", Value: normalized.Origin},
			logger.Field{Key: "destination", Value: normalized.Destination},
			logger.Field{Key: "err", Value: err},
		)
	}

	c.JSON(http.StatusOK, SearchResponse{
		Criteria: normalized,
		Count:    len(offers),
		Offers:   offers,
	})
}

// SendError maps an application error onto the wire. Unknown errors become a
// generic 500; raw error text is never shown to the end user.
func SendError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal Server Error",
		"code":  ErrorCodeInternalFailure,
	})
}
