package history

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skytrip/internal/flight"
)

type Handler struct {
	log *Log
}

func NewHandler(log *Log) *Handler {
	return &Handler{log: log}
}

// RegisterRoutes wires the history endpoints. requireAuth gates the
// booking-recording route only; pass nil to run without an identity provider
// (guest mode).
func (h *Handler) RegisterRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	router.GET("/v1/history/searches", h.ListSearchesHandler)
	router.GET("/v1/history/bookings", h.ListBookingsHandler)
	router.DELETE("/v1/history/searches", h.ClearSearchesHandler)

	if requireAuth != nil {
		router.POST("/v1/bookings", requireAuth, h.RecordBookingHandler)
		return
	}
	router.POST("/v1/bookings", h.RecordBookingHandler)
}

func (h *Handler) ListSearchesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"searches": h.log.Searches()})
}

func (h *Handler) ListBookingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bookings": h.log.Bookings()})
}

// ClearSearchesHandler godoc
// @Summary      Clear recent searches
// @Description  Remove the persisted search history; irreversible
// @Tags         history
// @Produce      json
// @Success      204
// @Router       /v1/history/searches [delete]
func (h *Handler) ClearSearchesHandler(c *gin.Context) {
	if err := h.log.ClearSearches(c.Request.Context()); err != nil {
		flight.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordBookingHandler godoc
// @Summary      Record a booking
// @Description  Persist a booking derived from a searched offer
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body flight.Offer true "Offer to book"
// @Success      201 {object} BookingEntry
// @Failure      422 {object} map[string]string
// @Router       /v1/bookings [post]
func (h *Handler) RecordBookingHandler(c *gin.Context) {
	var offer flight.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  flight.ErrorCodeValidation,
		})
		return
	}

	entry, err := h.log.RecordBooking(c.Request.Context(), offer)
	if err != nil {
		flight.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
