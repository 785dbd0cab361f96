package trips

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/trips/popular", h.PopularTripsHandler)
}

func (h *Handler) PopularTripsHandler(c *gin.Context) {
	limit := DefaultPopularLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	c.JSON(http.StatusOK, gin.H{"trips": Popular(limit)})
}
