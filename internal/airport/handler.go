package airport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skytrip/internal/flight"
)

type Handler struct {
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/airports/lookup", h.LookupHandler)
}

// LookupHandler godoc
// @Summary      Resolve an airport code
// @Description  Resolve a 3-letter IATA code to a display name
// @Tags         airports
// @Produce      json
// @Param        code query string true "IATA code"
// @Success      200 {object} Info
// @Failure      404 {object} map[string]string
// @Router       /v1/airports/lookup [get]
func (h *Handler) LookupHandler(c *gin.Context) {
	code := c.Query("code")

	info, ok := h.resolver.Resolve(c.Request.Context(), code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Airport not found.",
			"code":  flight.ErrorCodeNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, info)
}
