package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/listingpro/pkg/analytics"
	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
)

// AnalyticsHandler serves the dashboard statistics.
type AnalyticsHandler struct {
	service *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Stats returns the full dashboard summary.
func (h *AnalyticsHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Stats(c.Request().Context()))
}

// Stat returns one stat by its field name.
func (h *AnalyticsHandler) Stat(c echo.Context) error {
	key := c.Param("key")
	value, err := h.service.Lookup(c.Request().Context(), key)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, map[string]float64{key: value})
}
