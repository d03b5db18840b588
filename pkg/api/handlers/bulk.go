package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/listings"
	"github.com/jordanlanch/listingpro/pkg/models"
)

// BulkHandler handles selection state and bulk operations.
type BulkHandler struct {
	service *listings.Service
}

// NewBulkHandler creates a new bulk operations handler.
func NewBulkHandler(service *listings.Service) *BulkHandler {
	return &BulkHandler{service: service}
}

// GetSelection returns the currently selected ids.
func (h *BulkHandler) GetSelection(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Selection().IDs())
}

// ToggleSelection flips one id in or out of the selection.
func (h *BulkHandler) ToggleSelection(c echo.Context) error {
	h.service.Selection().Toggle(c.Param("id"))
	return c.JSON(http.StatusOK, h.service.Selection().IDs())
}

// ToggleAllSelection selects every currently visible listing, or clears the
// selection when all of them are already selected.
func (h *BulkHandler) ToggleAllSelection(c echo.Context) error {
	var criteria listings.Criteria
	if err := c.Bind(&criteria); err != nil {
		return apierrors.Bind(c)
	}

	visible := h.service.Query(criteria)
	ids := make([]string, len(visible))
	for i, l := range visible {
		ids[i] = l.ID
	}
	h.service.Selection().ToggleAll(ids)
	return c.JSON(http.StatusOK, h.service.Selection().IDs())
}

// ClearSelection empties the selection.
func (h *BulkHandler) ClearSelection(c echo.Context) error {
	h.service.Selection().Clear()
	return c.JSON(http.StatusOK, models.SuccessResponse{Message: "Selection cleared"})
}

// Favorite marks every selected listing as favorite or not.
func (h *BulkHandler) Favorite(c echo.Context) error {
	var body struct {
		Favorite bool `json:"favorite"`
	}
	if err := c.Bind(&body); err != nil {
		return apierrors.Bind(c)
	}

	count, err := h.service.BulkFavorite(c.Request().Context(), body.Favorite)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": count})
}

// AddTags appends comma-separated tags to every selected listing.
func (h *BulkHandler) AddTags(c echo.Context) error {
	var body struct {
		Tags string `json:"tags"`
	}
	if err := c.Bind(&body); err != nil {
		return apierrors.Bind(c)
	}

	count, err := h.service.BulkAddTags(c.Request().Context(), body.Tags)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": count})
}

// Delete removes every selected listing. The request must carry the
// confirmation flag; without it the operation is declined.
func (h *BulkHandler) Delete(c echo.Context) error {
	var body struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := c.Bind(&body); err != nil {
		return apierrors.Bind(c)
	}
	if !body.Confirmed {
		return apierrors.Domain(c, domain.NewConfirmationDeclinedError("bulk delete"))
	}

	count, err := h.service.BulkDelete(c.Request().Context())
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"deleted": count})
}
