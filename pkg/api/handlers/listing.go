package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
	"github.com/jordanlanch/listingpro/pkg/listings"
	"github.com/jordanlanch/listingpro/pkg/models"
)

// ListingHandler handles listing-related HTTP requests.
type ListingHandler struct {
	service  *listings.Service
	validate *validator.Validate
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(service *listings.Service) *ListingHandler {
	return &ListingHandler{
		service:  service,
		validate: validator.New(),
	}
}

// List returns the filtered, sorted view of the working set.
func (h *ListingHandler) List(c echo.Context) error {
	var criteria listings.Criteria
	if err := c.Bind(&criteria); err != nil {
		return apierrors.Bind(c)
	}
	return c.JSON(http.StatusOK, h.service.Query(criteria))
}

// Get returns a single listing by id.
func (h *ListingHandler) Get(c echo.Context) error {
	l, err := h.service.Get(c.Param("id"))
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Create adds a manually entered listing.
func (h *ListingHandler) Create(c echo.Context) error {
	var input models.ListingInput
	if err := c.Bind(&input); err != nil {
		return apierrors.Bind(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return apierrors.Validation(c, err)
	}

	l, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// Import adds a batch of parsed spreadsheet rows.
func (h *ListingHandler) Import(c echo.Context) error {
	var inputs []models.ListingInput
	if err := c.Bind(&inputs); err != nil {
		return apierrors.Bind(c)
	}

	added, err := h.service.Import(c.Request().Context(), inputs)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusCreated, added)
}

// Delete removes a listing and everything attached to it.
func (h *ListingHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, models.SuccessResponse{Message: "Listing deleted"})
}

// ToggleFavorite flips the favorite flag.
func (h *ListingHandler) ToggleFavorite(c echo.Context) error {
	l, err := h.service.ToggleFavorite(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// SetNotes replaces the notes on a listing.
func (h *ListingHandler) SetNotes(c echo.Context) error {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return apierrors.Bind(c)
	}

	l, err := h.service.SetNotes(c.Request().Context(), c.Param("id"), body.Notes)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// SetTags replaces the tag list on a listing.
func (h *ListingHandler) SetTags(c echo.Context) error {
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := c.Bind(&body); err != nil {
		return apierrors.Bind(c)
	}

	l, err := h.service.SetTags(c.Request().Context(), c.Param("id"), body.Tags)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// SetLeadScore stores a lead score on a listing.
func (h *ListingHandler) SetLeadScore(c echo.Context) error {
	var input models.LeadScoreInput
	if err := c.Bind(&input); err != nil {
		return apierrors.Bind(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return apierrors.Validation(c, err)
	}

	l, err := h.service.SetLeadScore(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// SetValuation stores a valuation on a listing.
func (h *ListingHandler) SetValuation(c echo.Context) error {
	var input models.ValuationInput
	if err := c.Bind(&input); err != nil {
		return apierrors.Bind(c)
	}

	l, err := h.service.SetValuation(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// GetActive returns the listing open in the detail view.
func (h *ListingHandler) GetActive(c echo.Context) error {
	l, ok := h.service.Active()
	if !ok {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, l)
}

// SetActive opens a listing in the detail view.
func (h *ListingHandler) SetActive(c echo.Context) error {
	if err := h.service.SetActive(c.Param("id")); err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, models.SuccessResponse{Message: "Active listing set"})
}

// ClearActive closes the detail view.
func (h *ListingHandler) ClearActive(c echo.Context) error {
	h.service.ClearActive()
	return c.JSON(http.StatusOK, models.SuccessResponse{Message: "Active listing cleared"})
}
