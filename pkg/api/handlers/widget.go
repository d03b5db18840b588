package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/widgets"
)

// WidgetHandler handles dashboard widget HTTP requests.
type WidgetHandler struct {
	service  *widgets.Service
	validate *validator.Validate
}

// NewWidgetHandler creates a new widget handler.
func NewWidgetHandler(service *widgets.Service) *WidgetHandler {
	return &WidgetHandler{service: service, validate: validator.New()}
}

// List returns every widget in dashboard order.
func (h *WidgetHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.List())
}

// Create appends a widget to the dashboard.
func (h *WidgetHandler) Create(c echo.Context) error {
	var input models.WidgetInput
	if err := c.Bind(&input); err != nil {
		return apierrors.Bind(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return apierrors.Validation(c, err)
	}

	w, err := h.service.Add(c.Request().Context(), input)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

// Update replaces a widget's title, type and content.
func (h *WidgetHandler) Update(c echo.Context) error {
	var input models.WidgetInput
	if err := c.Bind(&input); err != nil {
		return apierrors.Bind(c)
	}

	w, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

// Delete removes a widget.
func (h *WidgetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, models.SuccessResponse{Message: "Widget removed"})
}
