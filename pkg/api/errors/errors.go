package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/models"
)

// Domain maps a domain error to its HTTP response.
func Domain(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case domain.IsValidation(err):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case domain.IsBadRequest(err):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
	case domain.IsConfirmationDeclined(err):
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "confirmation_declined",
			Message: err.Error(),
		})
	case domain.IsEmptySelection(err):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "empty_selection",
			Message: err.Error(),
		})
	}
	return Internal(c, err)
}

// Bind returns the response for an undecodable request body.
func Bind(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

// Validation returns the response for a failed input validation.
func Validation(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// Internal returns a generic internal server error without exposing details.
func Internal(c echo.Context, err error) error {
	c.Logger().Errorf("internal error on %s: %v", c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}
