package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/tasks"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	service  *tasks.Service
	validate *validator.Validate
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(service *tasks.Service) *TaskHandler {
	return &TaskHandler{service: service, validate: validator.New()}
}

// List returns every task, newest first. With ?listingId= it returns only
// the tasks linked to that listing.
func (h *TaskHandler) List(c echo.Context) error {
	if listingID := c.QueryParam("listingId"); listingID != "" {
		return c.JSON(http.StatusOK, h.service.ForListing(listingID))
	}
	return c.JSON(http.StatusOK, h.service.List())
}

// Create adds a task.
func (h *TaskHandler) Create(c echo.Context) error {
	var input models.TaskInput
	if err := c.Bind(&input); err != nil {
		return apierrors.Bind(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return apierrors.Validation(c, err)
	}

	task, err := h.service.Add(c.Request().Context(), input)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Update applies a partial task update.
func (h *TaskHandler) Update(c echo.Context) error {
	var upd models.TaskUpdate
	if err := c.Bind(&upd); err != nil {
		return apierrors.Bind(c)
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// ToggleComplete flips a task's completed flag.
func (h *TaskHandler) ToggleComplete(c echo.Context) error {
	task, err := h.service.ToggleComplete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, models.SuccessResponse{Message: "Task deleted"})
}
