package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
	"github.com/jordanlanch/listingpro/pkg/export"
	"github.com/jordanlanch/listingpro/pkg/listings"
)

// ExportHandler writes listing views to downloadable files.
type ExportHandler struct {
	listings *listings.Service
	export   *export.Service
}

// NewExportHandler creates a new export handler.
func NewExportHandler(listingService *listings.Service, exportService *export.Service) *ExportHandler {
	return &ExportHandler{listings: listingService, export: exportService}
}

// Create exports the current view. The request carries the same criteria as
// the list endpoint plus a format.
func (h *ExportHandler) Create(c echo.Context) error {
	var req struct {
		listings.Criteria
		Format string `json:"format"`
	}
	if err := c.Bind(&req); err != nil {
		return apierrors.Bind(c)
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	view := h.listings.Query(req.Criteria)
	path, err := h.export.Export(view, req.Format)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"file":  filepath.Base(path),
		"count": len(view),
	})
}
