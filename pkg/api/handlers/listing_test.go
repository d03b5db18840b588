package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/listingpro/pkg/listings"
	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/storage"
	"github.com/jordanlanch/listingpro/pkg/tasks"
)

func testSeed() []models.Listing {
	return []models.Listing{
		{ID: "seed_1", Address: "12 Oak St", City: "Austin", Zip: "78701", Price: 300000,
			LeadType: models.LeadTypeExpired, ExpirationDate: "2026-05-01", Tags: []string{}},
		{ID: "seed_2", Address: "9 Pine Ave", City: "Dallas", Zip: "75201", Price: 450000,
			LeadType: models.LeadTypeFSBO, ExpirationDate: "2026-06-01", Tags: []string{}},
	}
}

func setupAPI(t *testing.T) (*echo.Echo, *listings.Service) {
	t.Helper()
	store := storage.NewOverlayStore(storage.NewMemoryKV(), logger.Nop(), nil)
	taskService := tasks.NewService(store, logger.Nop())
	service := listings.NewService(testSeed(), store, taskService, nil, logger.Nop(), nil)
	service.Load(context.Background())

	e := echo.New()
	h := NewListingHandler(service)
	b := NewBulkHandler(service)

	e.GET("/api/v1/listings", h.List)
	e.POST("/api/v1/listings", h.Create)
	e.POST("/api/v1/listings/import", h.Import)
	e.GET("/api/v1/listings/:id", h.Get)
	e.DELETE("/api/v1/listings/:id", h.Delete)
	e.POST("/api/v1/listings/:id/favorite", h.ToggleFavorite)
	e.PUT("/api/v1/listings/:id/notes", h.SetNotes)
	e.PUT("/api/v1/listings/:id/tags", h.SetTags)
	e.PUT("/api/v1/listings/:id/score", h.SetLeadScore)
	e.PUT("/api/v1/listings/:id/valuation", h.SetValuation)
	e.GET("/api/v1/selection", b.GetSelection)
	e.POST("/api/v1/selection/toggle/:id", b.ToggleSelection)
	e.POST("/api/v1/selection/toggle-all", b.ToggleAllSelection)
	e.DELETE("/api/v1/selection", b.ClearSelection)
	e.POST("/api/v1/bulk/favorite", b.Favorite)
	e.POST("/api/v1/bulk/tags", b.AddTags)
	e.POST("/api/v1/bulk/delete", b.Delete)

	return e, service
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListingEndpoints(t *testing.T) {
	e, _ := setupAPI(t)

	t.Run("Success - list with search criteria", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/listings?searchTerm=oak", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got []models.Listing
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "seed_1", got[0].ID)
	})

	t.Run("Success - get by id", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/listings/seed_2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "9 Pine Ave")
	})

	t.Run("Error - get unknown id", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/listings/seed_404", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not_found")
	})

	t.Run("Success - create with string price", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/listings",
			`{"address": "44 Birch Way", "price": "250000", "leadType": "FSBO"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var got models.Listing
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, strings.HasPrefix(got.ID, "user_"))
		assert.Equal(t, 250000.0, got.Price)
	})

	t.Run("Error - create without address", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/listings", `{"city": "Austin"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success - toggle favorite", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/listings/seed_1/favorite", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isFavorite":true`)
	})

	t.Run("Error - invalid lead score", func(t *testing.T) {
		rec := doJSON(e, http.MethodPut, "/api/v1/listings/seed_1/score",
			`{"score": "Volcanic", "reason": "nope"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation_error")
	})

	t.Run("Error - valuation without estimated value", func(t *testing.T) {
		rec := doJSON(e, http.MethodPut, "/api/v1/listings/seed_1/valuation",
			`{"reasoning": "just vibes"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success - import batch", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/listings/import",
			`[{"address": "1 First St", "price": 100000}, {"city": "skipped"}]`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var got []models.Listing
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 1)
	})

	t.Run("Success - delete", func(t *testing.T) {
		rec := doJSON(e, http.MethodDelete, "/api/v1/listings/seed_2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(e, http.MethodGet, "/api/v1/listings/seed_2", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBulkEndpoints(t *testing.T) {
	e, service := setupAPI(t)

	t.Run("Success - selection toggle and readback", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/selection/toggle/seed_1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["seed_1"]`, rec.Body.String())
	})

	t.Run("Success - bulk favorite clears the selection", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/bulk/favorite", `{"favorite": true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"updated": 1}`, rec.Body.String())
		assert.Zero(t, service.Selection().Len())
	})

	t.Run("Error - bulk tags with empty selection", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/bulk/tags", `{"tags": "hot"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "empty_selection")
	})

	t.Run("Error - unconfirmed bulk delete", func(t *testing.T) {
		doJSON(e, http.MethodPost, "/api/v1/selection/toggle/seed_1", "")
		rec := doJSON(e, http.MethodPost, "/api/v1/bulk/delete", `{"confirmed": false}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "confirmation_declined")
	})

	t.Run("Success - confirmed bulk delete", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/bulk/delete", `{"confirmed": true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deleted": 1}`, rec.Body.String())
	})

	t.Run("Success - toggle all over the current view", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/selection/toggle-all", `{}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var ids []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ids))
		assert.Equal(t, len(service.Listings()), len(ids))
	})
}
