package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/listingpro/pkg/ai"
	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
	"github.com/jordanlanch/listingpro/pkg/listings"
	"github.com/jordanlanch/listingpro/pkg/models"
)

// AIHandler scores leads and estimates values through the AI service, then
// stores the result on the listing.
type AIHandler struct {
	listings *listings.Service
	ai       *ai.Service
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(listingService *listings.Service, aiService *ai.Service) *AIHandler {
	return &AIHandler{listings: listingService, ai: aiService}
}

// ScoreLead asks the model to rate a listing and saves the returned score.
func (h *AIHandler) ScoreLead(c echo.Context) error {
	ctx := c.Request().Context()

	l, err := h.listings.Get(c.Param("id"))
	if err != nil {
		return apierrors.Domain(c, err)
	}

	score, err := h.ai.ScoreLead(ctx, l)
	if err != nil {
		return apierrors.Internal(c, err)
	}

	updated, err := h.listings.SetLeadScore(ctx, l.ID, models.LeadScoreInput{
		Score:  string(score.Score),
		Reason: score.Reason,
	})
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// ValueProperty asks the model for a valuation and saves it.
func (h *AIHandler) ValueProperty(c echo.Context) error {
	ctx := c.Request().Context()

	l, err := h.listings.Get(c.Param("id"))
	if err != nil {
		return apierrors.Domain(c, err)
	}

	valuation, err := h.ai.ValueProperty(ctx, l)
	if err != nil {
		return apierrors.Internal(c, err)
	}

	estimated := models.Number(valuation.EstimatedValue)
	updated, err := h.listings.SetValuation(ctx, l.ID, models.ValuationInput{
		EstimatedValue: &estimated,
		Reasoning:      valuation.Reasoning,
	})
	if err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
