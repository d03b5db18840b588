package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/jordanlanch/listingpro/pkg/metrics"
	"github.com/jordanlanch/listingpro/pkg/models"
)

const scoreSystemPrompt = `You are an assistant for a real estate agent working expired, FSBO and pre-foreclosure leads. Reply with strict JSON only, no markdown.`

// Service scores leads and estimates property values through an LLM, rate
// limited so a dashboard full of listings cannot flood the API.
type Service struct {
	completer Completer
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
}

// NewService builds an AI service. requestsPerMinute caps outbound calls;
// m may be nil.
func NewService(completer Completer, requestsPerMinute int, m *metrics.Metrics) *Service {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	return &Service{
		completer: completer,
		limiter:   rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute),
		metrics:   m,
	}
}

// ScoreLead asks the LLM to rate a listing Hot, Warm or Cold.
func (s *Service) ScoreLead(ctx context.Context, l models.Listing) (*models.LeadScore, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	raw, err := s.completer.Complete(ctx, scoreSystemPrompt, scorePrompt(l))
	s.recordRequest("score", err == nil)
	if err != nil {
		return nil, err
	}
	return ParseLeadScore(raw)
}

// ValueProperty asks the LLM for a rough valuation of a listing.
func (s *Service) ValueProperty(ctx context.Context, l models.Listing) (*models.Valuation, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	raw, err := s.completer.Complete(ctx, scoreSystemPrompt, valuationPrompt(l))
	s.recordRequest("valuation", err == nil)
	if err != nil {
		return nil, err
	}
	return ParseValuation(raw)
}

func scorePrompt(l models.Listing) string {
	return fmt.Sprintf(
		`Rate this lead as "Hot", "Warm" or "Cold" and explain in one sentence.
Listing: %s, %s, %s %s. Type: %s. Lead type: %s. Price: $%.0f. Beds: %d. Baths: %.1f. Sqft: %d. Days on market previously: %d. Expired: %s.
Respond as {"score": "...", "reason": "..."}`,
		l.Address, l.City, l.State, l.Zip, l.PropertyType, l.LeadType,
		l.Price, l.Bedrooms, l.Bathrooms, l.Sqft, l.DaysOnMarketPreviously, l.ExpirationDate)
}

func valuationPrompt(l models.Listing) string {
	return fmt.Sprintf(
		`Estimate the market value of this property and explain in one sentence.
Listing: %s, %s, %s %s. Type: %s. Last list price: $%.0f. Beds: %d. Baths: %.1f. Sqft: %d. Year built: %d.
Respond as {"estimatedValue": 123456, "reasoning": "..."}`,
		l.Address, l.City, l.State, l.Zip, l.PropertyType,
		l.Price, l.Bedrooms, l.Bathrooms, l.Sqft, l.YearBuilt)
}

// ParseLeadScore decodes an LLM reply into a lead score, tolerating
// markdown code fences around the JSON.
func ParseLeadScore(raw string) (*models.LeadScore, error) {
	var score models.LeadScore
	if err := json.Unmarshal([]byte(stripFences(raw)), &score); err != nil {
		return nil, fmt.Errorf("unparseable score reply: %w", err)
	}
	if !score.Score.Valid() {
		return nil, fmt.Errorf("model returned score %q, want Hot, Warm or Cold", score.Score)
	}
	if score.Reason == "" {
		return nil, fmt.Errorf("model returned a score without a reason")
	}
	return &score, nil
}

// ParseValuation decodes an LLM reply into a valuation.
func ParseValuation(raw string) (*models.Valuation, error) {
	var v models.Valuation
	if err := json.Unmarshal([]byte(stripFences(raw)), &v); err != nil {
		return nil, fmt.Errorf("unparseable valuation reply: %w", err)
	}
	if v.EstimatedValue <= 0 {
		return nil, fmt.Errorf("model returned estimated value %.2f", v.EstimatedValue)
	}
	if v.Reasoning == "" {
		return nil, fmt.Errorf("model returned a valuation without reasoning")
	}
	return &v, nil
}

// stripFences removes a ```json ... ``` wrapper if the model added one.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (s *Service) recordRequest(kind string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordAIRequest(kind, success)
	}
}
