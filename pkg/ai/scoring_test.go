package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/listingpro/pkg/models"
)

type cannedCompleter struct {
	reply string
	err   error
	calls int
}

func (c *cannedCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	c.calls++
	return c.reply, c.err
}

func TestParseLeadScore(t *testing.T) {
	t.Run("Success - plain JSON", func(t *testing.T) {
		got, err := ParseLeadScore(`{"score": "Hot", "reason": "priced under comps"}`)
		require.NoError(t, err)
		assert.Equal(t, models.ScoreHot, got.Score)
	})

	t.Run("Success - fenced JSON", func(t *testing.T) {
		got, err := ParseLeadScore("```json\n{\"score\": \"Warm\", \"reason\": \"seller responsive\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, models.ScoreWarm, got.Score)
	})

	t.Run("Error - score outside enum", func(t *testing.T) {
		_, err := ParseLeadScore(`{"score": "Volcanic", "reason": "x"}`)
		assert.Error(t, err)
	})

	t.Run("Error - missing reason", func(t *testing.T) {
		_, err := ParseLeadScore(`{"score": "Cold"}`)
		assert.Error(t, err)
	})

	t.Run("Error - prose reply", func(t *testing.T) {
		_, err := ParseLeadScore(`I would say this lead is Hot.`)
		assert.Error(t, err)
	})
}

func TestParseValuation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		got, err := ParseValuation(`{"estimatedValue": 315000, "reasoning": "similar condos sold near 310k"}`)
		require.NoError(t, err)
		assert.Equal(t, 315000.0, got.EstimatedValue)
	})

	t.Run("Error - non-positive value", func(t *testing.T) {
		_, err := ParseValuation(`{"estimatedValue": 0, "reasoning": "unknown"}`)
		assert.Error(t, err)
	})
}

func TestServiceScoreLead(t *testing.T) {
	ctx := context.Background()
	listing := models.Listing{ID: "seed_1", Address: "12 Oak St", City: "Austin", Price: 300000}

	t.Run("Success", func(t *testing.T) {
		completer := &cannedCompleter{reply: `{"score": "Hot", "reason": "equity position"}`}
		svc := NewService(completer, 60, nil)

		got, err := svc.ScoreLead(ctx, listing)
		require.NoError(t, err)
		assert.Equal(t, models.ScoreHot, got.Score)
		assert.Equal(t, 1, completer.calls)
	})

	t.Run("Error - completion failure propagates", func(t *testing.T) {
		completer := &cannedCompleter{err: fmt.Errorf("rate limited upstream")}
		svc := NewService(completer, 60, nil)

		_, err := svc.ScoreLead(ctx, listing)
		assert.Error(t, err)
	})

	t.Run("Success - valuation", func(t *testing.T) {
		completer := &cannedCompleter{reply: `{"estimatedValue": 320000, "reasoning": "comps"}`}
		svc := NewService(completer, 60, nil)

		got, err := svc.ValueProperty(ctx, listing)
		require.NoError(t, err)
		assert.Equal(t, 320000.0, got.EstimatedValue)
	})
}
