package listings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/storage"
)

func seedListings() []models.Listing {
	return []models.Listing{
		{ID: "seed_1", Address: "12 Oak St", City: "Austin", Zip: "78701", Price: 300000, LeadType: models.LeadTypeExpired, ExpirationDate: "2026-05-01", Tags: []string{}},
		{ID: "seed_2", Address: "9 Pine Ave", City: "Dallas", Zip: "75201", Price: 450000, LeadType: models.LeadTypeFSBO, ExpirationDate: "2026-06-01", Tags: []string{}},
	}
}

func TestReconcile(t *testing.T) {
	t.Run("Success - overlays applied to seed records", func(t *testing.T) {
		ov := Overlays{
			FavoriteIDs: []string{"seed_2"},
			Notes:       map[string]string{"seed_1": "left voicemail"},
			Tags:        map[string][]string{"seed_1": {"hot", "callback"}},
			LeadScores:  map[string]models.LeadScore{"seed_2": {Score: models.ScoreHot, Reason: "priced under market"}},
			Valuations:  map[string]models.Valuation{"seed_1": {EstimatedValue: 320000, Reasoning: "recent comps"}},
		}

		got := Reconcile(seedListings(), ov)
		require.Len(t, got, 2)

		assert.False(t, got[0].IsFavorite)
		assert.Equal(t, "left voicemail", got[0].Notes)
		assert.Equal(t, []string{"hot", "callback"}, got[0].Tags)
		require.NotNil(t, got[0].AIValuation)
		assert.Equal(t, 320000.0, got[0].AIValuation.EstimatedValue)

		assert.True(t, got[1].IsFavorite)
		require.NotNil(t, got[1].AILeadScore)
		assert.Equal(t, models.ScoreHot, got[1].AILeadScore.Score)
	})

	t.Run("Success - user added listings come first", func(t *testing.T) {
		ov := Overlays{
			UserAdded: []models.Listing{{ID: "user_1", Address: "77 Elm Rd", LeadType: models.LeadTypeFSBO, Tags: []string{}}},
		}
		got := Reconcile(seedListings(), ov)
		require.Len(t, got, 3)
		assert.Equal(t, "user_1", got[0].ID)
	})

	t.Run("Success - user added listing shadows seed with same id", func(t *testing.T) {
		ov := Overlays{
			UserAdded: []models.Listing{{ID: "seed_1", Address: "12 Oak St (corrected)", LeadType: models.LeadTypeExpired, Tags: []string{}}},
		}
		got := Reconcile(seedListings(), ov)
		require.Len(t, got, 2)
		assert.Equal(t, "12 Oak St (corrected)", got[0].Address)
	})

	t.Run("Success - favorite merges as logical OR", func(t *testing.T) {
		seed := seedListings()
		seed[0].IsFavorite = true
		got := Reconcile(seed, Overlays{})
		assert.True(t, got[0].IsFavorite, "record favorite survives an empty favorites table")
	})

	t.Run("Success - invalid stored score dropped with its reason", func(t *testing.T) {
		ov := Overlays{
			LeadScores: map[string]models.LeadScore{"seed_1": {Score: "Scorching", Reason: "stale data"}},
		}
		got := Reconcile(seedListings(), ov)
		assert.Nil(t, got[0].AILeadScore)
	})

	t.Run("Success - invalid score on a user added record dropped", func(t *testing.T) {
		ov := Overlays{
			UserAdded: []models.Listing{{ID: "user_1", Address: "77 Elm Rd", LeadType: models.LeadTypeFSBO, Tags: []string{},
				AILeadScore: &models.LeadScore{Score: "Mega", Reason: "bogus"}}},
		}
		got := Reconcile(seedListings(), ov)
		assert.Nil(t, got[0].AILeadScore, "bad score on the base record must not survive")
	})

	t.Run("Success - invalid lead type repaired", func(t *testing.T) {
		ov := Overlays{
			UserAdded: []models.Listing{{ID: "user_1", Address: "77 Elm Rd", LeadType: "Rental"}},
		}
		got := Reconcile(seedListings(), ov)
		assert.Equal(t, models.LeadTypeExpired, got[0].LeadType)
		assert.NotNil(t, got[0].Tags)
	})

	t.Run("Success - reconcile is idempotent", func(t *testing.T) {
		ov := Overlays{
			FavoriteIDs: []string{"seed_1"},
			Notes:       map[string]string{"seed_2": "fsbo, motivated"},
		}
		once := Reconcile(seedListings(), ov)
		twice := Reconcile(seedListings(), ov)
		assert.Equal(t, once, twice)
	})
}

func TestLoadOverlays(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - missing tables read as empty", func(t *testing.T) {
		store := storage.NewOverlayStore(storage.NewMemoryKV(), logger.Nop(), nil)
		ov := LoadOverlays(ctx, store)
		assert.Empty(t, ov.FavoriteIDs)
		assert.Empty(t, ov.Notes)
		assert.Empty(t, ov.UserAdded)
	})

	t.Run("Success - corrupt table degrades to empty", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		require.NoError(t, kv.Set(ctx, storage.KeyNotes, `not json at all`))
		require.NoError(t, kv.Set(ctx, storage.KeyFavoriteIDs, `["seed_1"]`))
		store := storage.NewOverlayStore(kv, logger.Nop(), nil)

		ov := LoadOverlays(ctx, store)
		assert.Empty(t, ov.Notes)
		assert.Equal(t, []string{"seed_1"}, ov.FavoriteIDs)
	})
}
