package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/listingpro/pkg/models"
)

func queryFixture() []models.Listing {
	return []models.Listing{
		{ID: "a", Address: "12 Oak St", City: "Austin", Zip: "78701", PropertyType: "Condo", LeadType: models.LeadTypeExpired,
			Price: 300000, DaysOnMarketPreviously: 90, ExpirationDate: "2026-03-01", Tags: []string{"Callback", "priority"}},
		{ID: "b", Address: "9 Pine Ave", City: "Dallas", Zip: "75201", PropertyType: "Single Family", LeadType: models.LeadTypeFSBO,
			Price: 450000, DaysOnMarketPreviously: 30, ExpirationDate: "2026-06-01", IsFavorite: true, Tags: []string{},
			HomeownerEmail: "owner@example.com"},
		{ID: "c", Address: "77 Elm Rd", City: "Houston", Zip: "77002", PropertyType: "Townhouse", LeadType: models.LeadTypeExpired,
			Price: 210000, DaysOnMarketPreviously: 140, ExpirationDate: "2026-01-15", Tags: []string{"priority"},
			AILeadScore: &models.LeadScore{Score: models.ScoreHot, Reason: "equity"}},
		{ID: "d", Address: "5 Cedar Ln", City: "Austin", Zip: "78702", PropertyType: "Condo", LeadType: models.LeadTypePreForeclosure,
			Price: 380000, DaysOnMarketPreviously: 10, ExpirationDate: "2026-06-01", Tags: []string{},
			AILeadScore: &models.LeadScore{Score: models.ScoreWarm, Reason: "responsive"}},
	}
}

func ids(list []models.Listing) []string {
	out := make([]string, len(list))
	for i, l := range list {
		out[i] = l.ID
	}
	return out
}

func TestViewFiltering(t *testing.T) {
	fixture := queryFixture()

	t.Run("Success - favorites only", func(t *testing.T) {
		got := View(fixture, Criteria{ShowFavoritesOnly: true})
		assert.Equal(t, []string{"b"}, ids(got))
	})

	t.Run("Success - search is case insensitive across fields", func(t *testing.T) {
		assert.Equal(t, []string{"c"}, ids(View(fixture, Criteria{SearchTerm: "ELM"})))
		assert.Equal(t, []string{"b"}, ids(View(fixture, Criteria{SearchTerm: "owner@"})))
		assert.Equal(t, []string{"d"}, ids(View(fixture, Criteria{SearchTerm: "78702"})))
		assert.Equal(t, []string{"d"}, ids(View(fixture, Criteria{SearchTerm: "pre-fore"})))
	})

	t.Run("Success - lead type filter with all sentinel", func(t *testing.T) {
		assert.Len(t, View(fixture, Criteria{LeadTypeFilter: "all"}), 4)
		assert.Equal(t, []string{"b"}, ids(View(fixture, Criteria{LeadTypeFilter: "FSBO", SortBy: SortPriceAsc})))
	})

	t.Run("Success - lead type filter ignores case", func(t *testing.T) {
		assert.Equal(t, []string{"b"}, ids(View(fixture, Criteria{LeadTypeFilter: "fsbo"})))
		assert.Equal(t, []string{"c", "a"}, ids(View(fixture, Criteria{LeadTypeFilter: "expired", SortBy: SortPriceAsc})))
	})

	t.Run("Success - comma separated tag filter matches any tag", func(t *testing.T) {
		got := View(fixture, Criteria{TagFilter: "priority", SortBy: SortPriceAsc})
		assert.Equal(t, []string{"c", "a"}, ids(got))

		// c carries only "priority" yet still matches the two-token filter
		got = View(fixture, Criteria{TagFilter: "priority, callback", SortBy: SortPriceAsc})
		assert.Equal(t, []string{"c", "a"}, ids(got))
	})

	t.Run("Success - tag filter matches substrings case insensitively", func(t *testing.T) {
		got := View(fixture, Criteria{TagFilter: "CALL"})
		assert.Equal(t, []string{"a"}, ids(got))
	})

	t.Run("Success - input slice not mutated", func(t *testing.T) {
		before := ids(fixture)
		View(fixture, Criteria{SortBy: SortPriceDesc})
		assert.Equal(t, before, ids(fixture))
	})
}

func TestViewSorting(t *testing.T) {
	fixture := queryFixture()

	t.Run("Success - price ascending and descending", func(t *testing.T) {
		assert.Equal(t, []string{"c", "a", "d", "b"}, ids(View(fixture, Criteria{SortBy: SortPriceAsc})))
		assert.Equal(t, []string{"b", "d", "a", "c"}, ids(View(fixture, Criteria{SortBy: SortPriceDesc})))
	})

	t.Run("Success - days on market", func(t *testing.T) {
		assert.Equal(t, []string{"d", "b", "a", "c"}, ids(View(fixture, Criteria{SortBy: SortDomAsc})))
		assert.Equal(t, []string{"c", "a", "b", "d"}, ids(View(fixture, Criteria{SortBy: SortDomDesc})))
	})

	t.Run("Success - expiration date", func(t *testing.T) {
		got := ids(View(fixture, Criteria{SortBy: SortExpirationAsc}))
		assert.Equal(t, "c", got[0])
		got = ids(View(fixture, Criteria{SortBy: SortExpirationDesc}))
		assert.Equal(t, "c", got[3])
	})

	t.Run("Success - default best match ranks Hot Warm then unscored", func(t *testing.T) {
		got := ids(View(fixture, Criteria{}))
		require.Equal(t, "c", got[0], "Hot first")
		require.Equal(t, "d", got[1], "Warm second")
		// a and b are unscored; the later expiration comes first
		assert.Equal(t, []string{"b", "a"}, got[2:])
	})

	t.Run("Success - unknown sort key falls back to best match", func(t *testing.T) {
		assert.Equal(t, ids(View(fixture, Criteria{})), ids(View(fixture, Criteria{SortBy: "sideways"})))
	})

	t.Run("Success - unparseable expiration sorts as oldest", func(t *testing.T) {
		withBad := append([]models.Listing{}, fixture...)
		withBad[0].ExpirationDate = "soonish"
		got := ids(View(withBad, Criteria{SortBy: SortExpirationAsc}))
		assert.Equal(t, "a", got[0])
	})
}
