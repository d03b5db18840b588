package widgets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/storage"
)

func newTestService(t *testing.T, confirm func(string) bool) *Service {
	t.Helper()
	kv := storage.NewMemoryKV()
	svc := NewService(storage.NewOverlayStore(kv, logger.Nop(), nil), logger.Nop(), confirm)
	svc.Load(context.Background())
	return svc
}

func TestWidgetLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	t.Run("Success - add appends at the end", func(t *testing.T) {
		first, err := svc.Add(ctx, models.WidgetInput{Title: "Notes", Type: models.WidgetNotes, Content: models.WidgetContent{Text: "remember"}})
		require.NoError(t, err)
		assert.NotEmpty(t, first.CreatedAt)

		_, err = svc.Add(ctx, models.WidgetInput{Title: "MLS", Type: models.WidgetURL, Content: models.WidgetContent{Text: "https://mls.example"}, Width: "100%", Height: "400px"})
		require.NoError(t, err)

		list := svc.List()
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, "100%", list[1].Width)
		assert.Equal(t, "400px", list[1].Height)
	})

	t.Run("Success - rapid adds get distinct ids", func(t *testing.T) {
		before := len(svc.List())
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			w, err := svc.Add(ctx, models.WidgetInput{Title: "Scratch", Type: models.WidgetNotes})
			require.NoError(t, err)
			assert.False(t, seen[w.ID], "duplicate id %s", w.ID)
			seen[w.ID] = true
		}
		for id := range seen {
			require.NoError(t, svc.Delete(ctx, id))
		}
		assert.Len(t, svc.List(), before)
	})

	t.Run("Error - invalid type rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, models.WidgetInput{Title: "Chart", Type: "chart"})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Success - key stats widget lists known selectors", func(t *testing.T) {
		w, err := svc.Add(ctx, models.WidgetInput{
			Title:   "Pipeline",
			Type:    models.WidgetKeyStats,
			Content: models.WidgetContent{Lines: []string{"hotLeadsCount", "favoritesCount"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"hotLeadsCount", "favoritesCount"}, w.Content.Lines)
		require.NoError(t, svc.Delete(ctx, w.ID))
	})

	t.Run("Error - key stats widget with unknown selector", func(t *testing.T) {
		_, err := svc.Add(ctx, models.WidgetInput{
			Title:   "Pipeline",
			Type:    models.WidgetKeyStats,
			Content: models.WidgetContent{Lines: []string{"hotLeadsCount", "bounceRate"}},
		})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Success - update replaces content", func(t *testing.T) {
		list := svc.List()
		got, err := svc.Update(ctx, list[0].ID, models.WidgetInput{Title: "Notes v2", Type: models.WidgetNotes, Content: models.WidgetContent{Text: "updated"}})
		require.NoError(t, err)
		assert.Equal(t, "Notes v2", got.Title)
		assert.Equal(t, "updated", got.Content.Text)
	})

	t.Run("Success - delete", func(t *testing.T) {
		list := svc.List()
		require.NoError(t, svc.Delete(ctx, list[0].ID))
		assert.Len(t, svc.List(), len(list)-1)
	})
}

func TestWidgetDeleteConfirmation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, func(string) bool { return false })

	w, err := svc.Add(ctx, models.WidgetInput{Title: "Keep me", Type: models.WidgetNotes})
	require.NoError(t, err)

	err = svc.Delete(ctx, w.ID)
	assert.True(t, domain.IsConfirmationDeclined(err))
	assert.Len(t, svc.List(), 1)
}
