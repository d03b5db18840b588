package listings

import (
	"context"

	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/storage"
)

// Overlays holds the stored user state layered over the seed catalogue.
// Each table is sparse: only listings the user actually touched appear.
type Overlays struct {
	FavoriteIDs []string
	Notes       map[string]string
	Tags        map[string][]string
	LeadScores  map[string]models.LeadScore
	Valuations  map[string]models.Valuation
	UserAdded   []models.Listing
}

// LoadOverlays reads every overlay table. Missing or corrupt tables read as
// empty, so a damaged store degrades to the seed catalogue instead of
// failing startup.
func LoadOverlays(ctx context.Context, store *storage.OverlayStore) Overlays {
	ov := Overlays{
		Notes:      map[string]string{},
		Tags:       map[string][]string{},
		LeadScores: map[string]models.LeadScore{},
		Valuations: map[string]models.Valuation{},
	}
	store.Load(ctx, storage.KeyFavoriteIDs, &ov.FavoriteIDs)
	store.Load(ctx, storage.KeyNotes, &ov.Notes)
	store.Load(ctx, storage.KeyTags, &ov.Tags)
	store.Load(ctx, storage.KeyLeadScores, &ov.LeadScores)
	store.Load(ctx, storage.KeyValuations, &ov.Valuations)
	store.Load(ctx, storage.KeyUserAdded, &ov.UserAdded)
	return ov
}

// Reconcile merges the seed catalogue with the stored overlays into the
// working set. User-added listings come first; a user-added listing with a
// seed id shadows the seed record. Favorite merges as a logical OR with
// whatever the record already carries, while notes, tags, scores and
// valuations overwrite only when present in their table.
func Reconcile(seed []models.Listing, ov Overlays) []models.Listing {
	favorites := make(map[string]bool, len(ov.FavoriteIDs))
	for _, id := range ov.FavoriteIDs {
		favorites[id] = true
	}

	seen := make(map[string]bool, len(ov.UserAdded))
	merged := make([]models.Listing, 0, len(ov.UserAdded)+len(seed))
	for _, l := range ov.UserAdded {
		seen[l.ID] = true
		merged = append(merged, applyOverlays(l, favorites, ov))
	}
	for _, l := range seed {
		if seen[l.ID] {
			continue
		}
		merged = append(merged, applyOverlays(l, favorites, ov))
	}
	return merged
}

func applyOverlays(l models.Listing, favorites map[string]bool, ov Overlays) models.Listing {
	l.IsFavorite = l.IsFavorite || favorites[l.ID]
	if notes, ok := ov.Notes[l.ID]; ok {
		l.Notes = notes
	}
	if tags, ok := ov.Tags[l.ID]; ok {
		l.Tags = tags
	}
	if score, ok := ov.LeadScores[l.ID]; ok {
		if score.Score.Valid() {
			s := score
			l.AILeadScore = &s
		} else {
			// A stored score outside the enum is dropped together with
			// its reason; an orphaned reason must never surface.
			l.AILeadScore = nil
		}
	}
	if val, ok := ov.Valuations[l.ID]; ok {
		v := val
		l.AIValuation = &v
	}
	return normalize(l)
}

// normalize repairs fields a stored or imported record may carry in a shape
// the rest of the code does not expect.
func normalize(l models.Listing) models.Listing {
	if !l.LeadType.Valid() {
		l.LeadType = models.LeadTypeExpired
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if l.AILeadScore != nil && !l.AILeadScore.Score.Valid() {
		// A base record may carry a bad score too, e.g. a stored user-added
		// listing; it is dropped together with its reason.
		l.AILeadScore = nil
	}
	return l
}
