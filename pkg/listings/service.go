package listings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/metrics"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/phone"
	"github.com/jordanlanch/listingpro/pkg/storage"
)

// TaskCascader removes tasks linked to deleted listings. It is satisfied by
// the tasks service and kept as an interface so the two services do not
// import each other.
type TaskCascader interface {
	RemoveForListings(ctx context.Context, ids []string)
}

// Confirmer gates destructive bulk operations. The HTTP layer satisfies it
// with a request flag; tests use a stub.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Service owns the working set and serializes every mutation behind one
// mutex, so each operation observes the final state of the previous one.
// Persistence failures never roll a mutation back: session state is
// authoritative and storage catches up on the next write.
type Service struct {
	mu        sync.Mutex
	store     *storage.OverlayStore
	tasks     TaskCascader
	confirm   Confirmer
	selection *Selection
	log       logger.Logger
	metrics   *metrics.Metrics

	seed      []models.Listing
	userAdded []models.Listing
	listings  []models.Listing
	activeID  string
	lastID    int64
}

// NewService builds a Service over a seed catalogue. tasks, confirm and m
// may be nil.
func NewService(seed []models.Listing, store *storage.OverlayStore, tasks TaskCascader, confirm Confirmer, log logger.Logger, m *metrics.Metrics) *Service {
	if confirm == nil {
		confirm = ConfirmerFunc(func(string) bool { return true })
	}
	return &Service{
		store:     store,
		tasks:     tasks,
		confirm:   confirm,
		selection: NewSelection(),
		log:       log,
		metrics:   m,
		seed:      seed,
	}
}

// Load reads the overlays and rebuilds the working set. Called once at
// startup, before session state exists.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ov := LoadOverlays(ctx, s.store)
	s.userAdded = ov.UserAdded
	s.listings = Reconcile(s.seed, ov)
	if s.metrics != nil {
		s.metrics.RecordReconcile()
	}
	s.log.Info("working set reconciled", "seed", len(s.seed), "user_added", len(s.userAdded), "total", len(s.listings))
}

// Listings returns a copy of the working set in its current order.
func (s *Service) Listings() []models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Query returns the filtered, sorted view for the given criteria.
func (s *Service) Query(c Criteria) []models.Listing {
	return View(s.Listings(), c)
}

// Get returns the listing with the given id.
func (s *Service) Get(id string) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, domain.NewNotFoundError(fmt.Sprintf("listing %s", id))
}

// Selection exposes the table-view selection tracker.
func (s *Service) Selection() *Selection {
	return s.selection
}

// Active returns the listing currently open in the detail view, if any.
func (s *Service) Active() (models.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == "" {
		return models.Listing{}, false
	}
	for _, l := range s.listings {
		if l.ID == s.activeID {
			return l, true
		}
	}
	return models.Listing{}, false
}

// SetActive marks a listing as open in the detail view.
func (s *Service) SetActive(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
	return nil
}

// ClearActive closes the detail view.
func (s *Service) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

// ToggleFavorite flips the favorite flag on a listing.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (models.Listing, error) {
	return s.update(ctx, "favorite", id, func(l *models.Listing) error {
		l.IsFavorite = !l.IsFavorite
		return nil
	})
}

// SetNotes replaces the notes on a listing.
func (s *Service) SetNotes(ctx context.Context, id, notes string) (models.Listing, error) {
	return s.update(ctx, "notes", id, func(l *models.Listing) error {
		l.Notes = notes
		return nil
	})
}

// SetTags replaces the tag list on a listing.
func (s *Service) SetTags(ctx context.Context, id string, tags []string) (models.Listing, error) {
	return s.update(ctx, "tags", id, func(l *models.Listing) error {
		if tags == nil {
			tags = []string{}
		}
		l.Tags = tags
		return nil
	})
}

// SetLeadScore stores an AI lead score. A value outside Hot/Warm/Cold is
// rejected and the listing keeps its previous score.
func (s *Service) SetLeadScore(ctx context.Context, id string, input models.LeadScoreInput) (models.Listing, error) {
	score := models.LeadScoreValue(input.Score)
	if !score.Valid() {
		return models.Listing{}, domain.NewValidationError(fmt.Sprintf("invalid lead score %q: must be Hot, Warm or Cold", input.Score))
	}
	return s.update(ctx, "score", id, func(l *models.Listing) error {
		l.AILeadScore = &models.LeadScore{Score: score, Reason: input.Reason}
		return nil
	})
}

// SetValuation stores an AI valuation. A payload without an estimated value
// is rejected.
func (s *Service) SetValuation(ctx context.Context, id string, input models.ValuationInput) (models.Listing, error) {
	if input.EstimatedValue == nil {
		return models.Listing{}, domain.NewValidationError("estimatedValue is required")
	}
	return s.update(ctx, "valuation", id, func(l *models.Listing) error {
		l.AIValuation = &models.Valuation{
			EstimatedValue: input.EstimatedValue.Float(),
			Reasoning:      input.Reasoning,
		}
		return nil
	})
}

// Create adds a user-entered listing at the front of the working set.
func (s *Service) Create(ctx context.Context, input models.ListingInput) (models.Listing, error) {
	if strings.TrimSpace(input.Address) == "" {
		return models.Listing{}, domain.NewValidationError("address is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("user_%d", s.nextStamp(time.Now()))
	l := s.fromInput(id, input)

	s.userAdded = append([]models.Listing{l}, s.userAdded...)
	s.listings = append([]models.Listing{l}, s.listings...)
	s.persist(ctx)
	s.record("create")
	s.log.Info("listing created", "id", id, "address", l.Address)
	return l, nil
}

// Import adds a batch of parsed spreadsheet rows at the front of the
// working set. Rows without an address are skipped.
func (s *Service) Import(ctx context.Context, inputs []models.ListingInput) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.nextStamp(time.Now())
	added := make([]models.Listing, 0, len(inputs))
	for i, input := range inputs {
		if strings.TrimSpace(input.Address) == "" {
			s.log.Warn("skipping import row without address", "row", i)
			continue
		}
		id := fmt.Sprintf("csv_%d_%d", batch, i)
		added = append(added, s.fromInput(id, input))
	}
	if len(added) == 0 {
		return nil, domain.NewValidationError("no importable rows: every row is missing an address")
	}

	s.userAdded = append(append([]models.Listing{}, added...), s.userAdded...)
	s.listings = append(append([]models.Listing{}, added...), s.listings...)
	s.persist(ctx)
	s.record("import")
	s.log.Info("listings imported", "count", len(added))
	return added, nil
}

// Delete removes a listing and everything attached to it: its overlay
// entries, its tasks, its selection checkbox and the detail view if it was
// open.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(ctx, []string{id})
}

// BulkFavorite sets the favorite flag on every selected listing, then
// clears the selection.
func (s *Service) BulkFavorite(ctx context.Context, favorite bool) (int, error) {
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return 0, domain.NewEmptySelectionError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	count := 0
	for i := range s.listings {
		if selected[s.listings[i].ID] {
			s.listings[i].IsFavorite = favorite
			count++
		}
	}
	s.syncUserAdded()
	s.persist(ctx)
	s.selection.Clear()
	s.record("bulk_favorite")
	return count, nil
}

// BulkAddTags appends the comma-separated tags to every selected listing,
// skipping tags a listing already carries in any letter case, then clears
// the selection.
func (s *Service) BulkAddTags(ctx context.Context, raw string) (int, error) {
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return 0, domain.NewEmptySelectionError()
	}

	newTags := splitTags(raw)
	if len(newTags) == 0 {
		return 0, domain.NewValidationError("no tags provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	count := 0
	for i := range s.listings {
		if !selected[s.listings[i].ID] {
			continue
		}
		existing := make(map[string]bool, len(s.listings[i].Tags))
		for _, t := range s.listings[i].Tags {
			existing[strings.ToLower(t)] = true
		}
		for _, t := range newTags {
			if !existing[strings.ToLower(t)] {
				s.listings[i].Tags = append(s.listings[i].Tags, t)
				existing[strings.ToLower(t)] = true
			}
		}
		count++
	}
	s.syncUserAdded()
	s.persist(ctx)
	s.selection.Clear()
	s.record("bulk_tags")
	return count, nil
}

// BulkDelete deletes every selected listing after asking the Confirmer,
// then clears the selection.
func (s *Service) BulkDelete(ctx context.Context) (int, error) {
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return 0, domain.NewEmptySelectionError()
	}
	if !s.confirm.Confirm(fmt.Sprintf("Delete %d selected listings?", len(ids))) {
		return 0, domain.NewConfirmationDeclinedError("bulk delete")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteLocked(ctx, ids); err != nil {
		return 0, err
	}
	s.record("bulk_delete")
	return len(ids), nil
}

// ResyncOverlays rewrites every overlay table from the in-memory working
// set. Session state is authoritative, so the hourly job heals any table a
// failed or out-of-band write left stale instead of reading it back.
func (s *Service) ResyncOverlays(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(ctx)
	s.log.Info("overlays resynced from session state", "total", len(s.listings))
}

// nextStamp returns a strictly increasing millisecond stamp so ids minted
// within the same millisecond stay distinct. Caller must hold s.mu.
func (s *Service) nextStamp(now time.Time) int64 {
	ms := now.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return ms
}

func (s *Service) deleteLocked(ctx context.Context, ids []string) error {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	found := false
	kept := s.listings[:0]
	for _, l := range s.listings {
		if doomed[l.ID] {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return domain.NewNotFoundError("selected listings")
	}
	s.listings = kept

	keptUser := s.userAdded[:0]
	for _, l := range s.userAdded {
		if !doomed[l.ID] {
			keptUser = append(keptUser, l)
		}
	}
	s.userAdded = keptUser

	if s.tasks != nil {
		s.tasks.RemoveForListings(ctx, ids)
	}
	s.selection.Remove(ids...)
	if doomed[s.activeID] {
		s.activeID = ""
	}

	s.persist(ctx)
	s.record("delete")
	s.log.Info("listings deleted", "count", len(ids))
	return nil
}

// update applies fn to the listing with the given id and persists the
// result.
func (s *Service) update(ctx context.Context, op, id string, fn func(*models.Listing) error) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listings {
		if s.listings[i].ID != id {
			continue
		}
		if err := fn(&s.listings[i]); err != nil {
			return models.Listing{}, err
		}
		s.syncUserAdded()
		s.persist(ctx)
		s.record(op)
		return s.listings[i], nil
	}
	return models.Listing{}, domain.NewNotFoundError(fmt.Sprintf("listing %s", id))
}

func (s *Service) fromInput(id string, input models.ListingInput) models.Listing {
	now := time.Now()
	l := models.Listing{
		ID:                     id,
		Address:                strings.TrimSpace(input.Address),
		City:                   input.City,
		State:                  input.State,
		Zip:                    input.Zip,
		Price:                  input.Price.Float(),
		Bedrooms:               input.Bedrooms.Int(),
		Bathrooms:              input.Bathrooms.Float(),
		Sqft:                   input.Sqft.Int(),
		LotSize:                input.LotSize,
		PropertyType:           input.PropertyType,
		DaysOnMarketPreviously: input.DaysOnMarketPreviously.Int(),
		OriginalListDate:       input.OriginalListDate,
		ExpirationDate:         input.ExpirationDate,
		PreviousAgentName:      input.PreviousAgentName,
		PreviousAgentBrokerage: input.PreviousAgentBrokerage,
		ListingDescription:     input.ListingDescription,
		ImageURL:               input.ImageURL,
		LeadType:               input.LeadType,
		YearBuilt:              input.YearBuilt.Int(),
		HomeownerEmail:         input.HomeownerEmail,
		HomeownerPhone:         phone.Normalize(input.HomeownerPhone),
		Tags:                   []string{},
	}
	if l.ImageURL == "" {
		l.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/400/300", id)
	}
	if l.OriginalListDate == "" {
		l.OriginalListDate = now.Format("2006-01-02")
	}
	if l.ExpirationDate == "" {
		l.ExpirationDate = now.Format("2006-01-02")
	}
	if l.YearBuilt == 0 {
		l.YearBuilt = now.Year()
	}
	if !l.LeadType.Valid() {
		l.LeadType = models.LeadTypeExpired
	}
	return l
}

// persist rewrites every overlay table from the full working set. Each
// write replaces the whole document, so a stale or corrupt stored table is
// healed by the next successful mutation. Caller must hold s.mu.
func (s *Service) persist(ctx context.Context) {
	favorites := []string{}
	notes := map[string]string{}
	tags := map[string][]string{}
	scores := map[string]models.LeadScore{}
	valuations := map[string]models.Valuation{}

	for _, l := range s.listings {
		if l.IsFavorite {
			favorites = append(favorites, l.ID)
		}
		if trimmed := strings.TrimSpace(l.Notes); trimmed != "" {
			notes[l.ID] = l.Notes
		}
		if len(l.Tags) > 0 {
			tags[l.ID] = l.Tags
		}
		if l.AILeadScore != nil && l.AILeadScore.Score.Valid() && l.AILeadScore.Reason != "" {
			scores[l.ID] = *l.AILeadScore
		}
		if l.AIValuation != nil && l.AIValuation.Reasoning != "" {
			valuations[l.ID] = *l.AIValuation
		}
	}

	s.store.Save(ctx, storage.KeyFavoriteIDs, favorites)
	s.store.Save(ctx, storage.KeyNotes, notes)
	s.store.Save(ctx, storage.KeyTags, tags)
	s.store.Save(ctx, storage.KeyLeadScores, scores)
	s.store.Save(ctx, storage.KeyValuations, valuations)
	s.store.Save(ctx, storage.KeyUserAdded, s.userAdded)
}

// syncUserAdded copies in-place edits on user-added listings back into the
// userAdded slice so the stored copy keeps up. Caller must hold s.mu.
func (s *Service) syncUserAdded() {
	byID := make(map[string]models.Listing, len(s.listings))
	for _, l := range s.listings {
		byID[l.ID] = l
	}
	for i := range s.userAdded {
		if l, ok := byID[s.userAdded[i].ID]; ok {
			s.userAdded[i] = l
		}
	}
}

func (s *Service) record(op string) {
	if s.metrics != nil {
		s.metrics.RecordMutation(op)
	}
}

func splitTags(raw string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}
