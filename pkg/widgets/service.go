package widgets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/storage"
)

// Service manages the user's custom dashboard widgets.
type Service struct {
	mu      sync.Mutex
	store   *storage.OverlayStore
	log     logger.Logger
	confirm func(prompt string) bool
	items   []models.CustomWidget
	lastID  int64
}

// NewService builds a widget service. confirm gates deletion and may be nil
// to always allow it.
func NewService(store *storage.OverlayStore, log logger.Logger, confirm func(string) bool) *Service {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &Service{store: store, log: log, confirm: confirm}
}

// Load reads the stored widget list.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.store.Load(ctx, storage.KeyWidgets, &s.items)
}

// List returns a copy of the widgets in dashboard order.
func (s *Service) List() []models.CustomWidget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CustomWidget, len(s.items))
	copy(out, s.items)
	return out
}

// Add appends a widget at the end of the dashboard.
func (s *Service) Add(ctx context.Context, input models.WidgetInput) (models.CustomWidget, error) {
	if err := validateInput(input); err != nil {
		return models.CustomWidget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w := models.CustomWidget{
		ID:        fmt.Sprintf("widget_%d", s.nextStamp(now)),
		Title:     input.Title,
		Type:      input.Type,
		Content:   input.Content,
		Width:     input.Width,
		Height:    input.Height,
		CreatedAt: now.Format(time.RFC3339),
	}
	s.items = append(s.items, w)
	s.persist(ctx)
	return w, nil
}

// Update replaces a widget's title, type, content and dimensions.
func (s *Service) Update(ctx context.Context, id string, input models.WidgetInput) (models.CustomWidget, error) {
	if err := validateInput(input); err != nil {
		return models.CustomWidget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items[i].Title = input.Title
		s.items[i].Type = input.Type
		s.items[i].Content = input.Content
		s.items[i].Width = input.Width
		s.items[i].Height = input.Height
		s.persist(ctx)
		return s.items[i], nil
	}
	return models.CustomWidget{}, domain.NewNotFoundError(fmt.Sprintf("widget %s", id))
}

func validateInput(input models.WidgetInput) error {
	if input.Title == "" {
		return domain.NewValidationError("title is required")
	}
	if !input.Type.Valid() {
		return domain.NewValidationError(fmt.Sprintf("invalid widget type %q", input.Type))
	}
	if input.Type == models.WidgetKeyStats {
		for _, key := range input.Content.Lines {
			if !models.ValidKeyStat(key) {
				return domain.NewValidationError(fmt.Sprintf("unknown stat selector %q", key))
			}
		}
	}
	return nil
}

// Delete removes a widget after confirmation.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.confirm(fmt.Sprintf("Remove widget %s?", id)) {
		return domain.NewConfirmationDeclinedError("widget delete")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return domain.NewNotFoundError(fmt.Sprintf("widget %s", id))
}

// nextStamp returns a strictly increasing millisecond stamp so widgets
// created within the same millisecond still get distinct ids. Caller holds
// the mutex.
func (s *Service) nextStamp(now time.Time) int64 {
	ms := now.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return ms
}

func (s *Service) persist(ctx context.Context) {
	if s.items == nil {
		s.items = []models.CustomWidget{}
	}
	s.store.Save(ctx, storage.KeyWidgets, s.items)
}
