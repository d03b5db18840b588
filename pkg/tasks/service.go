package tasks

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

// Service manages follow-up tasks. Like the listing service it keeps the
// working list in memory and rewrites the whole stored document on every
// change.
type Service struct {
	mu     sync.Mutex
	store  *storage.OverlayStore
	log    logger.Logger
	items  []models.Task
	lastID int64
}

// NewService builds a task service over the overlay store.
func NewService(store *storage.OverlayStore, log logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Load reads the stored task list. A missing or corrupt document reads as
// an empty list.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.store.Load(ctx, storage.KeyTasks, &s.items)
}

// List returns a copy of the tasks, newest first.
func (s *Service) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.items))
	copy(out, s.items)
	return out
}

// ForListing returns the tasks linked to a listing.
func (s *Service) ForListing(listingID string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Task{}
	for _, t := range s.items {
		if t.AssociatedListingID == listingID {
			out = append(out, t)
		}
	}
	return out
}

// Add creates a task at the front of the list.
func (s *Service) Add(ctx context.Context, input models.TaskInput) (models.Task, error) {
	if input.Title == "" {
		return models.Task{}, domain.NewValidationError("title is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	task := models.Task{
		ID:                  fmt.Sprintf("task_%d", s.nextStamp(now)),
		Title:               input.Title,
		Description:         input.Description,
		DueDate:             input.DueDate,
		AssociatedListingID: input.AssociatedListingID,
		CreatedAt:           now.Format(time.RFC3339),
	}
	s.items = append([]models.Task{task}, s.items...)
	s.persist(ctx)
	return task, nil
}

// Update applies a partial update; nil fields keep their current value.
func (s *Service) Update(ctx context.Context, id string, upd models.TaskUpdate) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if upd.Title != nil {
			s.items[i].Title = *upd.Title
		}
		if upd.Description != nil {
			s.items[i].Description = *upd.Description
		}
		if upd.DueDate != nil {
			s.items[i].DueDate = *upd.DueDate
		}
		if upd.IsCompleted != nil {
			s.items[i].IsCompleted = *upd.IsCompleted
		}
		if upd.AssociatedListingID != nil {
			s.items[i].AssociatedListingID = *upd.AssociatedListingID
		}
		s.persist(ctx)
		return s.items[i], nil
	}
	return models.Task{}, domain.NewNotFoundError(fmt.Sprintf("task %s", id))
}

// ToggleComplete flips a task's completed flag.
func (s *Service) ToggleComplete(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsCompleted = !s.items[i].IsCompleted
			s.persist(ctx)
			return s.items[i], nil
		}
	}
	return models.Task{}, domain.NewNotFoundError(fmt.Sprintf("task %s", id))
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return domain.NewNotFoundError(fmt.Sprintf("task %s", id))
}

// RemoveForListings drops every task linked to one of the deleted listings.
// Called by the listing service as part of cascade delete.
func (s *Service) RemoveForListings(ctx context.Context, ids []string) {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	removed := 0
	for _, t := range s.items {
		if t.AssociatedListingID != "" && doomed[t.AssociatedListingID] {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return
	}
	s.items = kept
	s.persist(ctx)
	s.log.Info("tasks removed with listings", "count", removed)
}

// nextStamp returns a strictly increasing millisecond stamp so two tasks
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
		s.items = []models.Task{}
	}
	s.store.Save(ctx, storage.KeyTasks, s.items)
}
