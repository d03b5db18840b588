package listings

import (
	"sort"
	"sync"
)

// Selection tracks the set of listing ids checked in the table view.
type Selection struct {
	mu  sync.RWMutex
	ids map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

// Toggle flips membership of a single id.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[id] {
		delete(s.ids, id)
	} else {
		s.ids[id] = true
	}
}

// ToggleAll selects every visible id, unless all of them are already
// selected, in which case it clears the selection entirely.
func (s *Selection) ToggleAll(visible []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := len(visible) > 0
	for _, id := range visible {
		if !s.ids[id] {
			all = false
			break
		}
	}
	if all {
		s.ids = make(map[string]bool)
		return
	}
	for _, id := range visible {
		s.ids[id] = true
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]bool)
}

// Remove drops ids from the selection, typically after a delete.
func (s *Selection) Remove(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids[id]
}

// IDs returns the selected ids in stable sorted order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
