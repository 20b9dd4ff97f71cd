package region

import "sync"

// Set is an insertion-ordered set of regions keyed by identifier.
// It is safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Region
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{byID: make(map[string]Region)}
}

// Add inserts r, replacing any region with the same identifier. It reports
// whether the set changed.
func (s *Set) Add(r Region) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byID[r.Identifier]; ok {
		if prev.Equal(r) {
			return false
		}
		s.byID[r.Identifier] = r
		return true
	}
	s.byID[r.Identifier] = r
	s.order = append(s.order, r.Identifier)
	return true
}

// Get returns the region with the given identifier.
func (s *Set) Get(identifier string) (Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[identifier]
	return r, ok
}

// Contains reports whether a region with the identifier is present.
func (s *Set) Contains(identifier string) bool {
	_, ok := s.Get(identifier)
	return ok
}

// Remove deletes the region with the given identifier.
func (s *Set) Remove(identifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[identifier]; !ok {
		return false
	}
	delete(s.byID, identifier)
	for i, id := range s.order {
		if id == identifier {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns the regions in insertion order.
func (s *Set) List() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Region, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of regions.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear removes all regions and returns them.
func (s *Set) Clear() []Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Region, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	s.order = nil
	s.byID = make(map[string]Region)
	return out
}
