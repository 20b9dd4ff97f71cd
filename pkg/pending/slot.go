package pending

import "sync"

// Slot holds at most one outstanding request of one class.
type Slot struct {
	mu      sync.Mutex
	class   Class
	current *Request
}

// NewSlot creates an empty slot for class.
func NewSlot(class Class) *Slot {
	return &Slot{class: class}
}

// Class returns the slot's request class.
func (s *Slot) Class() Class { return s.class }

// Put stores r as the outstanding request. Any previous unsettled request is
// failed with ErrSuperseded before Put returns; it is also returned so the
// caller can log it.
func (s *Slot) Put(r *Request) *Request {
	s.mu.Lock()
	prev := s.current
	s.current = r
	s.mu.Unlock()

	if prev != nil && prev != r {
		if prev.Fail(ErrSuperseded) {
			return prev
		}
	}
	return nil
}

// Current returns the outstanding request, or nil.
func (s *Slot) Current() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.IsSettled() {
		s.current = nil
	}
	return s.current
}

// Is reports whether r is still the outstanding request of this slot.
func (s *Slot) Is(r *Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == r && !r.IsSettled()
}

// Resolve settles r successfully if it is still outstanding and clears the
// slot. It returns false when r was superseded or already settled.
func (s *Slot) Resolve(r *Request, value bool) bool {
	if !s.take(r) {
		return false
	}
	return r.Resolve(value)
}

// Fail fails r if it is still outstanding and clears the slot.
func (s *Slot) Fail(r *Request, err error) bool {
	if !s.take(r) {
		return false
	}
	return r.Fail(err)
}

// FailCurrent fails whatever request is outstanding and returns it.
func (s *Slot) FailCurrent(err error) *Request {
	s.mu.Lock()
	r := s.current
	s.current = nil
	s.mu.Unlock()

	if r != nil && r.Fail(err) {
		return r
	}
	return nil
}

func (s *Slot) take(r *Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != r {
		return false
	}
	s.current = nil
	return true
}
