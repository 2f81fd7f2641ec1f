package state

import (
	"sync"
)

// Store is the single owner of the current State. All writes go through
// Dispatch. It starts in the loading phase, which ends when MarkReady is
// called by the bootstrap check.
type Store struct {
	mu      sync.RWMutex
	state   State
	loading bool
	nextID  int
	subs    map[int]func(State)
}

func NewStore() *Store {
	return &Store{
		loading: true,
		subs:    make(map[int]func(State)),
	}
}

// Dispatch applies a and notifies subscribers with the resulting state.
// Subscribers run outside the lock, in no particular order.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsLoading is true until bootstrap completes and while a login or
// registration call is outstanding.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading || s.state.Status == Authenticating
}

func (s *Store) MarkReady() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
