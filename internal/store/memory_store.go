package store

import (
	"sync"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
)

// MemoryStore keeps a thread-safe copy of the current league snapshot.
type MemoryStore struct {
	mu     sync.RWMutex
	state  league.State
	loaded bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Current returns a deep copy of the snapshot and whether one is loaded.
func (s *MemoryStore) Current() (league.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return league.State{}, false
	}
	return s.state.Clone(), true
}

// Set replaces the held snapshot with a copy of state.
func (s *MemoryStore) Set(state league.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()
	s.loaded = true
}

// Update runs fn against the current snapshot while holding the write lock
// and stores its result when fn succeeds. Transitions are serialized.
func (s *MemoryStore) Update(fn func(current league.State, loaded bool) (league.State, error)) (league.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state.Clone(), s.loaded)
	if err != nil {
		return league.State{}, err
	}
	s.state = next.Clone()
	s.loaded = true
	return next, nil
}
