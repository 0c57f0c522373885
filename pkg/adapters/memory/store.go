package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/stateprop/pkg/domain"
)

// Store implements ports.CounterexampleStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Counterexample
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Counterexample),
	}
}

func clone(ce *domain.Counterexample) *domain.Counterexample {
	out := *ce
	out.Steps = make([]domain.StepRecord, len(ce.Steps))
	for i, step := range ce.Steps {
		out.Steps[i] = step
		out.Steps[i].Args = append([]string(nil), step.Args...)
	}
	return &out
}

// Save persists a copy of the counterexample.
func (s *Store) Save(ctx context.Context, ce *domain.Counterexample) error {
	copied := clone(ce)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ce.ID] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored value.
func (s *Store) Load(ctx context.Context, id string) (*domain.Counterexample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ce, ok := s.data[id]
	if !ok {
		return nil, domain.ErrCounterexampleNotFound
	}
	return clone(ce), nil
}

// Delete removes the counterexample.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
