package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/ports"
)

// MockStore is a map-backed CounterexampleStore that serializes by copying.
type MockStore struct {
	data map[string]domain.Counterexample
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.Counterexample),
	}
}

func (m *MockStore) Save(ctx context.Context, ce *domain.Counterexample) error {
	copied := *ce
	copied.Steps = append([]domain.StepRecord(nil), ce.Steps...)
	m.data[ce.ID] = copied
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*domain.Counterexample, error) {
	ce, ok := m.data[id]
	if !ok {
		return nil, domain.ErrCounterexampleNotFound
	}
	ce.Steps = append([]domain.StepRecord(nil), ce.Steps...)
	return &ce, nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestCounterexampleStore_Contract(t *testing.T) {
	// The mock doubles as a check that the contract suite itself is sound.
	ports.RunCounterexampleStoreContract(t, NewMockStore())
}
