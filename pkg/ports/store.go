package ports

import (
	"context"

	"github.com/aretw0/stateprop/pkg/domain"
)

// CounterexampleStore defines the interface for persisting minimized failures.
// Stored counterexamples carry their cycle seed so they can be replayed.
type CounterexampleStore interface {
	// Save persists the counterexample under its ID, overwriting any previous one.
	Save(ctx context.Context, ce *domain.Counterexample) error

	// Load retrieves a counterexample by ID.
	// Returns domain.ErrCounterexampleNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Counterexample, error)

	// Delete removes a counterexample. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored counterexamples.
	List(ctx context.Context) ([]string, error)
}
