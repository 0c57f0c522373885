package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCounterexampleStoreContract runs a suite of tests to verify that a
// CounterexampleStore implementation adheres to the defined interface contract.
func RunCounterexampleStoreContract(t *testing.T, store CounterexampleStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Counterexample {
		return &domain.Counterexample{
			ID:        id,
			Model:     "counter",
			Seed:      42,
			Cycle:     3,
			CycleSeed: -7,

			Generation: domain.GenerationRecord{MaxCommands: 50, SelectionRetries: 100},

			Steps: []domain.StepRecord{
				{Origin: 0, Command: "inc"},
				{Origin: 4, Command: "put", Args: []string{`"k"`, "128"}},
			},
			Failure: domain.FailureRecord{
				Index:   1,
				Command: "put",
				Kind:    domain.FailurePostcondition,
				Cause:   domain.ErrPostconditionViolated.Error(),
			},
			OriginalLength: 12,
			ShrinkTrials:   31,
			CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-save"
		ce := sample(id)

		err := store.Save(ctx, ce)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, ce.Model, loaded.Model)
		assert.Equal(t, ce.CycleSeed, loaded.CycleSeed)
		assert.Equal(t, ce.Generation, loaded.Generation)
		assert.Equal(t, ce.Steps, loaded.Steps)
		assert.Equal(t, ce.Failure, loaded.Failure)
		assert.True(t, ce.CreatedAt.Equal(loaded.CreatedAt))

		_ = store.Delete(ctx, id)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		id := prefix + "-copy"
		require.NoError(t, store.Save(ctx, sample(id)))

		first, err := store.Load(ctx, id)
		require.NoError(t, err)
		first.Steps[0].Command = "mutated"

		second, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "inc", second.Steps[0].Command)

		_ = store.Delete(ctx, id)
	})

	t.Run("Overwrite", func(t *testing.T) {
		id := prefix + "-overwrite"
		require.NoError(t, store.Save(ctx, sample(id)))

		updated := sample(id)
		updated.ShrinkTrials = 99
		require.NoError(t, store.Save(ctx, updated))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 99, loaded.ShrinkTrials)

		_ = store.Delete(ctx, id)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrCounterexampleNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-delete"
		require.NoError(t, store.Save(ctx, sample(id)))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrCounterexampleNotFound, "Load after Delete should return ErrCounterexampleNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-list-1"
		id2 := prefix + "-list-2"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
