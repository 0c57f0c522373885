package domain_test

import (
	"testing"

	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffSequences(t *testing.T) {
	original := sequenceOf("a", "b", "c", "d")
	original[1].Args = domain.Args{40}
	original[3].Args = domain.Args{"long", 7}

	t.Run("Identical", func(t *testing.T) {
		assert.Nil(t, domain.DiffSequences(original, original.Clone()))
	})

	t.Run("Removal Only", func(t *testing.T) {
		shrunk := original.Remove(0, 1).Remove(1, 1) // drops a and c
		diff := domain.DiffSequences(original, shrunk)
		require.NotNil(t, diff)
		assert.Equal(t, []int{0, 2}, diff.Removed)
		assert.Empty(t, diff.Changed)
	})

	t.Run("Removal And Values", func(t *testing.T) {
		shrunk := original.Remove(2, 1)
		shrunk = shrunk.WithArg(1, 0, 0)
		shrunk = shrunk.WithArg(2, 0, "")

		diff := domain.DiffSequences(original, shrunk)
		require.NotNil(t, diff)
		assert.Equal(t, []int{2}, diff.Removed)
		require.Len(t, diff.Changed, 2)

		assert.Equal(t, domain.ArgChange{Origin: 1, Command: "b", Arg: 0, From: 40, To: 0}, diff.Changed[0])
		assert.Equal(t, domain.ArgChange{Origin: 3, Command: "d", Arg: 0, From: "long", To: ""}, diff.Changed[1])
	})

	t.Run("Empty Diff Helpers", func(t *testing.T) {
		var d *domain.SequenceDiff
		assert.True(t, d.IsEmpty())
		assert.True(t, (&domain.SequenceDiff{}).IsEmpty())
	})
}
