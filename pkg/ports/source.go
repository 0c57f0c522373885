package ports

import (
	"iter"

	"github.com/aretw0/stateprop/pkg/domain"
)

// ValueSource supplies argument values for commands.
// It is consumed, not implemented, by the engine.
type ValueSource interface {
	// Sample draws a random value from d.
	Sample(d domain.Domain) (any, error)

	// ShrinkCandidates lists values strictly smaller than value under d's
	// shrink order, from the largest reduction to the smallest.
	// The sequence is finite and restartable: ranging over it twice yields
	// the same candidates.
	ShrinkCandidates(d domain.Domain, value any) iter.Seq[any]
}

// SourceFactory creates a ValueSource whose sampling is determined by seed.
type SourceFactory func(seed int64) ValueSource
