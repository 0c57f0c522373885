// Package random provides seed helpers for the check loop.
//
// A check has one master seed. Every cycle gets its own seed drawn from a
// PRNG over the master seed, so a single cycle can be replayed in isolation.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a non-zero random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// Seeds derives the sequence of cycle seeds of a master seed.
type Seeds struct {
	rng *rand.Rand
}

// NewSeeds starts the derivation for master.
func NewSeeds(master int64) *Seeds {
	return &Seeds{rng: rand.New(rand.NewSource(master))}
}

// Next returns the next cycle seed.
func (s *Seeds) Next() int64 {
	return s.rng.Int63()
}

// Cycle holds the PRNGs of one cycle: command selection and a seed for the
// value source. Both are fixed by the cycle seed.
type Cycle struct {
	Selection  *rand.Rand
	SourceSeed int64
}

// ForCycle splits a cycle seed into its PRNGs.
func ForCycle(seed int64) Cycle {
	rng := rand.New(rand.NewSource(seed))
	return Cycle{SourceSeed: rng.Int63(), Selection: rng}
}
