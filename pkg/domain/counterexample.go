package domain

import (
	"fmt"
	"time"
)

// StepRecord is the serializable form of a bound step.
type StepRecord struct {
	Origin  int      `json:"origin"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// FailureRecord is the serializable form of a Failure.
type FailureRecord struct {
	Index   int         `json:"index"`
	Command string      `json:"command"`
	Kind    FailureKind `json:"kind"`
	Cause   string      `json:"cause,omitempty"`
}

// GenerationRecord is the part of the configuration that shapes a generated
// sequence. Zero fields are unknown.
type GenerationRecord struct {
	MaxCommands      int `json:"max_commands,omitempty"`
	SelectionRetries int `json:"selection_retries,omitempty"`
}

// Differs reports whether a known field of r disagrees with other.
func (r GenerationRecord) Differs(other GenerationRecord) bool {
	return (r.MaxCommands != 0 && r.MaxCommands != other.MaxCommands) ||
		(r.SelectionRetries != 0 && r.SelectionRetries != other.SelectionRetries)
}

// Counterexample is the reported, minimized failing case of a check.
type Counterexample struct {
	ID    string `json:"id"`
	Model string `json:"model"`
	// Seed is the master seed of the check that found the failure.
	Seed int64 `json:"seed"`
	// Cycle is the zero-based cycle number; CycleSeed regenerates it.
	Cycle     int   `json:"cycle"`
	CycleSeed int64 `json:"cycle_seed"`

	// Generation holds the settings CycleSeed must be replayed with.
	Generation GenerationRecord `json:"generation"`

	Steps   []StepRecord  `json:"steps"`
	Failure FailureRecord `json:"failure"`

	OriginalLength int  `json:"original_length"`
	ShrinkTrials   int  `json:"shrink_trials"`
	Exhausted      bool `json:"exhausted,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CounterexampleID derives the stable identifier of a model's cycle.
func CounterexampleID(model string, cycleSeed int64) string {
	if model == "" {
		model = "model"
	}
	return fmt.Sprintf("%s-%016x", model, uint64(cycleSeed))
}
