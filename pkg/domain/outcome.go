package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an execution attempt failed.
type FailureKind string

const (
	FailurePrecondition  FailureKind = "precondition"  // Model diverged from the generated script
	FailureRun           FailureKind = "run"           // System under test returned an error, panicked or timed out
	FailurePostcondition FailureKind = "postcondition" // Model and system disagree
)

// Failure is the shrinkable result of an execution attempt.
type Failure struct {
	// Index is the position of the failing step in the executed sequence.
	Index int
	// Command is the name of the failing command.
	Command string
	Kind    FailureKind
	// Cause is preserved as returned by the system for run failures.
	Cause error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("command %d (%s): %s failure: %v", f.Index, f.Command, f.Kind, f.Cause)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Record converts the failure to its serializable form.
func (f *Failure) Record() FailureRecord {
	rec := FailureRecord{Index: f.Index, Command: f.Command, Kind: f.Kind}
	if f.Cause != nil {
		rec.Cause = f.Cause.Error()
	}
	return rec
}

// Outcome is the result of executing one sequence.
type Outcome struct {
	// Failure is nil when every command completed.
	Failure *Failure
	// Completed counts the commands whose nextState ran.
	Completed int
}

// Passed reports whether the sequence ran to completion.
func (o Outcome) Passed() bool {
	return o.Failure == nil
}

// Reproduction decides whether a failure observed while shrinking counts as
// a reproduction of the original one.
//
// In every mode a precondition failure reproduces only a precondition
// failure. Removing the step that establishes a precondition always yields
// one, and it says nothing about the system under test.
type Reproduction string

const (
	// ReproduceAny accepts any run or postcondition failure, whatever its
	// command or index.
	ReproduceAny Reproduction = "any"
	// ReproduceSame accepts a failure only when its kind and failing command
	// name match the original. The index may move as steps are removed.
	ReproduceSame Reproduction = "same"
)

// Reproduces reports whether candidate reproduces original under r.
func (r Reproduction) Reproduces(original, candidate *Failure) bool {
	if candidate == nil {
		return false
	}
	if candidate.Kind == FailurePrecondition && (original == nil || original.Kind != FailurePrecondition) {
		return false
	}
	if r != ReproduceSame || original == nil {
		return true
	}
	if candidate.Kind != original.Kind || candidate.Command != original.Command {
		return false
	}
	// Timeouts and panics are distinct signals from ordinary run errors.
	for _, sentinel := range []error{ErrRunTimeout, ErrRunPanic} {
		if errors.Is(original.Cause, sentinel) != errors.Is(candidate.Cause, sentinel) {
			return false
		}
	}
	return true
}

// Valid reports whether r is a known mode.
func (r Reproduction) Valid() bool {
	return r == ReproduceAny || r == ReproduceSame
}

// ShrinkPhase names a stage of the shrinking search.
type ShrinkPhase string

const (
	PhaseSplit    ShrinkPhase = "split"
	PhaseMinimize ShrinkPhase = "minimize"
	PhaseValues   ShrinkPhase = "values"
)

// ShrinkCandidate is one disposable trial of the shrinking search.
type ShrinkCandidate[S, Y any] struct {
	Phase    ShrinkPhase
	Sequence Sequence[S, Y]
	// Note describes the reduction, e.g. "part 2/3" or "drop 4..5".
	Note string
}
