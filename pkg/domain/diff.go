package domain

import (
	"reflect"
)

// ArgChange records one argument value replaced by the value shrinker.
type ArgChange struct {
	Origin  int    `json:"origin"`
	Command string `json:"command"`
	Arg     int    `json:"arg"`
	From    any    `json:"from"`
	To      any    `json:"to"`
}

// SequenceDiff represents the changes between a generated sequence and its
// shrunk form. Steps are matched by their Origin.
type SequenceDiff struct {
	// Removed lists the origins of steps that were dropped, in order.
	Removed []int `json:"removed,omitempty"`
	// Changed lists argument values that differ in the kept steps.
	Changed []ArgChange `json:"changed,omitempty"`
}

// DiffSequences calculates the difference between original and shrunk.
// It returns nil when nothing changed.
func DiffSequences[S, Y any](original, shrunk Sequence[S, Y]) *SequenceDiff {
	kept := make(map[int]Step[S, Y], len(shrunk))
	for _, step := range shrunk {
		kept[step.Origin] = step
	}

	diff := &SequenceDiff{}
	for _, step := range original {
		now, ok := kept[step.Origin]
		if !ok {
			diff.Removed = append(diff.Removed, step.Origin)
			continue
		}
		diff.Changed = append(diff.Changed, diffArgs(step, now)...)
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffArgs[S, Y any](before, after Step[S, Y]) []ArgChange {
	var changes []ArgChange
	for i, oldVal := range before.Args {
		if i >= len(after.Args) {
			break
		}
		if !reflect.DeepEqual(oldVal, after.Args[i]) {
			changes = append(changes, ArgChange{
				Origin:  before.Origin,
				Command: before.Name(),
				Arg:     i,
				From:    oldVal,
				To:      after.Args[i],
			})
		}
	}
	return changes
}

// IsEmpty checks if the diff contains any changes.
func (d *SequenceDiff) IsEmpty() bool {
	return d == nil || (len(d.Removed) == 0 && len(d.Changed) == 0)
}
