package domain

import (
	"fmt"
	"strings"
)

// Step is a command bound to its argument values.
// The values are drawn once at generation time and reused verbatim by every
// later execution and shrink attempt; only the value shrinker replaces them.
type Step[S, Y any] struct {
	Command Command[S, Y]
	Args    Args
	// Origin is the position of the step in the generated sequence.
	// It survives removals, so shrunk steps can be traced back.
	Origin int
}

// Name returns the command name.
func (s Step[S, Y]) Name() string {
	return s.Command.Name()
}

// String renders the step as name(arg, ...).
func (s Step[S, Y]) String() string {
	return fmt.Sprintf("%s(%s)", s.Command.Name(), s.Args)
}

// Record converts the step to its serializable form.
func (s Step[S, Y]) Record() StepRecord {
	rec := StepRecord{Origin: s.Origin, Command: s.Command.Name()}
	for _, v := range s.Args {
		rec.Args = append(rec.Args, FormatValue(v))
	}
	return rec
}

// Sequence is an ordered list of bound commands.
// Order is significant: the engine never reorders a sequence, it only removes
// steps from it or replaces argument values.
type Sequence[S, Y any] []Step[S, Y]

// Len returns the number of steps.
func (q Sequence[S, Y]) Len() int {
	return len(q)
}

// Clone returns a deep copy; argument slices are not shared.
func (q Sequence[S, Y]) Clone() Sequence[S, Y] {
	out := make(Sequence[S, Y], len(q))
	for i, step := range q {
		out[i] = step
		if step.Args != nil {
			out[i].Args = append(Args(nil), step.Args...)
		}
	}
	return out
}

// Sub returns a copy of the steps in [from, to).
func (q Sequence[S, Y]) Sub(from, to int) Sequence[S, Y] {
	from = max(0, from)
	to = min(len(q), to)
	if from >= to {
		return Sequence[S, Y]{}
	}
	return q[from:to].Clone()
}

// Remove returns a copy without the n steps starting at from.
func (q Sequence[S, Y]) Remove(from, n int) Sequence[S, Y] {
	if n <= 0 || from < 0 || from >= len(q) {
		return q.Clone()
	}
	end := min(len(q), from+n)
	out := make(Sequence[S, Y], 0, len(q)-(end-from))
	out = append(out, q[:from]...)
	out = append(out, q[end:]...)
	return out.Clone()
}

// WithArg returns a copy where the arg-th value of step i is replaced.
func (q Sequence[S, Y]) WithArg(i, arg int, value any) Sequence[S, Y] {
	out := q.Clone()
	if i < 0 || i >= len(out) || arg < 0 || arg >= len(out[i].Args) {
		return out
	}
	out[i].Args[arg] = value
	return out
}

// Split partitions the sequence into k contiguous parts of roughly equal size.
// Earlier parts receive the remainder. k is clamped to the sequence length.
func (q Sequence[S, Y]) Split(k int) []Sequence[S, Y] {
	n := len(q)
	if n == 0 {
		return nil
	}
	k = max(1, min(k, n))
	base, rem := n/k, n%k

	parts := make([]Sequence[S, Y], 0, k)
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < rem {
			size++
		}
		parts = append(parts, q.Sub(start, start+size))
		start += size
	}
	return parts
}

// Names returns the command names in order.
func (q Sequence[S, Y]) Names() []string {
	names := make([]string, len(q))
	for i, step := range q {
		names[i] = step.Name()
	}
	return names
}

// Records converts every step to its serializable form.
func (q Sequence[S, Y]) Records() []StepRecord {
	out := make([]StepRecord, len(q))
	for i, step := range q {
		out[i] = step.Record()
	}
	return out
}

func (q Sequence[S, Y]) String() string {
	parts := make([]string, len(q))
	for i, step := range q {
		parts[i] = step.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
