// Package demo bundles example models with seeded bugs. The CLI checks them
// and the engine tests use them as end-to-end fixtures.
package demo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/stateprop"
	"github.com/aretw0/stateprop/pkg/domain"
)

// CounterBugAt is the count at which the demo counter misreports.
const CounterBugAt = 5

// Model is a named demo that can be checked or replayed.
type Model struct {
	Name        string
	Description string
	check       func(ctx context.Context, opts []stateprop.Option) (stateprop.Summary, error)
	replay      func(ctx context.Context, cycleSeed int64, opts []stateprop.Option) (stateprop.Summary, error)
}

var models = map[string]Model{
	"counter": define("counter", "counter whose increment misreports at 5", func() domain.Behavior[int, *Counter] {
		return CounterBehavior(CounterBugAt)
	}),
	"queue": define("queue", "bounded queue storing values in int8 slots", QueueBehavior),
}

func define[S, Y any](name, description string, behavior func() domain.Behavior[S, Y]) Model {
	return Model{
		Name:        name,
		Description: description,
		check: func(ctx context.Context, opts []stateprop.Option) (stateprop.Summary, error) {
			eng, err := stateprop.New(name, behavior(), opts...)
			if err != nil {
				return stateprop.Summary{}, err
			}
			rep, err := eng.Check(ctx)
			if err != nil {
				return stateprop.Summary{}, err
			}
			return rep.Summary, nil
		},
		replay: func(ctx context.Context, cycleSeed int64, opts []stateprop.Option) (stateprop.Summary, error) {
			eng, err := stateprop.New(name, behavior(), opts...)
			if err != nil {
				return stateprop.Summary{}, err
			}
			rep, err := eng.Replay(ctx, cycleSeed)
			if err != nil {
				return stateprop.Summary{}, err
			}
			return rep.Summary, nil
		},
	}
}

// Models lists the demo models by name.
func Models() []Model {
	out := make([]Model, 0, len(models))
	for _, m := range models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a demo model.
func Lookup(name string) (Model, error) {
	m, ok := models[name]
	if !ok {
		return Model{}, fmt.Errorf("unknown model %q", name)
	}
	return m, nil
}

// Check runs a full check of the model.
func (m Model) Check(ctx context.Context, opts ...stateprop.Option) (stateprop.Summary, error) {
	return m.check(ctx, opts)
}

// Replay reruns one cycle of the model.
func (m Model) Replay(ctx context.Context, cycleSeed int64, opts ...stateprop.Option) (stateprop.Summary, error) {
	return m.replay(ctx, cycleSeed, opts)
}
