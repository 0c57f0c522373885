/*
Package stateprop is a stateful property-based testing engine.

A model describes a system under test as a set of commands. Each command has
a precondition on the model state, a run against the real system, a
postcondition comparing the real result with the model, and a next-state
function. The engine generates random command sequences from the model,
executes them against a fresh system and, when a sequence fails, shrinks it
to a minimal counterexample.

# Concept

Checking happens in cycles. Every cycle derives its own seed from the master
seed, so any failing cycle can be replayed on its own from the seed stored in
its Counterexample.

Shrinking runs three phases:

  - Split: the failing sequence is cut into a few parts and the smallest part
    that still fails on its own is kept.
  - Minimize: chunks of halving size are removed while the failure reproduces.
  - Values: command arguments are shrunk through their generators.

Arguments are drawn from gopter generators wrapped by pkg/arbitrary.

# Usage

	type counter struct{ n int }

	inc := &domain.CommandFuncs[int, *counter]{
		Label: "inc",
		RunFn: func(_ context.Context, c *counter, _ domain.Args) (any, error) {
			c.n++
			return c.n, nil
		},
		PostconditionFn: func(state int, _ domain.Args, result any) bool { return result == state+1 },
		NextStateFn:     func(state int, _ domain.Args) int { return state + 1 },
	}

	behavior := &domain.BehaviorFuncs[int, *counter]{
		GenerateCommandsFn: func(int) []domain.Command[int, *counter] {
			return []domain.Command[int, *counter]{inc}
		},
		CreateSystemFn: func(context.Context, int) (*counter, error) { return &counter{}, nil },
	}

	eng, err := stateprop.New("counter", behavior, stateprop.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}
	rep, err := eng.Check(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := rep.Err(); err != nil {
		fmt.Println(rep.Minimal)
	}

Counterexamples can be persisted with WithStore and one of the adapters under
pkg/adapters (memory, file or redis), then replayed with Engine.Replay.
*/
package stateprop
