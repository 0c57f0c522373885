package demo

import (
	"context"
	"sync"

	"github.com/aretw0/stateprop/pkg/domain"
)

// Counter is a counter whose increment misreports when it reaches BugAt.
type Counter struct {
	mu    sync.Mutex
	value int
	BugAt int
}

// Increment adds one and returns the new value.
func (c *Counter) Increment() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value++
	if c.value == c.BugAt {
		return c.value + 1
	}
	return c.value
}

// Value returns the current count.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// CounterBehavior models Counter with a plain int.
func CounterBehavior(bugAt int) domain.Behavior[int, *Counter] {
	inc := &domain.CommandFuncs[int, *Counter]{
		Label:     "increment",
		Frequency: 2,
		RunFn: func(_ context.Context, sys *Counter, _ domain.Args) (any, error) {
			return sys.Increment(), nil
		},
		PostconditionFn: func(state int, _ domain.Args, result any) bool { return result == state+1 },
		NextStateFn:     func(state int, _ domain.Args) int { return state + 1 },
	}
	get := &domain.CommandFuncs[int, *Counter]{
		Label: "get",
		RunFn: func(_ context.Context, sys *Counter, _ domain.Args) (any, error) {
			return sys.Value(), nil
		},
		PostconditionFn: func(state int, _ domain.Args, result any) bool { return result == state },
	}

	return &domain.BehaviorFuncs[int, *Counter]{
		InitializeStateFn:        func() (int, error) { return 0, nil },
		InitializePreconditionFn: func(state int) bool { return state == 0 },
		GenerateCommandsFn: func(int) []domain.Command[int, *Counter] {
			return []domain.Command[int, *Counter]{inc, get}
		},
		CreateSystemFn: func(context.Context, int) (*Counter, error) {
			return &Counter{BugAt: bugAt}, nil
		},
	}
}
