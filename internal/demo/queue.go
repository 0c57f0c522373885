package demo

import (
	"context"
	"slices"

	"github.com/aretw0/stateprop/pkg/arbitrary"
	"github.com/aretw0/stateprop/pkg/domain"
)

// QueueCapacity bounds the demo queue.
const QueueCapacity = 4

// Queue is a bounded ring buffer. It stores values in int8 slots, so values
// above 127 come back wrapped.
type Queue struct {
	slots      [QueueCapacity]int8
	head, size int
}

// Push appends v. It reports false when the queue is full.
func (q *Queue) Push(v int) bool {
	if q.size == QueueCapacity {
		return false
	}
	q.slots[(q.head+q.size)%QueueCapacity] = int8(v)
	q.size++
	return true
}

// Pop removes and returns the oldest value. It reports false when empty.
func (q *Queue) Pop() (int, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.slots[q.head]
	q.head = (q.head + 1) % QueueCapacity
	q.size--
	return int(v), true
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	return q.size
}

// Popped is the result of a pop.
type Popped struct {
	Value int
	OK    bool
}

// QueueBehavior models Queue with a slice. Commands carry no preconditions:
// full and empty queues are part of the checked behavior. NextState always
// returns a new slice so earlier states are never aliased.
func QueueBehavior() domain.Behavior[[]int, *Queue] {
	push := &domain.CommandFuncs[[]int, *Queue]{
		Label:     "push",
		Params:    []domain.Domain{arbitrary.IntRange(0, 200)},
		Frequency: 2,
		RunFn: func(_ context.Context, sys *Queue, args domain.Args) (any, error) {
			return sys.Push(domain.Arg[int](args, 0)), nil
		},
		PostconditionFn: func(state []int, _ domain.Args, result any) bool {
			return result == (len(state) < QueueCapacity)
		},
		NextStateFn: func(state []int, args domain.Args) []int {
			if len(state) == QueueCapacity {
				return state
			}
			return append(slices.Clone(state), domain.Arg[int](args, 0))
		},
	}
	pop := &domain.CommandFuncs[[]int, *Queue]{
		Label: "pop",
		RunFn: func(_ context.Context, sys *Queue, _ domain.Args) (any, error) {
			v, ok := sys.Pop()
			return Popped{Value: v, OK: ok}, nil
		},
		PostconditionFn: func(state []int, _ domain.Args, result any) bool {
			if len(state) == 0 {
				return result == Popped{}
			}
			return result == Popped{Value: state[0], OK: true}
		},
		NextStateFn: func(state []int, _ domain.Args) []int {
			if len(state) == 0 {
				return state
			}
			return slices.Clone(state[1:])
		},
	}
	size := &domain.CommandFuncs[[]int, *Queue]{
		Label: "len",
		RunFn: func(_ context.Context, sys *Queue, _ domain.Args) (any, error) {
			return sys.Len(), nil
		},
		PostconditionFn: func(state []int, _ domain.Args, result any) bool { return result == len(state) },
	}

	return &domain.BehaviorFuncs[[]int, *Queue]{
		InitializeStateFn: func() ([]int, error) { return []int{}, nil },
		GenerateCommandsFn: func([]int) []domain.Command[[]int, *Queue] {
			return []domain.Command[[]int, *Queue]{push, pop, size}
		},
		CreateSystemFn: func(context.Context, []int) (*Queue, error) {
			return &Queue{}, nil
		},
	}
}
