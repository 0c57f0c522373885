package domain

import "context"

// Behavior is the policy object supplied by the test author.
//
// It must produce independent State and System instances on every call:
// the engine constructs a fresh pair for every execution attempt and never
// reuses them across attempts.
type Behavior[S, Y any] interface {
	// InitializeState creates the model.
	InitializeState() (S, error)
	// InitializePrecondition validates the freshly created model. It must not mutate it.
	InitializePrecondition(state S) bool
	// GenerateCommands returns the candidate command pool for a cycle.
	GenerateCommands(state S) []Command[S, Y]
	// CreateSystem creates the real system under test. Never called during generation.
	CreateSystem(ctx context.Context, state S) (Y, error)
	// Destroy releases the system. Called on every exit path of an execution attempt.
	Destroy(ctx context.Context, sys Y) error
}

// BehaviorFuncs adapts plain functions to Behavior.
// A nil InitializePreconditionFn always holds and a nil DestroyFn is a no-op.
type BehaviorFuncs[S, Y any] struct {
	InitializeStateFn        func() (S, error)
	InitializePreconditionFn func(state S) bool
	GenerateCommandsFn       func(state S) []Command[S, Y]
	CreateSystemFn           func(ctx context.Context, state S) (Y, error)
	DestroyFn                func(ctx context.Context, sys Y) error
}

func (b *BehaviorFuncs[S, Y]) InitializeState() (S, error) {
	if b.InitializeStateFn == nil {
		var zero S
		return zero, nil
	}
	return b.InitializeStateFn()
}

func (b *BehaviorFuncs[S, Y]) InitializePrecondition(state S) bool {
	if b.InitializePreconditionFn == nil {
		return true
	}
	return b.InitializePreconditionFn(state)
}

func (b *BehaviorFuncs[S, Y]) GenerateCommands(state S) []Command[S, Y] {
	if b.GenerateCommandsFn == nil {
		return nil
	}
	return b.GenerateCommandsFn(state)
}

func (b *BehaviorFuncs[S, Y]) CreateSystem(ctx context.Context, state S) (Y, error) {
	if b.CreateSystemFn == nil {
		var zero Y
		return zero, nil
	}
	return b.CreateSystemFn(ctx, state)
}

func (b *BehaviorFuncs[S, Y]) Destroy(ctx context.Context, sys Y) error {
	if b.DestroyFn == nil {
		return nil
	}
	return b.DestroyFn(ctx, sys)
}
