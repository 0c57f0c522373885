package domain

import (
	"context"
	"fmt"
	"strings"
)

// Domain identifies the set of values an argument is drawn from.
// The engine treats it as opaque and hands it back to the value source.
type Domain interface {
	String() string
}

// Args holds the values bound to one command instance, in parameter order.
type Args []any

// Arg returns the i-th bound value as T, or the zero value of T when the
// index is out of range or the value has a different type.
func Arg[T any](args Args, i int) T {
	var zero T
	if i < 0 || i >= len(args) {
		return zero
	}
	v, ok := args[i].(T)
	if !ok {
		return zero
	}
	return v
}

// String renders the values as a comma separated list.
func (a Args) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, ", ")
}

// FormatValue renders a bound value for reports.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// Command is one operation over the model state S and the system under test Y.
//
// Precondition and Postcondition must not mutate the state.
// NextState is the only place where the model changes; it returns the
// advanced state so both pointer and value models are supported.
// Postcondition always observes the state as it was before NextState.
type Command[S, Y any] interface {
	Name() string
	Precondition(state S) bool
	Run(ctx context.Context, sys Y, args Args) (any, error)
	Postcondition(state S, args Args, result any) bool
	NextState(state S, args Args) S
}

// Parameterized is implemented by commands that carry bound values.
// One value is drawn from each domain when the command is selected.
type Parameterized interface {
	Parameters() []Domain
}

// Weighted is implemented by commands whose selection weight differs from 1.
type Weighted interface {
	Weight() int
}

// ParametersOf returns the argument domains of cmd, or nil.
func ParametersOf[S, Y any](cmd Command[S, Y]) []Domain {
	if p, ok := cmd.(Parameterized); ok {
		return p.Parameters()
	}
	return nil
}

// WeightOf returns the selection weight of cmd. Non-positive weights
// exclude the command from selection.
func WeightOf[S, Y any](cmd Command[S, Y]) int {
	if w, ok := cmd.(Weighted); ok {
		return w.Weight()
	}
	return 1
}

// CommandFuncs adapts plain functions to Command.
// Nil predicates always hold, a nil RunFn returns (nil, nil) and a nil
// NextStateFn leaves the state untouched.
type CommandFuncs[S, Y any] struct {
	Label           string
	Params          []Domain
	Frequency       int
	PreconditionFn  func(state S) bool
	RunFn           func(ctx context.Context, sys Y, args Args) (any, error)
	PostconditionFn func(state S, args Args, result any) bool
	NextStateFn     func(state S, args Args) S
}

func (c *CommandFuncs[S, Y]) Name() string { return c.Label }

func (c *CommandFuncs[S, Y]) Parameters() []Domain { return c.Params }

// Weight defaults to 1 when Frequency is unset.
func (c *CommandFuncs[S, Y]) Weight() int {
	if c.Frequency == 0 {
		return 1
	}
	return c.Frequency
}

func (c *CommandFuncs[S, Y]) Precondition(state S) bool {
	if c.PreconditionFn == nil {
		return true
	}
	return c.PreconditionFn(state)
}

func (c *CommandFuncs[S, Y]) Run(ctx context.Context, sys Y, args Args) (any, error) {
	if c.RunFn == nil {
		return nil, nil
	}
	return c.RunFn(ctx, sys, args)
}

func (c *CommandFuncs[S, Y]) Postcondition(state S, args Args, result any) bool {
	if c.PostconditionFn == nil {
		return true
	}
	return c.PostconditionFn(state, args, result)
}

func (c *CommandFuncs[S, Y]) NextState(state S, args Args) S {
	if c.NextStateFn == nil {
		return state
	}
	return c.NextStateFn(state, args)
}
