package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/stateprop/pkg/domain"
)

// Executor replays sequences against a fresh model and system pair.
type Executor[S, Y any] struct {
	behavior domain.Behavior[S, Y]
	cfg      settings
}

// NewExecutor creates an executor for behavior.
func NewExecutor[S, Y any](behavior domain.Behavior[S, Y], opts ...Option) *Executor[S, Y] {
	return &Executor[S, Y]{behavior: behavior, cfg: newSettings(opts)}
}

// Execute runs seq in order. A failing command yields an Outcome carrying the
// Failure; the returned error is reserved for setup failures and
// cancellation, which are never shrinkable. The system is destroyed on every
// path once created.
func (e *Executor[S, Y]) Execute(ctx context.Context, seq domain.Sequence[S, Y]) (out domain.Outcome, err error) {
	state, err := initialize(e.behavior)
	if err != nil {
		return out, err
	}

	sys, err := e.behavior.CreateSystem(ctx, state)
	if err != nil {
		return out, &domain.SetupError{Stage: "create system", Err: err}
	}
	defer func() {
		if derr := e.behavior.Destroy(context.WithoutCancel(ctx), sys); derr != nil {
			e.cfg.logger.Warn("destroy system failed", "error", derr)
		}
	}()

	for i, step := range seq {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("execution aborted before command %d: %w", i, err)
		}

		start := time.Now()
		next, failure := e.step(ctx, i, state, sys, step)
		if failure == nil {
			state = next
		}

		// A cancelled parent context is an abort, not an observation of the system.
		if failure != nil && ctx.Err() != nil {
			return out, fmt.Errorf("execution aborted at command %d: %w", i, ctx.Err())
		}

		e.cfg.hooks.EmitCommand(ctx, &domain.CommandEvent{
			EventBase: domain.NewEventBase(domain.EventCommand, e.cfg.model),
			Index:     i,
			Command:   step.Name(),
			Duration:  time.Since(start),
			Failure:   failure,
		})

		if failure != nil {
			e.cfg.logger.Debug("command failed", "index", i, "command", step.Name(), "kind", failure.Kind, "error", failure.Cause)
			out.Failure = failure
			return out, nil
		}
		out.Completed++
	}
	return out, nil
}

// step runs the precondition, run, postcondition and nextState of one command.
// The postcondition sees the state from before NextState.
func (e *Executor[S, Y]) step(ctx context.Context, i int, state S, sys Y, step domain.Step[S, Y]) (S, *domain.Failure) {
	fail := func(kind domain.FailureKind, cause error) (S, *domain.Failure) {
		return state, &domain.Failure{Index: i, Command: step.Name(), Kind: kind, Cause: cause}
	}

	if !step.Command.Precondition(state) {
		return fail(domain.FailurePrecondition, domain.ErrPreconditionViolated)
	}

	result, err := e.run(ctx, sys, step)
	if err != nil {
		return fail(domain.FailureRun, err)
	}

	if !step.Command.Postcondition(state, step.Args, result) {
		return fail(domain.FailurePostcondition, fmt.Errorf("%w: result %s", domain.ErrPostconditionViolated, domain.FormatValue(result)))
	}

	return step.Command.NextState(state, step.Args), nil
}

type runReply struct {
	result any
	err    error
}

// run invokes the command on its own goroutine so a timeout or cancellation
// can abandon it. Panics are recovered into errors wrapping ErrRunPanic.
func (e *Executor[S, Y]) run(ctx context.Context, sys Y, step domain.Step[S, Y]) (any, error) {
	runCtx := ctx
	if e.cfg.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.cfg.runTimeout)
		defer cancel()
	}

	done := make(chan runReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- runReply{err: fmt.Errorf("%w: %v", domain.ErrRunPanic, r)}
			}
		}()
		result, err := step.Command.Run(runCtx, sys, step.Args)
		done <- runReply{result: result, err: err}
	}()

	select {
	case reply := <-done:
		if reply.err != nil && e.timedOut(ctx, runCtx) && !errors.Is(reply.err, domain.ErrRunTimeout) {
			return nil, fmt.Errorf("%w after %s: %w", domain.ErrRunTimeout, e.cfg.runTimeout, reply.err)
		}
		return reply.result, reply.err
	case <-runCtx.Done():
		if e.timedOut(ctx, runCtx) {
			return nil, fmt.Errorf("%w after %s", domain.ErrRunTimeout, e.cfg.runTimeout)
		}
		return nil, runCtx.Err()
	}
}

func (e *Executor[S, Y]) timedOut(parent, runCtx context.Context) bool {
	return parent.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded)
}
