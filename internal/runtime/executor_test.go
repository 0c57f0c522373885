package runtime_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stateprop/internal/runtime"
	"github.com/aretw0/stateprop/pkg/domain"
)

func TestExecutor_CounterFailsAtBug(t *testing.T) {
	inc := incCommand()
	seq := sequenceOf(inc, inc, getCommand(), inc, inc, inc, inc)

	out, err := runtime.NewExecutor[int, *counter](counterBehavior(5)).Execute(context.Background(), seq)
	require.NoError(t, err)
	require.NotNil(t, out.Failure)
	assert.Equal(t, 5, out.Failure.Index)
	assert.Equal(t, "inc", out.Failure.Command)
	assert.Equal(t, domain.FailurePostcondition, out.Failure.Kind)
	assert.ErrorIs(t, out.Failure, domain.ErrPostconditionViolated)
	assert.Equal(t, 5, out.Completed)
}

func TestExecutor_Passes(t *testing.T) {
	inc := incCommand()
	seq := sequenceOf(inc, getCommand(), inc)

	out, err := runtime.NewExecutor[int, *counter](counterBehavior(0)).Execute(context.Background(), seq)
	require.NoError(t, err)
	assert.True(t, out.Passed())
	assert.Equal(t, 3, out.Completed)
}

func TestExecutor_PostconditionSeesPreState(t *testing.T) {
	var seen []int
	cmd := &domain.CommandFuncs[int, *counter]{
		Label: "observe",
		PostconditionFn: func(state int, _ domain.Args, _ any) bool {
			seen = append(seen, state)
			return true
		},
		NextStateFn: func(state int, _ domain.Args) int { return state + 10 },
	}

	_, err := runtime.NewExecutor[int, *counter](counterBehavior(0)).Execute(context.Background(), sequenceOf[int, *counter](cmd, cmd, cmd))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20}, seen)
}

func TestExecutor_StepOrdering(t *testing.T) {
	var calls []string
	record := func(name string) *domain.CommandFuncs[int, *counter] {
		return &domain.CommandFuncs[int, *counter]{
			Label: name,
			PreconditionFn: func(int) bool {
				calls = append(calls, name+".pre")
				return true
			},
			RunFn: func(context.Context, *counter, domain.Args) (any, error) {
				calls = append(calls, name+".run")
				return nil, nil
			},
			PostconditionFn: func(int, domain.Args, any) bool {
				calls = append(calls, name+".post")
				return true
			},
			NextStateFn: func(state int, _ domain.Args) int {
				calls = append(calls, name+".next")
				return state
			},
		}
	}

	_, err := runtime.NewExecutor[int, *counter](counterBehavior(0)).Execute(context.Background(), sequenceOf[int, *counter](record("a"), record("b")))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.pre", "a.run", "a.post", "a.next",
		"b.pre", "b.run", "b.post", "b.next",
	}, calls)
}

func TestExecutor_PreconditionViolation(t *testing.T) {
	dec := &domain.CommandFuncs[int, *counter]{
		Label:          "dec",
		PreconditionFn: func(state int) bool { return state > 0 },
	}

	out, err := runtime.NewExecutor[int, *counter](counterBehavior(0)).Execute(context.Background(), sequenceOf[int, *counter](dec))
	require.NoError(t, err)
	require.NotNil(t, out.Failure)
	assert.Equal(t, domain.FailurePrecondition, out.Failure.Kind)
	assert.ErrorIs(t, out.Failure, domain.ErrPreconditionViolated)
	assert.Equal(t, 0, out.Failure.Index)
}

func TestExecutor_TeardownOnEveryPath(t *testing.T) {
	panicking := named("panic")
	panicking.RunFn = func(context.Context, *flags, domain.Args) (any, error) { panic("kaboom") }

	rejecting := named("reject")
	rejecting.PostconditionFn = func(int, domain.Args, any) bool { return false }

	tests := []struct {
		name    string
		seq     domain.Sequence[int, *flags]
		opts    []runtime.Option
		kind    domain.FailureKind
		cause   error
		passing bool
	}{
		{
			name:    "Success",
			seq:     sequenceOf[int, *flags](named("a"), named("b")),
			passing: true,
		},
		{
			name:  "Run Error",
			seq:   sequenceOf[int, *flags](named("a"), failing("c", func(*flags) bool { return true })),
			kind:  domain.FailureRun,
			cause: errBoom,
		},
		{
			name:  "Postcondition",
			seq:   sequenceOf[int, *flags](rejecting, named("a")),
			kind:  domain.FailurePostcondition,
			cause: domain.ErrPostconditionViolated,
		},
		{
			name:  "Panic",
			seq:   sequenceOf[int, *flags](named("a"), panicking),
			kind:  domain.FailureRun,
			cause: domain.ErrRunPanic,
		},
		{
			name:  "Timeout",
			seq:   sequenceOf[int, *flags](sleeper(500 * time.Millisecond)),
			opts:  []runtime.Option{runtime.WithRunTimeout(20 * time.Millisecond)},
			kind:  domain.FailureRun,
			cause: domain.ErrRunTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := &lifecycle{}
			lc.On("Destroy", mock.Anything).Return(nil).Once()

			exec := runtime.NewExecutor[int, *flags](flagBehavior(lc.Destroy), tt.opts...)
			out, err := exec.Execute(context.Background(), tt.seq)
			require.NoError(t, err)

			if tt.passing {
				assert.True(t, out.Passed())
			} else {
				require.NotNil(t, out.Failure)
				assert.Equal(t, tt.kind, out.Failure.Kind)
				assert.ErrorIs(t, out.Failure, tt.cause)
			}
			lc.AssertExpectations(t)
		})
	}
}

func TestExecutor_Cancellation(t *testing.T) {
	lc := &lifecycle{}
	lc.On("Destroy", mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	stop := named("stop")
	stop.RunFn = func(context.Context, *flags, domain.Args) (any, error) {
		cancel()
		return nil, nil
	}

	exec := runtime.NewExecutor[int, *flags](flagBehavior(lc.Destroy))
	_, err := exec.Execute(ctx, sequenceOf[int, *flags](stop, named("a")))

	assert.ErrorIs(t, err, context.Canceled)
	lc.AssertExpectations(t)
}

func TestExecutor_SetupErrors(t *testing.T) {
	t.Run("Create System", func(t *testing.T) {
		lc := &lifecycle{}
		b := flagBehavior(lc.Destroy)
		b.CreateSystemFn = func(context.Context, int) (*flags, error) { return nil, errors.New("no system") }

		_, err := runtime.NewExecutor[int, *flags](b).Execute(context.Background(), sequenceOf[int, *flags](named("a")))
		assert.ErrorIs(t, err, domain.ErrSetup)
		lc.AssertNotCalled(t, "Destroy", mock.Anything)
	})

	t.Run("Initial Precondition", func(t *testing.T) {
		b := flagBehavior(nil)
		b.InitializePreconditionFn = func(int) bool { return false }

		_, err := runtime.NewExecutor[int, *flags](b).Execute(context.Background(), sequenceOf[int, *flags](named("a")))
		assert.ErrorIs(t, err, domain.ErrInitialPrecondition)
	})

	t.Run("Destroy Error Is Not A Failure", func(t *testing.T) {
		lc := &lifecycle{}
		lc.On("Destroy", mock.Anything).Return(errors.New("leak")).Once()

		out, err := runtime.NewExecutor[int, *flags](flagBehavior(lc.Destroy)).Execute(context.Background(), sequenceOf[int, *flags](named("a")))
		require.NoError(t, err)
		assert.True(t, out.Passed())
		lc.AssertExpectations(t)
	})
}

func TestExecutor_Deterministic(t *testing.T) {
	b := counterBehavior(5)
	gen := runtime.NewGenerator[int, *counter](b, runtime.WithMaxCommands(20))
	exec := runtime.NewExecutor[int, *counter](b)

	for seed := int64(0); seed < 10; seed++ {
		seq, err := gen.Generate(context.Background(), rand.New(rand.NewSource(seed)), &stubSource{})
		require.NoError(t, err)

		first, err := exec.Execute(context.Background(), seq)
		require.NoError(t, err)
		second, err := exec.Execute(context.Background(), seq)
		require.NoError(t, err)

		assert.Equal(t, first.Passed(), second.Passed())
		if first.Failure != nil {
			assert.Equal(t, first.Failure.Index, second.Failure.Index)
			assert.Equal(t, first.Failure.Kind, second.Failure.Kind)
			assert.Equal(t, first.Failure.Cause.Error(), second.Failure.Cause.Error())
		}
	}
}

func TestExecutor_EmitsCommandEvents(t *testing.T) {
	var names []string
	hooks := domain.LifecycleHooks{
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			names = append(names, e.Command)
			assert.Equal(t, "counter", e.Model)
		},
	}
	inc := incCommand()
	exec := runtime.NewExecutor[int, *counter](counterBehavior(2), runtime.WithHooks(hooks), runtime.WithModel("counter"))

	out, err := exec.Execute(context.Background(), sequenceOf(inc, getCommand(), inc, inc))
	require.NoError(t, err)
	require.NotNil(t, out.Failure)
	assert.Equal(t, []string{"inc", "get", "inc"}, names, "the failing command is reported, later ones never run")
}
