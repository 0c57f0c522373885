package runtime_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stateprop/internal/runtime"
	"github.com/aretw0/stateprop/pkg/domain"
)

func TestGenerator_RespectsMaxAndPreconditions(t *testing.T) {
	// dec is only eligible while the model count is positive.
	dec := &domain.CommandFuncs[int, *counter]{
		Label:          "dec",
		PreconditionFn: func(state int) bool { return state > 0 },
		NextStateFn:    func(state int, _ domain.Args) int { return state - 1 },
	}
	b := counterBehavior(0, incCommand(), getCommand(), dec)
	gen := runtime.NewGenerator[int, *counter](b, runtime.WithMaxCommands(30))

	for seed := int64(0); seed < 20; seed++ {
		seq, err := gen.Generate(context.Background(), rand.New(rand.NewSource(seed)), &stubSource{})
		require.NoError(t, err)
		assert.Len(t, seq, 30)

		state := 0
		for i, step := range seq {
			assert.Equal(t, i, step.Origin)
			assert.True(t, step.Command.Precondition(state), "step %d (%s) was generated against a model that rejects it", i, step.Name())
			state = step.Command.NextState(state, step.Args)
		}
	}
}

func TestGenerator_SelectsCommandsSharingAName(t *testing.T) {
	first := &domain.CommandFuncs[int, *counter]{}
	second := &domain.CommandFuncs[int, *counter]{}
	b := counterBehavior(0)
	b.GenerateCommandsFn = func(int) []domain.Command[int, *counter] {
		return []domain.Command[int, *counter]{first, second}
	}
	gen := runtime.NewGenerator[int, *counter](b, runtime.WithMaxCommands(200))

	seq, err := gen.Generate(context.Background(), rand.New(rand.NewSource(1)), &stubSource{})
	require.NoError(t, err)
	require.Len(t, seq, 200)

	picked := map[domain.Command[int, *counter]]int{}
	for _, step := range seq {
		picked[step.Command]++
	}
	assert.Positive(t, picked[first])
	assert.Positive(t, picked[second])
}

func TestGenerator_DeterministicForSeed(t *testing.T) {
	b := counterBehavior(0)
	gen := runtime.NewGenerator[int, *counter](b, runtime.WithMaxCommands(25))

	first, err := gen.Generate(context.Background(), rand.New(rand.NewSource(99)), &stubSource{})
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), rand.New(rand.NewSource(99)), &stubSource{})
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
}

func TestGenerator_BindsArguments(t *testing.T) {
	b := accumulatorBehavior(addCommand(60))
	gen := runtime.NewGenerator[int, *accumulator](b, runtime.WithMaxCommands(4))

	seq, err := gen.Generate(context.Background(), rand.New(rand.NewSource(1)), &stubSource{values: []int{7, 8}})
	require.NoError(t, err)
	require.Len(t, seq, 4)
	assert.Equal(t, "[add(7) add(8) add(7) add(8)]", seq.String())
}

func TestGenerator_Errors(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	t.Run("Initialize State", func(t *testing.T) {
		b := counterBehavior(0)
		b.InitializeStateFn = func() (int, error) { return 0, errors.New("no model") }

		_, err := runtime.NewGenerator[int, *counter](b).Generate(ctx, rng, &stubSource{})
		assert.ErrorIs(t, err, domain.ErrSetup)

		var setupErr *domain.SetupError
		require.ErrorAs(t, err, &setupErr)
		assert.Equal(t, "initialize state", setupErr.Stage)
	})

	t.Run("Initial Precondition", func(t *testing.T) {
		b := counterBehavior(0)
		b.InitializePreconditionFn = func(int) bool { return false }

		_, err := runtime.NewGenerator[int, *counter](b).Generate(ctx, rng, &stubSource{})
		assert.ErrorIs(t, err, domain.ErrSetup)
		assert.ErrorIs(t, err, domain.ErrInitialPrecondition)
	})

	t.Run("Empty Pool", func(t *testing.T) {
		b := counterBehavior(0)
		b.GenerateCommandsFn = func(int) []counterCmd { return nil }

		_, err := runtime.NewGenerator[int, *counter](b).Generate(ctx, rng, &stubSource{})
		assert.ErrorIs(t, err, domain.ErrEmptyCommandPool)
	})

	t.Run("Exhausted", func(t *testing.T) {
		never := &domain.CommandFuncs[int, *counter]{
			Label:          "never",
			PreconditionFn: func(int) bool { return false },
		}
		b := counterBehavior(0, never)

		_, err := runtime.NewGenerator[int, *counter](b, runtime.WithSelectionRetries(10)).Generate(ctx, rng, &stubSource{})
		assert.ErrorIs(t, err, domain.ErrGenerationExhausted)
	})

	t.Run("Never Creates System", func(t *testing.T) {
		b := counterBehavior(0)
		b.CreateSystemFn = func(context.Context, int) (*counter, error) {
			t.Fatal("generation must not create a system")
			return nil, nil
		}

		_, err := runtime.NewGenerator[int, *counter](b).Generate(ctx, rng, &stubSource{})
		assert.NoError(t, err)
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := runtime.NewGenerator[int, *counter](counterBehavior(0)).Generate(cctx, rng, &stubSource{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
