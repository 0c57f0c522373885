package runtime

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/ports"
	"github.com/aretw0/stateprop/pkg/registry"
)

// Generator builds command sequences by simulating the model alone.
// It never creates a system.
type Generator[S, Y any] struct {
	behavior domain.Behavior[S, Y]
	cfg      settings
}

// NewGenerator creates a generator for behavior.
func NewGenerator[S, Y any](behavior domain.Behavior[S, Y], opts ...Option) *Generator[S, Y] {
	return &Generator[S, Y]{behavior: behavior, cfg: newSettings(opts)}
}

// Generate draws a sequence of up to the configured maximum length.
// Commands are picked with rng and only kept when their precondition holds
// against the model at that point; the model then advances through NextState.
func (g *Generator[S, Y]) Generate(ctx context.Context, rng *rand.Rand, src ports.ValueSource) (domain.Sequence[S, Y], error) {
	state, err := initialize(g.behavior)
	if err != nil {
		return nil, err
	}

	pool := registry.NewPool(g.behavior.GenerateCommands(state))
	if pool.Len() == 0 {
		return nil, domain.ErrEmptyCommandPool
	}

	seq := make(domain.Sequence[S, Y], 0, g.cfg.maxCommands)
	rejected := 0
	for len(seq) < g.cfg.maxCommands {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation aborted: %w", err)
		}

		cmd, err := pool.Pick(rng)
		if err != nil {
			return nil, err
		}
		if !cmd.Precondition(state) {
			rejected++
			if rejected > g.cfg.selectionRetries {
				return nil, fmt.Errorf("%w after %d rejected selections at position %d", domain.ErrGenerationExhausted, rejected, len(seq))
			}
			continue
		}
		rejected = 0

		args, err := bind(cmd, src)
		if err != nil {
			return nil, fmt.Errorf("bind arguments of %s: %w", cmd.Name(), err)
		}
		seq = append(seq, domain.Step[S, Y]{Command: cmd, Args: args, Origin: len(seq)})
		state = cmd.NextState(state, args)
	}

	g.cfg.logger.Debug("sequence generated", "length", len(seq))
	return seq, nil
}

func bind[S, Y any](cmd domain.Command[S, Y], src ports.ValueSource) (domain.Args, error) {
	params := domain.ParametersOf(cmd)
	if len(params) == 0 {
		return nil, nil
	}
	args := make(domain.Args, len(params))
	for i, d := range params {
		v, err := src.Sample(d)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, d, err)
		}
		args[i] = v
	}
	return args, nil
}
