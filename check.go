package stateprop

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/stateprop/internal/random"
	"github.com/aretw0/stateprop/internal/runtime"
	"github.com/aretw0/stateprop/pkg/domain"
)

// Check runs up to the configured number of cycles. Each cycle generates a
// sequence from the model and executes it against a fresh system. The first
// failing cycle is shrunk, stored when a store is configured, and reported;
// later cycles are skipped.
//
// A failing model is not an error: inspect Report.Passed. Errors are setup
// failures, generation exhaustion and cancellation.
func (e *Engine[S, Y]) Check(ctx context.Context) (*Report[S, Y], error) {
	seeds := random.NewSeeds(e.seed)
	e.logger.Info("check started", "seed", e.seed, "cycles", e.cfg.Cycles, "max_commands", e.cfg.MaxCommands)

	for cycle := 0; cycle < e.cfg.Cycles; cycle++ {
		rep, err := e.runCycle(ctx, cycle, seeds.Next())
		if err != nil {
			return nil, err
		}
		if rep.Passed {
			continue
		}

		rep.Cycles = cycle + 1
		if e.store != nil {
			if err := e.store.Save(ctx, rep.Counterexample); err != nil {
				e.logger.Error("failed to save counterexample", "id", rep.Counterexample.ID, "error", err)
			}
		}
		return rep, nil
	}

	e.logger.Info("check passed", "seed", e.seed, "cycles", e.cfg.Cycles)
	return &Report[S, Y]{Summary: Summary{Model: e.name, Seed: e.seed, Cycles: e.cfg.Cycles, Passed: true}}, nil
}

// Replay reruns the single cycle derived from cycleSeed, as recorded in a
// Counterexample. The sequence only matches the recorded one when the engine
// uses the recorded Generation settings. The result is not stored.
func (e *Engine[S, Y]) Replay(ctx context.Context, cycleSeed int64) (*Report[S, Y], error) {
	rep, err := e.runCycle(ctx, 0, cycleSeed)
	if err != nil {
		return nil, err
	}
	rep.Cycles = 1
	return rep, nil
}

func (e *Engine[S, Y]) generation() domain.GenerationRecord {
	return domain.GenerationRecord{MaxCommands: e.cfg.MaxCommands, SelectionRetries: e.cfg.SelectionRetries}
}

func (e *Engine[S, Y]) runCycle(ctx context.Context, cycle int, cycleSeed int64) (*Report[S, Y], error) {
	rc := random.ForCycle(cycleSeed)
	src := e.factory(rc.SourceSeed)

	e.hooks.EmitCycleStart(ctx, &domain.CycleEvent{
		EventBase: domain.NewEventBase(domain.EventCycleStart, e.name),
		Cycle:     cycle,
		Seed:      cycleSeed,
	})

	seq, err := e.generator.Generate(ctx, rc.Selection, src)
	if err != nil {
		return nil, fmt.Errorf("cycle %d (seed %d): generate: %w", cycle, cycleSeed, err)
	}
	out, err := e.executor.Execute(ctx, seq)
	if err != nil {
		return nil, fmt.Errorf("cycle %d (seed %d): execute: %w", cycle, cycleSeed, err)
	}

	e.hooks.EmitCycleEnd(ctx, &domain.CycleEvent{
		EventBase: domain.NewEventBase(domain.EventCycleEnd, e.name),
		Cycle:     cycle,
		Seed:      cycleSeed,
		Length:    len(seq),
		Passed:    out.Passed(),
	})
	e.logger.Debug("cycle done", "cycle", cycle, "cycle_seed", cycleSeed, "length", len(seq), "passed", out.Passed())

	rep := &Report[S, Y]{Summary: Summary{Model: e.name, Seed: e.seed, Cycles: cycle + 1, Passed: out.Passed()}}
	if out.Passed() {
		return rep, nil
	}

	e.logger.Info("failure found", "cycle", cycle, "cycle_seed", cycleSeed, "length", len(seq), "error", out.Failure)
	e.hooks.EmitFailure(ctx, &domain.FailureEvent{
		EventBase: domain.NewEventBase(domain.EventFailure, e.name),
		Cycle:     cycle,
		Length:    len(seq),
		Failure:   out.Failure,
	})

	shrinker := runtime.NewShrinker(e.executor, src, e.runtimeOptions()...)
	res, err := shrinker.Shrink(ctx, seq, out.Failure)
	if err != nil {
		return nil, fmt.Errorf("cycle %d (seed %d): %w", cycle, cycleSeed, err)
	}

	rep.Original = seq
	rep.OriginalFailure = out.Failure
	rep.Minimal = res.Sequence
	rep.Failure = res.Failure
	rep.Diff = domain.DiffSequences(seq, res.Sequence)
	rep.Counterexample = &domain.Counterexample{
		ID:             domain.CounterexampleID(e.name, cycleSeed),
		Model:          e.name,
		Seed:           e.seed,
		Cycle:          cycle,
		CycleSeed:      cycleSeed,
		Generation:     e.generation(),
		Steps:          res.Sequence.Records(),
		Failure:        res.Failure.Record(),
		OriginalLength: len(seq),
		ShrinkTrials:   res.Trials,
		Exhausted:      res.Exhausted,
		CreatedAt:      time.Now().UTC(),
	}
	e.logger.Info("failure minimized", "id", rep.Counterexample.ID, "from", len(seq), "to", len(res.Sequence), "trials", res.Trials)
	return rep, nil
}
