package runtime

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/ports"
)

// Result is the minimized failing case produced by a Shrinker.
type Result[S, Y any] struct {
	Sequence domain.Sequence[S, Y]
	// Failure comes from the last executor run that confirmed Sequence.
	Failure *domain.Failure
	// Trials counts oracle invocations across all phases.
	Trials int
	// Exhausted is set when the trial budget ran out before a fixed point.
	Exhausted bool
}

// Shrinker searches for a smaller sequence, then smaller values, that still
// reproduce a failure. The Executor is its only oracle.
type Shrinker[S, Y any] struct {
	exec *Executor[S, Y]
	src  ports.ValueSource
	cfg  settings
}

// NewShrinker creates a shrinker. src may be nil, which disables value shrinking.
func NewShrinker[S, Y any](exec *Executor[S, Y], src ports.ValueSource, opts ...Option) *Shrinker[S, Y] {
	return &Shrinker[S, Y]{exec: exec, src: src, cfg: newSettings(opts)}
}

// Shrink minimizes seq, which failed with failure. Candidates are only ever
// obtained by removing steps or replacing argument values; steps are never
// reordered. The returned error is non-nil only when ctx is done.
func (s *Shrinker[S, Y]) Shrink(ctx context.Context, seq domain.Sequence[S, Y], failure *domain.Failure) (*Result[S, Y], error) {
	r := &shrinkRun[S, Y]{
		Shrinker: s,
		original: failure,
		best:     seq.Clone(),
		failure:  failure,
	}

	phases := []shrinkStage{
		{domain.PhaseSplit, r.split},
		{domain.PhaseMinimize, r.minimize},
	}
	if s.cfg.valueShrinking && s.src != nil {
		phases = append(phases, shrinkStage{domain.PhaseValues, r.shrinkValues})
	}

	for _, p := range phases {
		if r.exhausted {
			break
		}
		before := len(r.best)
		if err := p.fn(ctx); err != nil {
			return nil, fmt.Errorf("shrink %s phase: %w", p.phase, err)
		}
		s.cfg.logger.Info("shrink phase done", "phase", p.phase, "before", before, "after", len(r.best), "trials", r.trials)
		s.cfg.hooks.EmitShrinkPhase(ctx, &domain.PhaseEvent{
			EventBase: domain.NewEventBase(domain.EventShrinkPhase, s.cfg.model),
			Phase:     p.phase,
			Before:    before,
			After:     len(r.best),
		})
	}

	if r.exhausted {
		s.cfg.logger.Warn("shrink budget exhausted", "trials", r.trials, "length", len(r.best))
	}
	return &Result[S, Y]{
		Sequence:  r.best,
		Failure:   r.failure,
		Trials:    r.trials,
		Exhausted: r.exhausted,
	}, nil
}

type shrinkStage struct {
	phase domain.ShrinkPhase
	fn    func(context.Context) error
}

type verdict struct {
	failure *domain.Failure
	ok      bool
}

// shrinkRun holds the search state of one Shrink call.
type shrinkRun[S, Y any] struct {
	*Shrinker[S, Y]
	original *domain.Failure

	best    domain.Sequence[S, Y]
	failure *domain.Failure

	mu        sync.Mutex
	trials    int
	exhausted bool
}

// try executes one candidate. It reports the observed failure and whether it
// reproduces the original. Setup errors count as not reproducing.
func (r *shrinkRun[S, Y]) try(ctx context.Context, c domain.ShrinkCandidate[S, Y]) (*domain.Failure, bool, error) {
	r.mu.Lock()
	if r.trials >= r.cfg.maxTrials {
		r.exhausted = true
		r.mu.Unlock()
		return nil, false, nil
	}
	r.trials++
	trial := r.trials
	r.mu.Unlock()

	out, err := r.exec.Execute(ctx, c.Sequence)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		r.cfg.logger.Debug("shrink candidate could not be set up", "phase", c.Phase, "note", c.Note, "error", err)
	}
	ok := err == nil && r.cfg.reproduction.Reproduces(r.original, out.Failure)

	r.cfg.logger.Debug("shrink trial", "phase", c.Phase, "trial", trial, "length", len(c.Sequence), "note", c.Note, "accepted", ok)
	r.cfg.hooks.EmitShrinkTrial(ctx, &domain.ShrinkEvent{
		EventBase: domain.NewEventBase(domain.EventShrinkTrial, r.cfg.model),
		Phase:     c.Phase,
		Trial:     trial,
		Length:    len(c.Sequence),
		Note:      c.Note,
		Accepted:  ok,
	})
	return out.Failure, ok, nil
}

// attempt tries a candidate and adopts it when it reproduces.
func (r *shrinkRun[S, Y]) attempt(ctx context.Context, c domain.ShrinkCandidate[S, Y]) (bool, error) {
	failure, ok, err := r.try(ctx, c)
	if err != nil || !ok {
		return false, err
	}
	r.best = c.Sequence
	r.failure = failure
	return true, nil
}

// split tests contiguous parts of the sequence on their own, possibly in
// parallel, and keeps the smallest reproducing part. Ties go to the earliest.
func (r *shrinkRun[S, Y]) split(ctx context.Context) error {
	if len(r.best) <= 1 || r.cfg.splitCount <= 1 {
		return nil
	}
	parts := r.best.Split(r.cfg.splitCount)
	if len(parts) <= 1 {
		return nil
	}

	verdicts := make([]verdict, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.parallelism)
	for i, part := range parts {
		g.Go(func() error {
			failure, ok, err := r.try(gctx, domain.ShrinkCandidate[S, Y]{
				Phase:    domain.PhaseSplit,
				Sequence: part,
				Note:     fmt.Sprintf("part %d/%d", i+1, len(parts)),
			})
			if err != nil {
				return err
			}
			verdicts[i] = verdict{failure: failure, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	chosen := -1
	for i, v := range verdicts {
		if v.ok && (chosen < 0 || len(parts[i]) < len(parts[chosen])) {
			chosen = i
		}
	}
	if chosen >= 0 {
		r.best = parts[chosen]
		r.failure = verdicts[chosen].failure
	}
	return nil
}

// minimize removes the tail after the failing step, then contiguous chunks
// of halving size down to single steps, until a full pass accepts nothing.
// The sequence never becomes empty.
func (r *shrinkRun[S, Y]) minimize(ctx context.Context) error {
	for !r.exhausted {
		changed := false

		if r.failure != nil {
			if keep := r.failure.Index + 1; keep < len(r.best) {
				ok, err := r.attempt(ctx, domain.ShrinkCandidate[S, Y]{
					Phase:    domain.PhaseMinimize,
					Sequence: r.best.Sub(0, keep),
					Note:     fmt.Sprintf("drop tail %d..%d", keep, len(r.best)-1),
				})
				if err != nil {
					return err
				}
				changed = changed || ok
			}
		}

		for size := len(r.best) / 2; size >= 1 && !r.exhausted; size /= 2 {
			for i := 0; i < len(r.best) && !r.exhausted; {
				candidate := r.best.Remove(i, size)
				if len(candidate) == 0 {
					break
				}
				ok, err := r.attempt(ctx, domain.ShrinkCandidate[S, Y]{
					Phase:    domain.PhaseMinimize,
					Sequence: candidate,
					Note:     fmt.Sprintf("drop %d..%d", i, min(i+size, len(r.best))-1),
				})
				if err != nil {
					return err
				}
				if ok {
					changed = true
					continue
				}
				i += size
			}
		}

		if !changed {
			return nil
		}
	}
	return nil
}

// shrinkValues replaces argument values one at a time with candidates from
// the value source, restarting from each accepted value, until a full pass
// changes nothing. Length and command identity are preserved.
func (r *shrinkRun[S, Y]) shrinkValues(ctx context.Context) error {
	for !r.exhausted {
		changed := false
		for i := 0; i < len(r.best) && !r.exhausted; i++ {
			domains := domain.ParametersOf(r.best[i].Command)
			for a := 0; a < len(r.best[i].Args) && a < len(domains); a++ {
				ok, err := r.shrinkValue(ctx, i, a, domains[a])
				if err != nil {
					return err
				}
				changed = changed || ok
			}
		}
		if !changed {
			return nil
		}
	}
	return nil
}

func (r *shrinkRun[S, Y]) shrinkValue(ctx context.Context, i, a int, d domain.Domain) (bool, error) {
	changed := false
	for !r.exhausted {
		current := r.best[i].Args[a]
		accepted := false
		for candidate := range r.src.ShrinkCandidates(d, current) {
			if r.exhausted {
				break
			}
			ok, err := r.attempt(ctx, domain.ShrinkCandidate[S, Y]{
				Phase:    domain.PhaseValues,
				Sequence: r.best.WithArg(i, a, candidate),
				Note:     fmt.Sprintf("%s arg %d: %s -> %s", r.best[i].Name(), a, domain.FormatValue(current), domain.FormatValue(candidate)),
			})
			if err != nil {
				return changed, err
			}
			if ok {
				accepted = true
				break
			}
		}
		if !accepted {
			return changed, nil
		}
		changed = true
	}
	return changed, nil
}
