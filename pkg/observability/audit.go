package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stateprop/pkg/domain"
)

// NewAuditHooks logs every lifecycle event. Per-command and per-trial events
// go to Debug; cycle boundaries, failures and phase summaries to Info.
func NewAuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCycleStart: func(ctx context.Context, e *domain.CycleEvent) {
			logger.DebugContext(ctx, "cycle_start", "model", e.Model, "cycle", e.Cycle, "seed", e.Seed)
		},
		OnCycleEnd: func(ctx context.Context, e *domain.CycleEvent) {
			logger.InfoContext(ctx, "cycle_end", "model", e.Model, "cycle", e.Cycle, "length", e.Length, "passed", e.Passed)
		},
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			attrs := []any{"model", e.Model, "index", e.Index, "command", e.Command, "duration", e.Duration}
			if e.Failure != nil {
				attrs = append(attrs, "kind", e.Failure.Kind, "error", e.Failure.Cause)
			}
			logger.DebugContext(ctx, "command", attrs...)
		},
		OnFailure: func(ctx context.Context, e *domain.FailureEvent) {
			logger.InfoContext(ctx, "failure", "model", e.Model, "cycle", e.Cycle, "length", e.Length, "error", e.Failure)
		},
		OnShrinkTrial: func(ctx context.Context, e *domain.ShrinkEvent) {
			logger.DebugContext(ctx, "shrink_trial", "model", e.Model, "phase", e.Phase, "trial", e.Trial, "length", e.Length, "note", e.Note, "accepted", e.Accepted)
		},
		OnShrinkPhase: func(ctx context.Context, e *domain.PhaseEvent) {
			logger.InfoContext(ctx, "shrink_phase", "model", e.Model, "phase", e.Phase, "before", e.Before, "after", e.After)
		},
	}
}
