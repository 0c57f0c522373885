package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCycleStart  EventType = "cycle_start"
	EventCycleEnd    EventType = "cycle_end"
	EventCommand     EventType = "command"
	EventFailure     EventType = "failure"
	EventShrinkTrial EventType = "shrink_trial"
	EventShrinkPhase EventType = "shrink_phase"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Model     string    `json:"model"`
}

// NewEventBase stamps an event of the given type.
func NewEventBase(t EventType, model string) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t, Model: model}
}

// CycleEvent marks the start or end of a generation and execution cycle.
type CycleEvent struct {
	EventBase
	Cycle  int   `json:"cycle"`
	Seed   int64 `json:"seed"`
	Length int   `json:"length"`
	Passed bool  `json:"passed"`
}

// CommandEvent is emitted after each executed command, including failing ones.
type CommandEvent struct {
	EventBase
	Index    int           `json:"index"`
	Command  string        `json:"command"`
	Duration time.Duration `json:"duration"`
	Failure  *Failure      `json:"-"`
}

// FailureEvent is emitted once per check for the original, unshrunk failure.
type FailureEvent struct {
	EventBase
	Cycle   int      `json:"cycle"`
	Length  int      `json:"length"`
	Failure *Failure `json:"-"`
}

// ShrinkEvent is emitted after every oracle invocation of the shrinker.
type ShrinkEvent struct {
	EventBase
	Phase    ShrinkPhase `json:"phase"`
	Trial    int         `json:"trial"`
	Length   int         `json:"length"`
	Note     string      `json:"note,omitempty"`
	Accepted bool        `json:"accepted"`
}

// PhaseEvent summarizes one completed shrinking phase.
type PhaseEvent struct {
	EventBase
	Phase  ShrinkPhase `json:"phase"`
	Before int         `json:"before"`
	After  int         `json:"after"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped. When phase-one trials run in parallel the
// command and shrink callbacks may be invoked concurrently.
type LifecycleHooks struct {
	OnCycleStart  func(context.Context, *CycleEvent)
	OnCycleEnd    func(context.Context, *CycleEvent)
	OnCommand     func(context.Context, *CommandEvent)
	OnFailure     func(context.Context, *FailureEvent)
	OnShrinkTrial func(context.Context, *ShrinkEvent)
	OnShrinkPhase func(context.Context, *PhaseEvent)
}

func (h LifecycleHooks) EmitCycleStart(ctx context.Context, e *CycleEvent) {
	if h.OnCycleStart != nil {
		h.OnCycleStart(ctx, e)
	}
}

func (h LifecycleHooks) EmitCycleEnd(ctx context.Context, e *CycleEvent) {
	if h.OnCycleEnd != nil {
		h.OnCycleEnd(ctx, e)
	}
}

func (h LifecycleHooks) EmitCommand(ctx context.Context, e *CommandEvent) {
	if h.OnCommand != nil {
		h.OnCommand(ctx, e)
	}
}

func (h LifecycleHooks) EmitFailure(ctx context.Context, e *FailureEvent) {
	if h.OnFailure != nil {
		h.OnFailure(ctx, e)
	}
}

func (h LifecycleHooks) EmitShrinkTrial(ctx context.Context, e *ShrinkEvent) {
	if h.OnShrinkTrial != nil {
		h.OnShrinkTrial(ctx, e)
	}
}

func (h LifecycleHooks) EmitShrinkPhase(ctx context.Context, e *PhaseEvent) {
	if h.OnShrinkPhase != nil {
		h.OnShrinkPhase(ctx, e)
	}
}

// ComposeHooks merges several hook sets; callbacks run in argument order.
func ComposeHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCycleStart: func(ctx context.Context, e *CycleEvent) {
			for _, h := range sets {
				h.EmitCycleStart(ctx, e)
			}
		},
		OnCycleEnd: func(ctx context.Context, e *CycleEvent) {
			for _, h := range sets {
				h.EmitCycleEnd(ctx, e)
			}
		},
		OnCommand: func(ctx context.Context, e *CommandEvent) {
			for _, h := range sets {
				h.EmitCommand(ctx, e)
			}
		},
		OnFailure: func(ctx context.Context, e *FailureEvent) {
			for _, h := range sets {
				h.EmitFailure(ctx, e)
			}
		},
		OnShrinkTrial: func(ctx context.Context, e *ShrinkEvent) {
			for _, h := range sets {
				h.EmitShrinkTrial(ctx, e)
			}
		},
		OnShrinkPhase: func(ctx context.Context, e *PhaseEvent) {
			for _, h := range sets {
				h.EmitShrinkPhase(ctx, e)
			}
		},
	}
}
