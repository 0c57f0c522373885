package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/stateprop/internal/logging"
	"github.com/aretw0/stateprop/pkg/domain"
)

// Defaults applied when an option is not given.
const (
	DefaultMaxCommands      = 50
	DefaultSelectionRetries = 100
	DefaultSplitCount       = 3
	DefaultMaxTrials        = 2000
	DefaultParallelism      = 1
)

type settings struct {
	logger           *slog.Logger
	hooks            domain.LifecycleHooks
	model            string
	maxCommands      int
	selectionRetries int
	runTimeout       time.Duration
	splitCount       int
	maxTrials        int
	reproduction     domain.Reproduction
	parallelism      int
	valueShrinking   bool
}

// Option configures a Generator, Executor or Shrinker.
type Option func(*settings)

func newSettings(opts []Option) settings {
	s := settings{
		logger:           logging.NewNop(),
		maxCommands:      DefaultMaxCommands,
		selectionRetries: DefaultSelectionRetries,
		splitCount:       DefaultSplitCount,
		maxTrials:        DefaultMaxTrials,
		reproduction:     domain.ReproduceAny,
		parallelism:      DefaultParallelism,
		valueShrinking:   true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks sets the lifecycle hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithModel sets the model name stamped on events.
func WithModel(name string) Option {
	return func(s *settings) {
		s.model = name
	}
}

// WithMaxCommands caps the length of generated sequences.
func WithMaxCommands(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxCommands = n
		}
	}
}

// WithSelectionRetries sets how many consecutive precondition rejections
// the generator tolerates before giving up.
func WithSelectionRetries(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.selectionRetries = n
		}
	}
}

// WithRunTimeout bounds each command run. Zero disables the timeout.
func WithRunTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.runTimeout = d
		}
	}
}

// WithSplitCount sets the number of partial sequences tried in the split phase.
func WithSplitCount(k int) Option {
	return func(s *settings) {
		if k > 0 {
			s.splitCount = k
		}
	}
}

// WithMaxTrials caps the oracle invocations of one shrink.
func WithMaxTrials(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxTrials = n
		}
	}
}

// WithReproduction sets the reproduction criterion used while shrinking.
func WithReproduction(r domain.Reproduction) Option {
	return func(s *settings) {
		if r.Valid() {
			s.reproduction = r
		}
	}
}

// WithParallelism sets how many split-phase trials may run concurrently.
func WithParallelism(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithValueShrinking enables or disables the value phase.
func WithValueShrinking(enabled bool) Option {
	return func(s *settings) {
		s.valueShrinking = enabled
	}
}

// initialize creates and validates a fresh model.
func initialize[S, Y any](b domain.Behavior[S, Y]) (S, error) {
	state, err := b.InitializeState()
	if err != nil {
		return state, &domain.SetupError{Stage: "initialize state", Err: err}
	}
	if !b.InitializePrecondition(state) {
		return state, &domain.SetupError{Stage: "initial precondition", Err: domain.ErrInitialPrecondition}
	}
	return state, nil
}
