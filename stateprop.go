package stateprop

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/stateprop/internal/logging"
	"github.com/aretw0/stateprop/internal/random"
	"github.com/aretw0/stateprop/internal/runtime"
	"github.com/aretw0/stateprop/pkg/arbitrary"
	"github.com/aretw0/stateprop/pkg/config"
	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It runs check cycles of one model and reports the minimized failure.
type Engine[S, Y any] struct {
	name     string
	behavior domain.Behavior[S, Y]
	cfg      config.Config
	seed     int64
	factory  ports.SourceFactory
	store    ports.CounterexampleStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	generator *runtime.Generator[S, Y]
	executor  *runtime.Executor[S, Y]
}

type options struct {
	cfg     config.Config
	factory ports.SourceFactory
	store   ports.CounterexampleStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*options)

// WithConfig replaces the whole configuration. Later options still apply on top.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithSeed fixes the master seed. Zero picks a random seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.cfg.Seed = seed
	}
}

// WithCycles sets the number of cycles per check.
func WithCycles(n int) Option {
	return func(o *options) {
		o.cfg.Cycles = n
	}
}

// WithMaxCommands bounds the length of generated sequences.
func WithMaxCommands(n int) Option {
	return func(o *options) {
		o.cfg.MaxCommands = n
	}
}

// WithSelectionRetries sets how many consecutive precondition rejections
// generation tolerates.
func WithSelectionRetries(n int) Option {
	return func(o *options) {
		o.cfg.SelectionRetries = n
	}
}

// WithRunTimeout bounds every command run.
func WithRunTimeout(d time.Duration) Option {
	return func(o *options) {
		o.cfg.RunTimeout = d
	}
}

// WithReproduction sets the criterion under which a shrunk candidate still fails.
func WithReproduction(r domain.Reproduction) Option {
	return func(o *options) {
		o.cfg.Reproduction = string(r)
	}
}

// WithValueSource replaces the gopter-backed value source.
func WithValueSource(factory ports.SourceFactory) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// WithStore persists reported counterexamples.
func WithStore(store ports.CounterexampleStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates an engine checking behavior under the given model name.
func New[S, Y any](name string, behavior domain.Behavior[S, Y], opts ...Option) (*Engine[S, Y], error) {
	if behavior == nil {
		return nil, errors.New("behavior is required")
	}

	o := options{cfg: config.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	seed := o.cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return nil, err
		}
	}
	if o.factory == nil {
		o.factory = arbitrary.Factory
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if name != "" {
		o.logger = o.logger.With("model", name)
	}

	eng := &Engine[S, Y]{
		name:     name,
		behavior: behavior,
		cfg:      o.cfg,
		seed:     seed,
		factory:  o.factory,
		store:    o.store,
		hooks:    o.hooks,
		logger:   o.logger,
	}
	eng.generator = runtime.NewGenerator(behavior, eng.runtimeOptions()...)
	eng.executor = runtime.NewExecutor(behavior, eng.runtimeOptions()...)
	return eng, nil
}

// Name returns the model name.
func (e *Engine[S, Y]) Name() string {
	return e.name
}

// Seed returns the master seed, including a randomly picked one.
func (e *Engine[S, Y]) Seed() int64 {
	return e.seed
}

// Config returns the effective configuration.
func (e *Engine[S, Y]) Config() config.Config {
	return e.cfg
}

func (e *Engine[S, Y]) runtimeOptions() []runtime.Option {
	return []runtime.Option{
		runtime.WithLogger(e.logger),
		runtime.WithHooks(e.hooks),
		runtime.WithModel(e.name),
		runtime.WithMaxCommands(e.cfg.MaxCommands),
		runtime.WithSelectionRetries(e.cfg.SelectionRetries),
		runtime.WithRunTimeout(e.cfg.RunTimeout),
		runtime.WithSplitCount(e.cfg.SplitCount),
		runtime.WithMaxTrials(e.cfg.MaxShrinkTrials),
		runtime.WithReproduction(domain.Reproduction(e.cfg.Reproduction)),
		runtime.WithParallelism(e.cfg.Parallelism),
		runtime.WithValueShrinking(e.cfg.ValueShrinking),
	}
}

// Summary is the type-independent part of a check result.
type Summary struct {
	Model string `json:"model"`
	Seed  int64  `json:"seed"`
	// Cycles is the number of cycles that ran, the failing one included.
	Cycles int  `json:"cycles"`
	Passed bool `json:"passed"`
	// Counterexample and Diff are set when a cycle failed.
	Counterexample *domain.Counterexample `json:"counterexample,omitempty"`
	Diff           *domain.SequenceDiff   `json:"diff,omitempty"`
}

// Err returns the minimized failure as an error, or nil when the check passed.
func (s Summary) Err() error {
	if s.Passed || s.Counterexample == nil {
		return nil
	}
	f := s.Counterexample.Failure
	return fmt.Errorf("%s: counterexample %s: command %d (%s): %s failure: %s",
		s.Model, s.Counterexample.ID, f.Index, f.Command, f.Kind, f.Cause)
}

// Report is the result of a check with the live sequences.
type Report[S, Y any] struct {
	Summary
	// Original is the generated sequence that failed first.
	Original        domain.Sequence[S, Y]
	OriginalFailure *domain.Failure
	// Minimal is the shrunk sequence and Failure its confirming failure.
	Minimal domain.Sequence[S, Y]
	Failure *domain.Failure
}
