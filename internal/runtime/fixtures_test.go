package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aretw0/stateprop/pkg/domain"
)

// counter is a system with an off-by-one when the count reaches bugAt.
type counter struct {
	mu    sync.Mutex
	count int
	bugAt int
}

func (c *counter) Increment() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if c.count == c.bugAt {
		return c.count + 1
	}
	return c.count
}

func (c *counter) Get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

type counterCmd = domain.Command[int, *counter]

func incCommand() counterCmd {
	return &domain.CommandFuncs[int, *counter]{
		Label: "inc",
		RunFn: func(_ context.Context, sys *counter, _ domain.Args) (any, error) {
			return sys.Increment(), nil
		},
		PostconditionFn: func(state int, _ domain.Args, result any) bool { return result == state+1 },
		NextStateFn:     func(state int, _ domain.Args) int { return state + 1 },
	}
}

func getCommand() counterCmd {
	return &domain.CommandFuncs[int, *counter]{
		Label: "get",
		RunFn: func(_ context.Context, sys *counter, _ domain.Args) (any, error) {
			return sys.Get(), nil
		},
		PostconditionFn: func(state int, _ domain.Args, result any) bool { return result == state },
	}
}

func counterBehavior(bugAt int, cmds ...counterCmd) *domain.BehaviorFuncs[int, *counter] {
	if len(cmds) == 0 {
		cmds = []counterCmd{incCommand(), getCommand()}
	}
	return &domain.BehaviorFuncs[int, *counter]{
		InitializeStateFn:  func() (int, error) { return 0, nil },
		GenerateCommandsFn: func(int) []counterCmd { return cmds },
		CreateSystemFn: func(context.Context, int) (*counter, error) {
			return &counter{bugAt: bugAt}, nil
		},
	}
}

// lifecycle tracks system teardown through testify's mock.
type lifecycle struct {
	mock.Mock
}

func (l *lifecycle) Destroy(_ context.Context, sys *flags) error {
	args := l.Called(sys)
	return args.Error(0)
}

// flags is a system recording which named commands ran.
type flags struct {
	mu  sync.Mutex
	set map[string]bool
}

func (f *flags) mark(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set[name] = true
}

func (f *flags) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set[name]
}

type flagCmd = domain.Command[int, *flags]

var errBoom = errors.New("boom")

// named returns a command that marks itself on the system.
func named(name string) *domain.CommandFuncs[int, *flags] {
	return &domain.CommandFuncs[int, *flags]{
		Label: name,
		RunFn: func(_ context.Context, sys *flags, _ domain.Args) (any, error) {
			sys.mark(name)
			return nil, nil
		},
		NextStateFn: func(state int, _ domain.Args) int { return state + 1 },
	}
}

// failing returns a command whose run fails when cond holds on the system.
func failing(name string, cond func(*flags) bool) *domain.CommandFuncs[int, *flags] {
	cmd := named(name)
	cmd.RunFn = func(_ context.Context, sys *flags, _ domain.Args) (any, error) {
		if cond(sys) {
			return nil, errBoom
		}
		sys.mark(name)
		return nil, nil
	}
	return cmd
}

func flagBehavior(destroy func(context.Context, *flags) error) *domain.BehaviorFuncs[int, *flags] {
	return &domain.BehaviorFuncs[int, *flags]{
		InitializeStateFn: func() (int, error) { return 0, nil },
		CreateSystemFn: func(context.Context, int) (*flags, error) {
			return &flags{set: map[string]bool{}}, nil
		},
		DestroyFn: destroy,
	}
}

func sequenceOf[S, Y any](cmds ...domain.Command[S, Y]) domain.Sequence[S, Y] {
	seq := make(domain.Sequence[S, Y], len(cmds))
	for i, c := range cmds {
		seq[i] = domain.Step[S, Y]{Command: c, Origin: i}
	}
	return seq
}

// intDomain is a bounded non-negative integer domain for the stub source.
type intDomain struct {
	max int
}

func (d intDomain) String() string { return fmt.Sprintf("int[0,%d]", d.max) }

// stubSource samples from a fixed cycle of values and shrinks integers
// through 0, v/2 and v-1.
type stubSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

func (s *stubSource) Sample(d domain.Domain) (any, error) {
	if _, ok := d.(intDomain); !ok {
		return nil, fmt.Errorf("unsupported domain %s", d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0, nil
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v, nil
}

func (s *stubSource) ShrinkCandidates(_ domain.Domain, value any) iter.Seq[any] {
	return func(yield func(any) bool) {
		v, ok := value.(int)
		if !ok || v <= 0 {
			return
		}
		seen := map[int]bool{}
		for _, c := range []int{0, v / 2, v - 1} {
			if c >= v || seen[c] {
				continue
			}
			seen[c] = true
			if !yield(c) {
				return
			}
		}
	}
}

// cyclicSource never converges: every value has a "smaller" candidate.
type cyclicSource struct{}

func (cyclicSource) Sample(domain.Domain) (any, error) { return 0, nil }

func (cyclicSource) ShrinkCandidates(_ domain.Domain, value any) iter.Seq[any] {
	return func(yield func(any) bool) {
		yield((value.(int) + 1) % 3)
	}
}

// accumulator sums the values added to it.
type accumulator struct {
	total int
}

const accumulatorLimit = 100

type accCmd = domain.Command[int, *accumulator]

// addCommand fails its postcondition once the running total reaches the limit.
func addCommand(max int) *domain.CommandFuncs[int, *accumulator] {
	return &domain.CommandFuncs[int, *accumulator]{
		Label:  "add",
		Params: []domain.Domain{intDomain{max: max}},
		RunFn: func(_ context.Context, sys *accumulator, args domain.Args) (any, error) {
			sys.total += domain.Arg[int](args, 0)
			return sys.total, nil
		},
		PostconditionFn: func(_ int, _ domain.Args, result any) bool {
			return result.(int) < accumulatorLimit
		},
		NextStateFn: func(state int, args domain.Args) int { return state + domain.Arg[int](args, 0) },
	}
}

func nopCommand() *domain.CommandFuncs[int, *accumulator] {
	return &domain.CommandFuncs[int, *accumulator]{Label: "nop"}
}

func accumulatorBehavior(cmds ...accCmd) *domain.BehaviorFuncs[int, *accumulator] {
	return &domain.BehaviorFuncs[int, *accumulator]{
		InitializeStateFn:  func() (int, error) { return 0, nil },
		GenerateCommandsFn: func(int) []accCmd { return cmds },
		CreateSystemFn: func(context.Context, int) (*accumulator, error) {
			return &accumulator{}, nil
		},
	}
}

// sleeper blocks in run for d, ignoring its context.
func sleeper(d time.Duration) *domain.CommandFuncs[int, *flags] {
	cmd := named("sleep")
	cmd.RunFn = func(context.Context, *flags, domain.Args) (any, error) {
		time.Sleep(d)
		return nil, nil
	}
	return cmd
}
