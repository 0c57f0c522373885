// Package arbitrary adapts gopter generators to the engine's value source port.
//
// A Gen is a domain.Domain: commands list Gens as their parameters, and a
// Source samples from them with a seeded gopter.GenParameters and proposes
// shrink candidates through the generator's gopter.Shrinker.
package arbitrary

import (
	"iter"
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// Gen is a named gopter generator together with its shrinker and sieve.
type Gen struct {
	label    string
	gen      gopter.Gen
	shrinker gopter.Shrinker
	sieve    func(any) bool
}

// FromGen wraps a gopter generator. The shrinker and sieve are taken from a
// probe sample, since gopter attaches both to each GenResult.
func FromGen(label string, g gopter.Gen) *Gen {
	a := &Gen{label: label, gen: g, shrinker: gopter.NoShrinker}
	if probe := g(gopter.DefaultGenParameters()); probe != nil {
		if probe.Shrinker != nil {
			a.shrinker = probe.Shrinker
		}
		if probe.Sieve != nil {
			a.sieve = probe.Sieve
		}
	}
	return a
}

// SuchThat returns a copy that only yields values accepted by pred, both
// when sampling and when shrinking.
func (g *Gen) SuchThat(pred func(any) bool) *Gen {
	prev := g.sieve
	return &Gen{
		label:    g.label,
		gen:      g.gen,
		shrinker: g.shrinker,
		sieve: func(v any) bool {
			if prev != nil && !prev(v) {
				return false
			}
			return pred(v)
		},
	}
}

// WithShrinker returns a copy using s for shrink candidates.
func (g *Gen) WithShrinker(s gopter.Shrinker) *Gen {
	out := *g
	out.shrinker = s
	return &out
}

func (g *Gen) String() string {
	return g.label
}

// Sample draws one value. ok is false when the generator's sieve rejected it.
func (g *Gen) Sample(params *gopter.GenParameters) (any, bool) {
	result := g.gen(params)
	if result == nil {
		return nil, false
	}
	v, ok := result.Retrieve()
	if ok && g.sieve != nil && !g.sieve(v) {
		return nil, false
	}
	return v, ok
}

// Shrink lists candidates for value. Candidates rejected by the sieve or
// equal to value are skipped. Each range restarts the gopter Shrink.
func (g *Gen) Shrink(value any) iter.Seq[any] {
	return func(yield func(any) bool) {
		next := g.shrinker(value)
		for {
			candidate, ok := next()
			if !ok {
				return
			}
			if g.sieve != nil && !g.sieve(candidate) {
				continue
			}
			if reflect.DeepEqual(candidate, value) {
				continue
			}
			if !yield(candidate) {
				return
			}
		}
	}
}

// Int draws any int, shrinking toward zero.
func Int() *Gen {
	return FromGen("int", gen.Int()).WithShrinker(gen.IntShrinker)
}

// IntRange draws an int in [min, max], shrinking toward zero within the range.
func IntRange(min, max int) *Gen {
	return FromGen("int", gen.IntRange(min, max)).WithShrinker(gen.IntShrinker).SuchThat(func(v any) bool {
		n, ok := v.(int)
		return ok && n >= min && n <= max
	})
}

// Bool draws true or false.
func Bool() *Gen {
	return FromGen("bool", gen.Bool())
}

// AlphaString draws strings of letters using gopter's string shrinker.
func AlphaString() *Gen {
	return FromGen("string", gen.AlphaString())
}

// OneOf draws one of the given constants. It does not shrink.
func OneOf(values ...any) *Gen {
	return FromGen("one-of", gen.OneConstOf(values...)).WithShrinker(gopter.NoShrinker)
}

// Const always yields v.
func Const(v any) *Gen {
	return FromGen("const", gen.Const(v)).WithShrinker(gopter.NoShrinker)
}
