package arbitrary

import (
	"errors"
	"fmt"
	"iter"
	"math/rand"

	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/ports"
	"github.com/leanovate/gopter"
)

// ErrUnsupportedDomain is returned when a domain is not an Arbitrary.
var ErrUnsupportedDomain = errors.New("unsupported domain")

// maxSieveRetries bounds resampling when a generator's sieve rejects values.
const maxSieveRetries = 100

// Arbitrary is a domain the Source knows how to sample and shrink.
type Arbitrary interface {
	domain.Domain
	Sample(params *gopter.GenParameters) (any, bool)
	Shrink(value any) iter.Seq[any]
}

// Source implements ports.ValueSource over gopter generators.
// It is not safe for concurrent sampling; shrinking is stateless.
type Source struct {
	params *gopter.GenParameters
}

var _ ports.ValueSource = (*Source)(nil)

// NewSource creates a Source whose samples are fully determined by seed.
func NewSource(seed int64) *Source {
	params := gopter.DefaultGenParameters()
	params.Rng = rand.New(rand.NewSource(seed))
	return &Source{params: params}
}

// Factory is the ports.SourceFactory for gopter-backed sources.
func Factory(seed int64) ports.ValueSource {
	return NewSource(seed)
}

// Sample draws a value from d, resampling when the sieve rejects it.
func (s *Source) Sample(d domain.Domain) (any, error) {
	a, ok := d.(Arbitrary)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDomain, d)
	}
	for i := 0; i < maxSieveRetries; i++ {
		if v, ok := a.Sample(s.params); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("domain %s: no value accepted after %d attempts", a, maxSieveRetries)
}

// ShrinkCandidates delegates to the domain's shrinker. Unknown domains do not shrink.
func (s *Source) ShrinkCandidates(d domain.Domain, value any) iter.Seq[any] {
	a, ok := d.(Arbitrary)
	if !ok {
		return func(func(any) bool) {}
	}
	return a.Shrink(value)
}
