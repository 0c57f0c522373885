// Package registry holds the weighted command pools the generator draws from.
package registry

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/stateprop/pkg/domain"
)

type entry[S, Y any] struct {
	cmd    domain.Command[S, Y]
	weight int
}

// Pool is a weighted list of commands. Commands with a non-positive weight
// are never picked. Entries are kept by position, so commands sharing a name
// stay distinct.
//
// A Pool is built per generation and is not safe for concurrent use.
type Pool[S, Y any] struct {
	entries []entry[S, Y]
	byName  map[string][]int
	total   int
}

// NewPool builds a pool from cmds using each command's declared weight.
func NewPool[S, Y any](cmds []domain.Command[S, Y]) *Pool[S, Y] {
	p := &Pool[S, Y]{byName: make(map[string][]int)}
	for _, c := range cmds {
		p.Add(c, domain.WeightOf(c))
	}
	return p
}

// Add appends cmd with the given weight.
func (p *Pool[S, Y]) Add(cmd domain.Command[S, Y], weight int) {
	if cmd == nil || weight <= 0 {
		return
	}
	p.byName[cmd.Name()] = append(p.byName[cmd.Name()], len(p.entries))
	p.entries = append(p.entries, entry[S, Y]{cmd: cmd, weight: weight})
	p.total += weight
}

// Len returns the number of pickable commands.
func (p *Pool[S, Y]) Len() int {
	return len(p.entries)
}

// Pick draws a command with probability proportional to its weight.
func (p *Pool[S, Y]) Pick(rng *rand.Rand) (domain.Command[S, Y], error) {
	if p.total == 0 {
		return nil, domain.ErrEmptyCommandPool
	}
	n := rng.Intn(p.total)
	for _, e := range p.entries {
		if n < e.weight {
			return e.cmd, nil
		}
		n -= e.weight
	}
	return p.entries[len(p.entries)-1].cmd, nil
}

// Lookup returns every command registered under name, in insertion order.
func (p *Pool[S, Y]) Lookup(name string) ([]domain.Command[S, Y], error) {
	idx, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("command not found: %s", name)
	}
	out := make([]domain.Command[S, Y], len(idx))
	for i, j := range idx {
		out[i] = p.entries[j].cmd
	}
	return out, nil
}
