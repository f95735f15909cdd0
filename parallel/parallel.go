// Package parallel provides the collective operations used by parallel
// writers. A Communicator connects the ranks of a process group.
package parallel

import (
	"sync"

	"github.com/robert-malhotra/go-gridformat/field"
)

// Communicator is a process group with collective operations. Every rank must
// take part in each collective call, in the same order.
type Communicator interface {
	Rank() int
	Size() int
	Barrier() error
	// Broadcast returns root's values on every rank.
	Broadcast(values []uint64, root int) ([]uint64, error)
	// Gather returns the values of all ranks, indexed by rank, on root and
	// nil elsewhere.
	Gather(values []uint64, root int) ([][]uint64, error)
}

// Serial is the single-rank communicator.
type Serial struct{}

func (Serial) Rank() int      { return 0 }
func (Serial) Size() int      { return 1 }
func (Serial) Barrier() error { return nil }

func (Serial) Broadcast(values []uint64, root int) ([]uint64, error) {
	if err := checkRoot(root, 1); err != nil {
		return nil, err
	}
	return append([]uint64(nil), values...), nil
}

func (Serial) Gather(values []uint64, root int) ([][]uint64, error) {
	if err := checkRoot(root, 1); err != nil {
		return nil, err
	}
	return [][]uint64{append([]uint64(nil), values...)}, nil
}

func checkRoot(root, size int) error {
	if root < 0 || root >= size {
		return field.Errorf(field.ErrValue, "root rank %d outside group of %d", root, size)
	}
	return nil
}

// NewLocalGroup returns the communicators of an in-process group of n ranks,
// meant to be driven from one goroutine each.
func NewLocalGroup(n int) []Communicator {
	g := &group{size: n, slots: make([][]uint64, n)}
	g.cond = sync.NewCond(&g.mu)
	comms := make([]Communicator, n)
	for r := range comms {
		comms[r] = &local{g: g, rank: r}
	}
	return comms
}

type group struct {
	size int

	mu         sync.Mutex
	cond       *sync.Cond
	arrived    int
	generation int
	slots      [][]uint64
	result     [][]uint64
}

// exchange deposits v and blocks until every rank has deposited. The result
// stays valid until the calling rank enters the next exchange.
func (g *group) exchange(rank int, v []uint64) [][]uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	gen := g.generation
	g.slots[rank] = append([]uint64(nil), v...)
	g.arrived++
	if g.arrived == g.size {
		g.result = g.slots
		g.slots = make([][]uint64, g.size)
		g.arrived = 0
		g.generation++
		g.cond.Broadcast()
	} else {
		for gen == g.generation {
			g.cond.Wait()
		}
	}
	return g.result
}

type local struct {
	g    *group
	rank int
}

func (c *local) Rank() int { return c.rank }
func (c *local) Size() int { return c.g.size }

func (c *local) Barrier() error {
	c.g.exchange(c.rank, nil)
	return nil
}

func (c *local) Broadcast(values []uint64, root int) ([]uint64, error) {
	if err := checkRoot(root, c.g.size); err != nil {
		return nil, err
	}
	all := c.g.exchange(c.rank, values)
	return append([]uint64(nil), all[root]...), nil
}

func (c *local) Gather(values []uint64, root int) ([][]uint64, error) {
	if err := checkRoot(root, c.g.size); err != nil {
		return nil, err
	}
	all := c.g.exchange(c.rank, values)
	if c.rank != root {
		return nil, nil
	}
	out := make([][]uint64, len(all))
	for r, v := range all {
		out[r] = append([]uint64(nil), v...)
	}
	return out, nil
}
