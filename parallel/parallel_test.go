package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func run(comms []Communicator, fn func(c Communicator) error) error {
	var g errgroup.Group
	for _, c := range comms {
		c := c
		g.Go(func() error { return fn(c) })
	}
	return g.Wait()
}

func TestSerial(t *testing.T) {
	var c Communicator = Serial{}
	assert.Equal(t, 0, c.Rank())
	assert.Equal(t, 1, c.Size())
	require.NoError(t, c.Barrier())

	v, err := c.Broadcast([]uint64{4, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 2}, v)

	all, err := c.Gather([]uint64{7}, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]uint64{{7}}, all)

	_, err = c.Gather(nil, 1)
	assert.ErrorIs(t, err, field.ErrValue)
}

func TestLocalGroupGatherBroadcast(t *testing.T) {
	const n = 4
	comms := NewLocalGroup(n)
	var gathered [][]uint64

	err := run(comms, func(c Communicator) error {
		for round := 0; round < 3; round++ {
			all, err := c.Gather([]uint64{uint64(c.Rank()), uint64(round)}, 0)
			if err != nil {
				return err
			}
			if c.Rank() == 0 {
				gathered = all
			} else if all != nil {
				t.Errorf("rank %d received gathered values", c.Rank())
			}
			v, err := c.Broadcast([]uint64{uint64(100*c.Rank() + round)}, 2)
			if err != nil {
				return err
			}
			if v[0] != uint64(200+round) {
				t.Errorf("rank %d round %d: broadcast %v", c.Rank(), round, v)
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, gathered, n)
	for r, v := range gathered {
		assert.Equal(t, []uint64{uint64(r), 2}, v)
	}
}

func TestLocalGroupBarrier(t *testing.T) {
	comms := NewLocalGroup(3)
	var before atomic.Int32
	err := run(comms, func(c Communicator) error {
		before.Add(1)
		if err := c.Barrier(); err != nil {
			return err
		}
		if got := before.Load(); got != 3 {
			t.Errorf("rank %d passed the barrier with %d arrivals", c.Rank(), got)
		}
		return nil
	})
	require.NoError(t, err)
}
