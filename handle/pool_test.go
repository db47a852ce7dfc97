// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package handle

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/gogama/httpcore/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Get(t *testing.T) {
	var p Pool

	a1, err := p.Get("a")
	require.NoError(t, err)
	a2, err := p.Get("a")
	require.NoError(t, err)
	b, err := p.Get("b")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, p.Len())
	assert.PanicsWithValue(t, "httpcore/handle: empty worker ID", func() { _, _ = p.Get("") })
}

func TestPool_OnWorkerShutdown(t *testing.T) {
	p := NewPool()
	old, err := p.Get("w")
	require.NoError(t, err)

	p.OnWorkerShutdown("w")
	assert.True(t, old.Closed())
	assert.Equal(t, 0, p.Len())

	assert.NotPanics(t, func() { p.OnWorkerShutdown("w") })
	assert.NotPanics(t, func() { p.OnWorkerShutdown("never") })

	recycled, err := p.Get("w")
	require.NoError(t, err)
	assert.NotSame(t, old, recycled)
	assert.NotEqual(t, old.ID(), recycled.ID())
	assert.False(t, recycled.Closed())
}

func TestPool_Close(t *testing.T) {
	p := NewPool()
	var hs []*Handle
	for i := 0; i < 3; i++ {
		h, err := p.Get(worker.ID(fmt.Sprint(i)))
		require.NoError(t, err)
		hs = append(hs, h)
	}

	p.Close()

	assert.Equal(t, 0, p.Len())
	for _, h := range hs {
		assert.True(t, h.Closed())
	}
}

func TestPool_Concurrent(t *testing.T) {
	const workers = 16
	const calls = 20

	p := NewPool()
	var mu sync.Mutex
	owners := make(map[uint64]worker.ID)
	var shutdowns []*Handle

	g, ctx := worker.NewGroup(context.Background(), worker.ShutdownFunc(func(id worker.ID) {
		p.mu.Lock()
		h := p.handles[id]
		p.mu.Unlock()
		mu.Lock()
		shutdowns = append(shutdowns, h)
		mu.Unlock()
	}), p)

	for i := 0; i < workers; i++ {
		g.Go(func(ctx context.Context) error {
			id, ok := worker.FromContext(ctx)
			if !ok {
				return fmt.Errorf("no worker ID")
			}
			first, err := p.Get(id)
			if err != nil {
				return err
			}
			for j := 0; j < calls; j++ {
				h, err := p.Get(id)
				if err != nil {
					return err
				}
				if h != first {
					return fmt.Errorf("worker %s got a different handle on call %d", id, j)
				}
			}
			mu.Lock()
			defer mu.Unlock()
			if other, ok := owners[first.ID()]; ok {
				return fmt.Errorf("handle %d shared by %s and %s", first.ID(), other, id)
			}
			owners[first.ID()] = id
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Len(t, owners, workers)
	assert.Len(t, shutdowns, workers)
	for _, h := range shutdowns {
		require.NotNil(t, h)
		assert.True(t, h.Closed())
	}
	assert.Equal(t, 0, p.Len())
	assert.Error(t, ctx.Err(), "group context is canceled once Wait returns")
}
