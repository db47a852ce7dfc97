// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext(t *testing.T) {
	id, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, ID(""), id)

	id, ok = FromContext(WithID(context.Background(), ""))
	assert.False(t, ok)

	want := NewID()
	id, ok = FromContext(WithID(context.Background(), want))
	assert.True(t, ok)
	assert.Equal(t, want, id)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestGroup(t *testing.T) {
	t.Run("hooks", func(t *testing.T) {
		var mu sync.Mutex
		var shut []ID
		hook := ShutdownFunc(func(id ID) {
			mu.Lock()
			defer mu.Unlock()
			shut = append(shut, id)
		})
		g, _ := NewGroup(context.Background(), hook)
		seen := make(chan ID, 3)
		var started []ID
		for i := 0; i < 3; i++ {
			started = append(started, g.Go(func(ctx context.Context) error {
				id, ok := FromContext(ctx)
				require.True(t, ok)
				seen <- id
				return nil
			}))
		}
		require.NoError(t, g.Wait())
		close(seen)
		var got []ID
		for id := range seen {
			got = append(got, id)
		}
		assert.ElementsMatch(t, started, got)
		assert.ElementsMatch(t, started, shut)
	})
	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		var calls int
		var mu sync.Mutex
		g, ctx := NewGroup(context.Background(), ShutdownFunc(func(ID) {
			mu.Lock()
			calls++
			mu.Unlock()
		}))
		g.GoWithID("a", func(context.Context) error { return boom })
		g.GoWithID("b", func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
		assert.ErrorIs(t, g.Wait(), boom)
		assert.Error(t, ctx.Err())
		assert.Equal(t, 2, calls)
	})
	t.Run("nil hook", func(t *testing.T) {
		assert.PanicsWithValue(t, "httpcore/worker: nil shutdown hook", func() {
			NewGroup(context.Background(), nil)
		})
	})
}

func TestRun_Panic(t *testing.T) {
	var got ID
	assert.Panics(t, func() {
		_ = Run(context.Background(), "w1", func(context.Context) error {
			panic("fail")
		}, ShutdownFunc(func(id ID) { got = id }))
	})
	assert.Equal(t, ID("w1"), got)
}
