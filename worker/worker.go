// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package worker

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// An ID identifies one worker for the lifetime of that worker. The zero
// value identifies no worker.
type ID string

// NewID returns a new random worker ID.
func NewID() ID {
	return ID(uuid.NewString())
}

type ctxKey struct{}

// WithID returns a copy of ctx carrying the worker ID id.
func WithID(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the worker ID carried by ctx, if any.
func FromContext(ctx context.Context) (ID, bool) {
	id, ok := ctx.Value(ctxKey{}).(ID)
	return id, ok && id != ""
}

// A ShutdownHook is notified when a worker exits.
//
// OnWorkerShutdown is called on the exiting worker's goroutine, after
// the worker function has returned. Implementations must be safe for
// concurrent use, and must tolerate being called for a worker they never
// saw.
type ShutdownHook interface {
	OnWorkerShutdown(id ID)
}

// The ShutdownFunc type is an adapter to allow the use of ordinary
// functions as shutdown hooks.
type ShutdownFunc func(id ID)

// OnWorkerShutdown calls f(id).
func (f ShutdownFunc) OnWorkerShutdown(id ID) {
	f(id)
}

// A Group runs workers, each on its own goroutine with its own ID, and
// notifies its hooks as each worker exits.
//
// The first worker to return a non-nil error cancels the context handed
// to every other worker in the group.
type Group struct {
	g     *errgroup.Group
	ctx   context.Context
	hooks []ShutdownHook
}

// NewGroup returns a new Group and a derived context which is canceled
// when the first worker fails or when Wait returns.
func NewGroup(ctx context.Context, hooks ...ShutdownHook) (*Group, context.Context) {
	for _, h := range hooks {
		if h == nil {
			panic("httpcore/worker: nil shutdown hook")
		}
	}
	g, gctx := errgroup.WithContext(ctx)
	hs := make([]ShutdownHook, len(hooks))
	copy(hs, hooks)
	return &Group{g: g, ctx: gctx, hooks: hs}, gctx
}

// SetLimit limits the number of workers running at once. A negative
// value means no limit.
func (g *Group) SetLimit(n int) {
	g.g.SetLimit(n)
}

// Go starts fn as a new worker with a freshly generated ID.
func (g *Group) Go(fn func(ctx context.Context) error) ID {
	id := NewID()
	g.GoWithID(id, fn)
	return id
}

// GoWithID starts fn as a worker identified by id. Reusing the ID of a
// worker which has already exited is allowed; the hooks have already
// released anything the previous worker owned.
func (g *Group) GoWithID(id ID, fn func(ctx context.Context) error) {
	g.g.Go(func() error {
		return Run(g.ctx, id, fn, g.hooks...)
	})
}

// Wait blocks until every worker has exited and returns the first
// non-nil error, if any.
func (g *Group) Wait() error {
	return g.g.Wait()
}

// Run runs fn synchronously on the calling goroutine as the worker id,
// then notifies hooks. Hooks are notified even if fn panics.
func Run(ctx context.Context, id ID, fn func(ctx context.Context) error, hooks ...ShutdownHook) error {
	defer func() {
		for _, h := range hooks {
			h.OnWorkerShutdown(id)
		}
	}()
	return fn(WithID(ctx, id))
}
