// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package handle

import (
	"sync"

	"github.com/gogama/httpcore/worker"
)

// A Pool maps workers to their persistent handles. Its zero value is an
// empty pool ready to use. A Pool is safe for concurrent use by
// multiple goroutines, but each handle it returns must only be used by
// the worker it was returned to.
type Pool struct {
	mu      sync.Mutex
	handles map[worker.ID]*Handle
}

var _ worker.ShutdownHook = (*Pool)(nil)

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Get returns the handle owned by the worker id, creating it on the
// first call. Repeated calls with the same id return the same handle
// until OnWorkerShutdown(id) is called.
//
// Get panics if id is empty.
func (p *Pool) Get(id worker.ID) (*Handle, error) {
	if id == "" {
		panic("httpcore/handle: empty worker ID")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.handles[id]; ok {
		return h, nil
	}
	h, err := New()
	if err != nil {
		return nil, err
	}
	if p.handles == nil {
		p.handles = make(map[worker.ID]*Handle)
	}
	p.handles[id] = h
	return h, nil
}

// OnWorkerShutdown removes the handle of the worker id from the pool
// and closes it. It does nothing if the worker has no handle.
func (p *Pool) OnWorkerShutdown(id worker.ID) {
	p.mu.Lock()
	h, ok := p.handles[id]
	delete(p.handles, id)
	p.mu.Unlock()

	if ok {
		h.Close()
	}
}

// Len returns the number of handles in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles)
}

// Close closes every handle in the pool and empties it.
func (p *Pool) Close() {
	p.mu.Lock()
	handles := p.handles
	p.handles = nil
	p.mu.Unlock()

	for _, h := range handles {
		h.Close()
	}
}
