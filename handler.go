// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

import (
	"github.com/gogama/httpcore/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client.
//
// A HandlerGroup must be fully built before the Client using it starts
// executing requests. Running handlers from many goroutines at once is
// safe, but adding handlers concurrently with execution is not.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	g.chain(evt, h)
	g.handlers[evt] = append(g.handlers[evt], h)
}

// PushFront adds an event handler to the front of the event handler
// chain for a specific event type.
func (g *HandlerGroup) PushFront(evt Event, h Handler) {
	g.chain(evt, h)
	g.handlers[evt] = append([]Handler{h}, g.handlers[evt]...)
}

// Len returns the length of the handler chain for an event type.
func (g *HandlerGroup) Len(evt Event) int {
	i := int(evt)
	if g == nil || i < 0 || i >= len(g.handlers) {
		return 0
	}
	return len(g.handlers[i])
}

func (g *HandlerGroup) chain(evt Event, h Handler) {
	if h == nil {
		panic("httpcore: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("httpcore: unknown event")
	}
	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	if g == nil {
		return
	}
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, e)
		}
	}
}

// A Handler handles the occurrence of an event during a request
// execution.
//
// Handlers run synchronously on the goroutine executing the request, so
// a slow handler delays the request.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
