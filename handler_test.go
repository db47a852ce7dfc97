// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

import (
	"fmt"
	"testing"

	"github.com/gogama/httpcore/request"
	"github.com/stretchr/testify/assert"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var execs []*request.Execution
	h1 := &testHandler{seq: 1, evts: &evts, execs: &execs}
	h2 := &testHandler{seq: 2, evts: &evts, execs: &execs}
	h3 := &testHandler{seq: 3, evts: &evts, execs: &execs}
	g := &HandlerGroup{}
	t.Run("push", func(t *testing.T) {
		assert.PanicsWithValue(t, "httpcore: nil handler", func() { g.PushBack(BeforeExecutionStart, nil) })
		assert.PanicsWithValue(t, "httpcore: unknown event", func() { g.PushBack(Event(123), h1) })
		assert.PanicsWithValue(t, "httpcore: unknown event", func() { g.PushFront(Event(-1), h1) })
		g.PushBack(BeforeExecutionStart, h1)
		g.PushBack(BeforeExecutionStart, h2)
		g.PushFront(BeforeExecutionStart, h3)
		g.PushBack(AfterAttempt, h1)
		assert.Equal(t, 3, g.Len(BeforeExecutionStart))
		assert.Equal(t, 1, g.Len(AfterAttempt))
		assert.Equal(t, 0, g.Len(BeforeFallback))
		assert.Equal(t, 0, g.Len(Event(99)))
	})
	t.Run("run", func(t *testing.T) {
		e1 := &request.Execution{Attempt: 0}
		e2 := &request.Execution{Attempt: 1}
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(BeforeFallback, e1)
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(BeforeExecutionStart, e1)
		assert.Equal(t, []string{"3.BeforeExecutionStart", "1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*request.Execution{e1, e1, e1}, execs)
		evts = evts[:0]
		execs = execs[:0]
		g.run(AfterAttempt, e2)
		assert.Equal(t, []string{"1.AfterAttempt"}, evts)
		assert.Equal(t, []*request.Execution{e2}, execs)
	})
	t.Run("nil group", func(t *testing.T) {
		var nilGroup *HandlerGroup
		assert.NotPanics(t, func() { nilGroup.run(AfterAttempt, &request.Execution{}) })
		assert.Equal(t, 0, nilGroup.Len(AfterAttempt))
	})
}

type testHandler struct {
	seq   int
	evts  *[]string
	execs *[]*request.Execution
}

func (h *testHandler) Handle(evt Event, e *request.Execution) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.execs = append(*h.execs, e)
}

func TestHandlerFunc(t *testing.T) {
	var _evt Event
	var _e *request.Execution
	var f = func(evt Event, e *request.Execution) {
		_evt = evt
		_e = e
	}
	h := HandlerFunc(f)
	e := &request.Execution{}
	h.Handle(AfterAttemptTimeout, e)

	assert.Equal(t, AfterAttemptTimeout, _evt)
	assert.Same(t, e, _e)
}
