// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"time"

	"github.com/gogama/httpcore/failure"
	"github.com/gogama/httpcore/proxy"
)

// An Execution represents the state of one request execution, which is
// at most two attempts: the first attempt, and possibly one fallback
// attempt through the registry proxy.
//
// Execution is handed to event handlers, to the timeout policy and to
// the fallback decider.
type Execution struct {
	// Config is the configuration of the executing request. Handlers
	// must not modify it.
	Config *Config

	// Post indicates a POST request; otherwise the request is a GET.
	Post bool

	// Start is the start time of the execution, set just before the
	// first attempt.
	Start time.Time

	// End is the end time of the execution. It is zero until the
	// execution ends.
	End time.Time

	// Attempt is the zero-based index of the current attempt. It is 1
	// during and after a fallback attempt.
	Attempt int

	// AttemptTimeouts counts attempts which ended in a timeout.
	AttemptTimeouts int

	// Proxy is the effective proxy of the current attempt.
	Proxy proxy.Settings

	// UserProxy indicates the proxy was chosen explicitly by the
	// caller, so no fallback will be attempted.
	UserProxy bool

	// Result is the result of the current attempt. It is nil until an
	// attempt succeeds.
	Result *Result

	// Err is the error of the current attempt, if any.
	Err error

	data context.Context
}

// StatusCode returns the status code of the current attempt's result,
// or zero if there is none.
func (e *Execution) StatusCode() int {
	if e.Result == nil {
		return 0
	}

	return e.Result.StatusCode
}

// Fallback reports whether the current attempt is a fallback attempt.
func (e *Execution) Fallback() bool {
	return e.Attempt > 0
}

// Duration returns the duration of the execution. If the execution has
// not started, zero is returned. If it has started but not ended, the
// duration so far is returned.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started reports whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended reports whether the execution has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Kind returns the failure kind of the current error.
func (e *Execution) Kind() failure.Kind {
	return failure.Categorize(e.Err)
}

// Timeout reports whether the current attempt timed out.
func (e *Execution) Timeout() bool {
	return e.Kind() == failure.Timeout
}

// Canceled reports whether the current attempt was canceled.
func (e *Execution) Canceled() bool {
	return e.Kind() == failure.Canceled
}

// SetValue lets an event handler attach an arbitrary value to the
// execution, in the same manner as context.WithValue.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the value associated with key by SetValue, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
