// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/httpcore/failure"
	"github.com/gogama/httpcore/request"
)

// A Decider decides if a fallback attempt should be made.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as fallback deciders. It implements the Decider interface,
// and also provides the logical composition methods And and Or.
type DeciderFunc func(e *request.Execution) bool

// A SuccessRecorder reports whether a Source-resolved request has ever
// succeeded. *proxy.FallbackState is a SuccessRecorder.
type SuccessRecorder interface {
	Succeeded() bool
}

// Recoverable is a decider that indicates a fallback if the current
// error might be cured by a different proxy. Cancellation and caller
// misconfiguration are never recoverable.
var Recoverable DeciderFunc = recoverable

// OncePerRequest falls back once on every recoverable failure.
var OncePerRequest = Times(1).And(Recoverable)

// Never is a decider that never falls back.
var Never DeciderFunc = Times(0)

// DefaultDecider returns the default decider: fall back once on a
// recoverable failure, but only while no Source-resolved request in
// the process has succeeded. Once any request succeeds the fallback is
// never used again, so in practice only the process's first
// auto-proxy requests can fall back.
func DefaultDecider(s SuccessRecorder) DeciderFunc {
	if s == nil {
		panic("httpcore/retry: nil success recorder")
	}
	return Times(1).And(Recoverable).And(UntilFirstSuccess(s))
}

// Decide returns true if a fallback attempt should be made.
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two deciders into a new decider which returns true if
// both sub-deciders return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two deciders into a new decider which returns true if
// either of the two sub-deciders returns true, but false if they both
// return false.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Times constructs a decider which allows up to n fallback attempts.
// The returned decider returns true while e.Attempt is less than n.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before constructs a decider allowing a fallback only until a certain
// amount of time has elapsed since the execution started.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// Kind constructs a decider which returns true if the current error is
// of one of the given kinds.
func Kind(kinds ...failure.Kind) DeciderFunc {
	ks := make([]failure.Kind, len(kinds))
	copy(ks, kinds)
	return func(e *request.Execution) bool {
		k := e.Kind()
		for _, x := range ks {
			if k == x {
				return true
			}
		}
		return false
	}
}

// UntilFirstSuccess constructs a decider which returns true while s
// reports no success.
func UntilFirstSuccess(s SuccessRecorder) DeciderFunc {
	return func(_ *request.Execution) bool {
		return !s.Succeeded()
	}
}

func recoverable(e *request.Execution) bool {
	switch e.Kind() {
	case failure.None, failure.Config, failure.Canceled:
		return false
	default:
		return true
	}
}
