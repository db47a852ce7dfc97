// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// request execution starts.
	//
	// When Request fires BeforeExecutionStart, the execution is
	// non-nil but the only fields that have been set are the request
	// configuration, the method and the user proxy flag.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// attempt, once the transfer is fully configured and just before it
	// executes.
	//
	// When Request fires BeforeAttempt, the execution's proxy field is
	// set to the proxy the attempt WILL use.
	BeforeAttempt
	// AfterAttemptTimeout identifies the event that occurs after an
	// attempt failed because the connect timeout or the total timeout
	// expired.
	//
	// When Request fires AfterAttemptTimeout, the execution's error
	// field is set to the timeout error, and its attempt timeout counter
	// has been incremented.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after an attempt is
	// concluded, regardless of whether it concluded successfully or not.
	//
	// When Request fires AfterAttempt, exactly one of the execution's
	// result and error fields is non-nil.
	//
	// Note that AfterAttempt runs before the fallback decider is
	// consulted.
	AfterAttempt
	// BeforeFallback identifies the event that occurs after a failed
	// attempt through an automatically resolved proxy, once the decision
	// to fall back to the registry proxy has been made.
	//
	// When Request fires BeforeFallback, the execution still describes
	// the failed attempt. The attempt counter is incremented after the
	// BeforeFallback handlers have run.
	BeforeFallback
	// AfterExecutionEnd identifies the event that occurs after the
	// request execution ends.
	//
	// When Request fires AfterExecutionEnd, the execution is in the
	// same state it was in after the final attempt (and last
	// AfterAttempt event) EXCEPT that the end time is set to the time
	// the execution ended.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel
	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"BeforeFallback",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// request execution, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttemptTimeout,
		AfterAttempt,
		BeforeFallback,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
