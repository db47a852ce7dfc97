// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/httpcore/request"
)

// A Pair holds the two independent timeouts of an attempt. A zero or
// negative value means no timeout of that kind.
type Pair struct {
	// Connect bounds connection establishment, including the TLS
	// handshake.
	Connect time.Duration
	// Total bounds the whole attempt, from connecting to reading the
	// last body byte.
	Total time.Duration
}

// A Policy defines a timeout policy which may be plugged into a request
// to direct how to set the timeouts for the first attempt, as well as
// for a fallback attempt.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeouts to set on the next attempt within
	// the execution.
	//
	// Parameter e contains the current state of the execution. When
	// the policy is consulted for a fallback attempt, e still describes
	// the first attempt: e.Err holds its error and e.AttemptTimeouts
	// already counts it if it timed out.
	Timeout(e *request.Execution) Pair
}

// DefaultPolicy is the default timeout policy. It sets a fixed connect
// timeout and total timeout of 15 seconds each.
var DefaultPolicy Policy = Fixed(request.DefaultConnectTimeout, request.DefaultTimeout)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(0, 0)

// Fixed constructs a timeout policy that uses the same values for every
// attempt.
func Fixed(connect, total time.Duration) Policy {
	return policy([]Pair{{Connect: connect, Total: total}})
}

// Adaptive constructs a timeout policy that varies the next timeouts if
// the previous attempt timed out.
//
// Parameter usual holds the timeouts the policy returns for an initial
// attempt and for any attempt where the immediately preceding attempt
// did not time out.
//
// Parameter after holds the timeouts the policy returns if the previous
// attempt timed out. If this was the first timeout of the execution,
// after[0] is returned; if the second, after[1], and so on. If more
// attempts have timed out within the execution than after has elements,
// then the last element of after is returned.
func Adaptive(usual Pair, after ...Pair) Policy {
	p := make([]Pair, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []Pair

func (p policy) Timeout(e *request.Execution) Pair {
	if !e.Timeout() {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}
