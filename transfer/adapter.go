// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transfer

import (
	"bytes"

	"github.com/gogama/httpcore/failure"
)

// A StopFunc reports whether the transfer should be aborted. It is
// polled repeatedly while the transfer runs.
type StopFunc func() bool

// A ProgressFunc receives download progress: the expected total body
// size, the bytes received so far and the integer percentage.
type ProgressFunc func(total, now int64, percent int)

// A TraceKind classifies a trace event.
type TraceKind int

const (
	// TraceText is an informational line about the connection.
	TraceText TraceKind = iota
	// TraceHeaderOut is a block of request headers.
	TraceHeaderOut
	// TraceDataOut is request body data.
	TraceDataOut
	// TraceHeaderIn is a block of response headers.
	TraceHeaderIn
	// TraceDataIn is raw response body data.
	TraceDataIn
)

// DefaultTraceFilters are the prefixes of noisy TraceText lines which
// are left out of the diagnostic log.
var DefaultTraceFilters = []string{"schannel:", "STATE:"}

// writeBody is the body writer: each received chunk goes to the
// response buffer and, if logging is on, to the diagnostic log.
func (t *Transfer) writeBody(p []byte) {
	t.body.Write(p)
	if t.opts.Log {
		t.appendLog(p)
	}
}

// writeHeader is the header writer.
func (t *Transfer) writeHeader(p []byte) {
	t.header.Write(p)
}

// progress is the progress reporter. It returns failure.ErrCanceled if
// the stop predicate asks for the transfer to end, and nil otherwise.
func (t *Transfer) progress(total, now int64) error {
	if t.opts.Stop != nil && t.opts.Stop() {
		return failure.ErrCanceled
	}
	if total <= 1 || t.opts.Progress == nil {
		return nil
	}

	pct := int(now * 100 / total)
	if pct > 100 {
		pct = 100
	} else if pct < 0 {
		pct = 0
	}
	if pct == t.lastPct {
		return nil
	}
	t.lastPct = pct
	t.opts.Progress(total, now, pct)
	return nil
}

// trace is the trace adapter.
func (t *Transfer) trace(kind TraceKind, p []byte) {
	if !t.opts.Log {
		return
	}
	switch kind {
	case TraceText:
		for _, f := range t.filters {
			if len(f) < len(p) && bytes.HasPrefix(p, []byte(f)) {
				return
			}
		}
	case TraceDataIn:
		return
	}
	t.appendLog(p)
}

func (t *Transfer) appendLog(p []byte) {
	t.logMu.Lock()
	t.log.Write(p)
	t.logMu.Unlock()
}
