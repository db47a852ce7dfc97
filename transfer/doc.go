// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transfer binds one request execution to one connection
// handle.
//
// A Transfer is created per execution. It draws a persistent handle
// from a handle.Pool when keep-alive is requested, or creates a private
// handle which it closes in Close. The caller configures it with the
// Set methods, runs it with Execute and then reads ResponseCode,
// Response and Header.
//
// While the transfer runs, four adapters receive the stream: the body
// writer, the header writer, the progress reporter (which also polls
// the stop predicate) and the trace adapter feeding the diagnostic
// log. Whatever Execute returns, the diagnostic log ends with a
// "perform result" line and is handed to the log sink.
package transfer
