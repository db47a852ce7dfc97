// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package netlog carries per-request diagnostic logs to the process's
// log sink.
//
// Each request execution captures its trace lines and, if enabled, its
// response bytes into one buffer. When the execution ends the buffer
// goes through a Transform, which may rewrite it in place, and then to
// a Sink. Sink errors never fail a request.
//
// NewLogger builds the zap loggers used throughout httpcore.
package netlog
