// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package handle provides reusable connection handles and a pool
// mapping each worker to its own persistent handle.
//
// A Handle bundles the connection state needed to talk HTTP: an
// http.Transport with its idle connection cache, TLS configuration and
// proxy dialer, plus a cookie jar. A Handle is owned by exactly one
// worker at a time and is not safe for concurrent use.
//
// A Pool hands each worker, identified by a worker.ID, at most one
// persistent Handle, creating it lazily. The Pool is a
// worker.ShutdownHook: when a worker exits, its handle is removed from
// the pool and closed.
package handle
