// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure classifies errors from request execution into a small
// set of kinds, so callers can tell a timeout apart from a cancellation
// apart from a TLS failure without inspecting the diagnostic log.
//
// A non-2XX HTTP status is never a failure. Callers inspect the status
// code themselves.
package failure
