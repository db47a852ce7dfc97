// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether a failed attempt resolved through an
// automatic proxy should fall back once to the registry proxy.
//
// The request entity never makes more than one fallback attempt, and
// never falls back when the caller chose the proxy explicitly. Within
// those bounds a Decider has the final word. Deciders compose:
//
//	decider := retry.Times(1).
//	               And(retry.Recoverable).
//	               And(retry.Before(5 * time.Second))
//
// DefaultDecider falls back only until the first Source-resolved
// request in the process succeeds. OncePerRequest falls back on every
// recoverable failure.
package retry
