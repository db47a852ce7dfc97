// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package proxy

import "sync/atomic"

// FallbackState records whether any request resolved through a Source
// has succeeded. The zero value is ready to use and reports no success.
//
// The flag only ever goes from false to true. Readers and writers are
// not otherwise synchronized, so two requests failing at the same time
// may both fall back before either records a success. That costs at
// most one extra fallback attempt.
type FallbackState struct {
	succeeded atomic.Bool
}

// Succeeded reports whether a Source-resolved request has succeeded.
func (s *FallbackState) Succeeded() bool {
	return s.succeeded.Load()
}

// MarkSucceeded records a Source-resolved success.
func (s *FallbackState) MarkSucceeded() {
	s.succeeded.Store(true)
}
