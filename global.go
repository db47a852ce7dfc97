// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

import (
	"fmt"
	"sync/atomic"

	"github.com/gogama/httpcore/failure"
)

// ErrNotInitialized is returned when a request executes before
// InitGlobal or after ShutdownGlobal.
var ErrNotInitialized = fmt.Errorf("%w: httpcore not initialized", failure.ErrConfig)

var initialized atomic.Bool

// InitGlobal marks the start of the process's use of httpcore. It must
// be called once before any request executes, and panics if called
// again without an intervening ShutdownGlobal.
//
// Go's crypto/tls is safe for concurrent use, so unlike engines built
// on older TLS libraries no locking callbacks need to be installed.
// InitGlobal only guards the lifecycle.
func InitGlobal() {
	if !initialized.CompareAndSwap(false, true) {
		panic("httpcore: InitGlobal called twice")
	}
}

// ShutdownGlobal marks the end of the process's use of httpcore. It is
// a no-op if InitGlobal was never called.
func ShutdownGlobal() {
	initialized.Store(false)
}

// Initialized reports whether InitGlobal has been called and
// ShutdownGlobal has not.
func Initialized() bool {
	return initialized.Load()
}
