// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package worker gives goroutines an explicit identity and notifies
// interested parties when a worker exits.
//
// Goroutines have no identity of their own, so resources which belong to
// one worker (such as a persistent connection handle) are keyed by a
// worker ID carried in a context.Context. A Group runs each worker on its
// own goroutine and, when the worker function returns, invokes every
// registered ShutdownHook with the worker's ID.
//
//	pool := handle.NewPool()
//	g, ctx := worker.NewGroup(context.Background(), pool)
//	for i := 0; i < 4; i++ {
//		g.Go(func(ctx context.Context) error {
//			req := client.NewRequest(proxy.Settings{})
//			req.SetKeepAlive()
//			...
//			return req.Get(ctx)
//		})
//	}
//	err := g.Wait()
package worker
