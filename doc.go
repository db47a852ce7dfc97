// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpcore provides a concurrency-safe HTTP client core: GET,
POST and multipart requests with per-worker persistent connections,
proxy configuration with a one-time automatic fallback, conditional and
range requests, cooperative cancellation, download progress and
per-request diagnostic logs.

Call InitGlobal once at process start and ShutdownGlobal at exit. Then
build a Client, usually from environment configuration:

	httpcore.InitGlobal()
	defer httpcore.ShutdownGlobal()

	cfg, err := config.Load()
	...
	client, err := httpcore.NewClient(cfg, logger)
	...
	defer client.Close()

Create a Request per call, configure it and execute it:

	r := client.NewRequest(proxy.Settings{})
	r.SetURL("https://www.example.com/file")
	if err := r.SetRange(0, 1023); err != nil {
		...
	}
	_, err = r.Get(ctx)
	if err != nil {
		switch failure.Categorize(err) {
		case failure.Timeout:
			...
		}
	}
	fmt.Println(r.StatusCode(), len(r.Body()))

A request given zero proxy settings resolves its proxy automatically.
If that attempt fails, the client may retry it once through the
registry proxy; see Request.Post for the exact rules, and package retry
for deciders controlling the fallback.

Keep-alive requests reuse a persistent connection handle owned by the
calling worker. Run workers in a group from Client.NewGroup so each
worker's handle is released when it exits:

	g, ctx := client.NewGroup(ctx)
	for _, u := range urls {
		u := u
		g.Go(func(ctx context.Context) error {
			r := client.NewRequest(proxy.Settings{})
			r.SetURL(u)
			r.SetKeepAlive()
			_, err := r.Get(ctx)
			return err
		})
	}
	err := g.Wait()

To hook into the details of request execution, install a handler into
the appropriate handler chain:

	handlers := &httpcore.HandlerGroup{}
	handlers.PushBack(httpcore.BeforeFallback, httpcore.HandlerFunc(
		func(_ httpcore.Event, e *request.Execution) {
			log.Printf("falling back from %s: %v", e.Proxy, e.Err)
		}),
	)
	client.Handlers = handlers

Package metrics provides a ready-made handler exporting Prometheus
metrics.
*/
package httpcore
