// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package metrics exports Prometheus metrics about request executions.

A Collector is an event handler. Install it into the handler group of a
Client and it counts executions, attempts, timeouts and fallbacks and
observes execution durations:

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	handlers := &httpcore.HandlerGroup{}
	c.Install(handlers)
	c.WatchPool(client.Pool)
	client.Handlers = handlers
*/
package metrics
