// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

import (
	"context"
	"crypto/x509"

	"go.uber.org/zap"

	"github.com/gogama/httpcore/config"
	"github.com/gogama/httpcore/handle"
	"github.com/gogama/httpcore/netlog"
	"github.com/gogama/httpcore/proxy"
	"github.com/gogama/httpcore/request"
	"github.com/gogama/httpcore/retry"
	"github.com/gogama/httpcore/transfer"
	"github.com/gogama/httpcore/worker"
)

// DefaultFallback is the process-wide fallback state used by clients
// whose Fallback field is nil.
var DefaultFallback = &proxy.FallbackState{}

var directSource = &proxy.StaticSource{
	RegistrySettings: proxy.Settings{Type: proxy.None},
	AutoSettings:     proxy.Settings{Type: proxy.None},
}

// A Client is the networking subsystem requests are made through. It
// owns the connection handle pool, knows where proxies come from and
// where diagnostic logs go. Its zero value is a valid configuration.
//
// The zero value client has no handle pool, so every request uses a
// private handle; connects directly; uses DefaultFallback and
// retry.DefaultDecider; drops diagnostic logs; and sends
// config.DefaultUserAgent.
//
// Client is safe for concurrent use by multiple goroutines. Requests
// created from it are not: each Request belongs to one goroutine.
type Client struct {
	// Pool holds the persistent handles of keep-alive requests, one
	// per worker. Install Pool as a worker.ShutdownHook so a worker's
	// handle is released when the worker exits.
	//
	// If Pool is nil, keep-alive requests use private handles.
	Pool *handle.Pool
	// Proxies resolves the registry and automatic proxies used by
	// requests which were not given an explicit proxy.
	//
	// If Proxies is nil, such requests connect directly.
	Proxies proxy.Source
	// Fallback records whether any automatically resolved request has
	// succeeded.
	//
	// If Fallback is nil, DefaultFallback is used.
	Fallback *proxy.FallbackState
	// FallbackDecider decides whether a failed attempt through an
	// automatically resolved proxy is retried through the registry
	// proxy. At most one fallback is ever made.
	//
	// If FallbackDecider is nil, retry.DefaultDecider is used with the
	// client's fallback state.
	FallbackDecider retry.Decider
	// Sink receives the diagnostic log of every attempt.
	//
	// If Sink is nil, logs are dropped.
	Sink netlog.Sink
	// UserAgent is sent with every request.
	//
	// If UserAgent is empty, config.DefaultUserAgent is used.
	UserAgent string
	// Logger receives operational messages.
	//
	// If Logger is nil, nothing is logged.
	Logger *zap.Logger
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// TraceFilters are the trace line prefixes left out of diagnostic
	// logs.
	//
	// If TraceFilters is nil, transfer.DefaultTraceFilters is used.
	TraceFilters []string
	// RootCAs, if not nil, replaces the system certificate pool.
	RootCAs *x509.CertPool
	// Defaults is the initial configuration of new requests.
	//
	// If Defaults is nil, request.NewConfig() is used.
	Defaults *request.Config
}

// NewClient returns a client wired from configuration: a fresh handle
// pool, the system proxy source backed by the configured registry
// proxy, a zap log sink and the configured user agent and timeouts.
//
// If cfg is nil, config.Default() is used. If logger is nil, nothing
// is logged.
func NewClient(cfg *config.Network, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	registry, err := cfg.RegistryProxy()
	if err != nil {
		return nil, err
	}

	logger = netlog.OrNop(logger)
	defaults := request.NewConfig()
	defaults.ConnectTimeout = cfg.ConnectTimeout
	defaults.Timeout = cfg.Timeout
	defaults.NeedLog = cfg.NeedLog

	return &Client{
		Pool:      handle.NewPool(),
		Proxies:   proxy.NewSystemSource(registry),
		Fallback:  &proxy.FallbackState{},
		Sink:      netlog.NewZapSink(logger.Named("network")),
		UserAgent: cfg.UserAgent,
		Logger:    logger,
		Defaults:  &defaults,
	}, nil
}

// NewRequest returns a request made through c. ps is the caller's
// proxy choice: a Type of proxy.Auto means "resolve automatically",
// anything else is used as is and never falls back.
func (c *Client) NewRequest(ps proxy.Settings, opts ...Option) *Request {
	r := &Request{
		client: c,
		cfg:    c.defaults(),
		proxy:  ps,
		params: make(request.Params),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewGroup returns a worker group whose workers release their
// persistent handles from c's pool when they exit. Requests made inside
// a worker of the group must be given the worker's context.
func (c *Client) NewGroup(ctx context.Context, hooks ...worker.ShutdownHook) (*worker.Group, context.Context) {
	if c.Pool != nil {
		hooks = append(hooks, c.Pool)
	}
	return worker.NewGroup(ctx, hooks...)
}

// Close releases every persistent handle. Requests must not be running
// when Close is called.
func (c *Client) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

func (c *Client) defaults() request.Config {
	if c.Defaults == nil {
		return request.NewConfig()
	}
	cfg := *c.Defaults
	cfg.Headers = append([]string(nil), c.Defaults.Headers...)
	return cfg
}

func (c *Client) proxies() proxy.Source {
	if c.Proxies == nil {
		return directSource
	}
	return c.Proxies
}

func (c *Client) fallback() *proxy.FallbackState {
	if c.Fallback == nil {
		return DefaultFallback
	}
	return c.Fallback
}

func (c *Client) decider() retry.Decider {
	if c.FallbackDecider == nil {
		return retry.DefaultDecider(c.fallback())
	}
	return c.FallbackDecider
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return config.DefaultUserAgent
	}
	return c.UserAgent
}

func (c *Client) logger() *zap.Logger {
	return netlog.OrNop(c.Logger)
}

func (c *Client) transferOptions(ctx context.Context, r *Request) transfer.Options {
	id, _ := worker.FromContext(ctx)
	return transfer.Options{
		Stop:      r.stop,
		Progress:  r.progress,
		KeepAlive: r.cfg.KeepAlive,
		Worker:    id,
		Pool:      c.Pool,
		Log:       r.cfg.NeedLog,
		Filters:   c.TraceFilters,
		Sink:      c.Sink,
		Transform: r.transform,
		Logger:    c.Logger,
		RootCAs:   c.RootCAs,
	}
}
