// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package handle

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync/atomic"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/gogama/httpcore/failure"
	"github.com/gogama/httpcore/proxy"
)

const (
	// KeepAliveInterval is the TCP keep-alive probe interval of every
	// connection made through a Handle.
	KeepAliveInterval = 5 * time.Second
	// IdleConnTimeout is how long an idle connection stays cached.
	IdleConnTimeout = 90 * time.Second
)

// Settings are the connection-level settings of a Handle. Changing
// them rebuilds the handle's transport, discarding idle connections.
type Settings struct {
	// ConnectTimeout bounds TCP connection and TLS handshake. Zero
	// means no connect timeout.
	ConnectTimeout time.Duration
	// Proxy is the proxy connections are made through.
	Proxy proxy.Settings
	// RootCAs, if not nil, replaces the system certificate pool when
	// verifying servers.
	RootCAs *x509.CertPool
}

var serial atomic.Uint64

// A Handle is reusable connection state: an http.Transport plus a
// cookie jar.
type Handle struct {
	id        uint64
	settings  Settings
	transport *http.Transport
	jar       http.CookieJar
	closed    atomic.Bool
}

// New creates a Handle with default settings and an empty cookie jar.
// The returned error, if any, is a failure.Handle error.
func New() (*Handle, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("%w: cookie jar: %v", failure.ErrHandle, err)
	}
	h := &Handle{
		id:  serial.Add(1),
		jar: jar,
	}
	if err = h.build(Settings{}); err != nil {
		return nil, fmt.Errorf("%w: %v", failure.ErrHandle, err)
	}
	return h, nil
}

// ID returns the handle's serial number, unique within the process.
func (h *Handle) ID() uint64 {
	return h.id
}

// Settings returns the settings the handle is currently configured
// with.
func (h *Handle) Settings() Settings {
	return h.settings
}

// Reset configures the handle for the next request. If s equals the
// current settings the transport, and with it the cached connections,
// is kept. Otherwise the transport is rebuilt. Cookies are always kept.
func (h *Handle) Reset(s Settings) error {
	if h.closed.Load() {
		return failure.ErrHandle
	}
	if h.transport != nil && s == h.settings {
		return nil
	}
	old := h.transport
	if err := h.build(s); err != nil {
		return err
	}
	if old != nil {
		old.CloseIdleConnections()
	}
	return nil
}

// Do sends an HTTP request through the handle. checkRedirect has the
// same meaning as http.Client.CheckRedirect.
//
// Do returns failure.ErrHandle if the handle is closed.
func (h *Handle) Do(req *http.Request, checkRedirect func(*http.Request, []*http.Request) error) (*http.Response, error) {
	if h.closed.Load() {
		return nil, failure.ErrHandle
	}
	c := http.Client{
		Transport:     h.transport,
		Jar:           h.jar,
		CheckRedirect: checkRedirect,
	}
	return c.Do(req)
}

// Close releases the handle's idle connections. A closed handle
// refuses further requests. Close is idempotent.
func (h *Handle) Close() {
	if h.closed.Swap(true) {
		return
	}
	h.transport.CloseIdleConnections()
}

// Closed reports whether Close has been called.
func (h *Handle) Closed() bool {
	return h.closed.Load()
}

func (h *Handle) build(s Settings) error {
	dialer := &net.Dialer{
		Timeout:   s.ConnectTimeout,
		KeepAlive: KeepAliveInterval,
	}
	t := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    s.RootCAs,
		},
		TLSHandshakeTimeout: s.ConnectTimeout,
		DisableCompression:  true,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        16,
		IdleConnTimeout:     IdleConnTimeout,
	}
	if err := proxy.Apply(t, dialer, s.Proxy); err != nil {
		return err
	}
	h.transport = t
	h.settings = s
	return nil
}
