// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gogama/httpcore/failure"
)

const (
	// DefaultConnectTimeout is the connect timeout used when the caller
	// sets none.
	DefaultConnectTimeout = 15 * time.Second
	// DefaultTimeout is the total execution timeout used when the
	// caller sets none.
	DefaultTimeout = 15 * time.Second
)

// Config holds the request configuration set by the request entity
// before execution.
type Config struct {
	// URL is the target URL.
	URL string
	// ConnectTimeout bounds connection establishment, including the TLS
	// handshake. Zero or negative means no connect timeout.
	ConnectTimeout time.Duration
	// Timeout bounds the whole execution. Zero or negative means no
	// total timeout.
	Timeout time.Duration
	// Headers are raw "Name: value" header lines, in the order they
	// were added.
	Headers []string
	// Range, if valid, requests only part of the resource.
	Range Range
	// ModifiedSince, if not zero, makes the request conditional on the
	// resource being modified after this time.
	ModifiedSince time.Time
	// KeepAlive selects a persistent, worker-owned connection handle.
	KeepAlive bool
	// NeedLog enables diagnostic capture of response bytes and trace
	// events.
	NeedLog bool
	// PostForm selects multipart/form-data for POST requests.
	PostForm bool
}

// NewConfig returns a Config with the default timeouts and diagnostic
// capture enabled.
func NewConfig() Config {
	return Config{
		ConnectTimeout: DefaultConnectTimeout,
		Timeout:        DefaultTimeout,
		NeedLog:        true,
	}
}

// A Range is a byte range of a resource. Both ends are inclusive, as in
// the HTTP Range header. The zero value is not a valid range and means
// "whole resource".
type Range struct {
	From int64
	To   int64
}

// NewRange returns the range [from, to]. It returns a failure.Config
// error unless 0 <= from < to.
func NewRange(from, to int64) (Range, error) {
	r := Range{From: from, To: to}
	if !r.Valid() {
		return Range{}, fmt.Errorf("%w: invalid range %d-%d", failure.ErrConfig, from, to)
	}
	return r, nil
}

// Valid reports whether 0 <= From < To.
func (r Range) Valid() bool {
	return r.From >= 0 && r.To > 0 && r.From < r.To
}

// String returns the range as "from-to".
func (r Range) String() string {
	return strconv.FormatInt(r.From, 10) + "-" + strconv.FormatInt(r.To, 10)
}

// HeaderValue returns the value for an HTTP Range header.
func (r Range) HeaderValue() string {
	return "bytes=" + r.String()
}
