// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"syscall"
)

// A Kind is the category of a particular request execution error, as
// reported by function Categorize.
type Kind int

const (
	// None indicates a nil error.
	None Kind = iota
	// Other indicates a non-nil error that fits none of the other kinds.
	Other
	// Handle indicates the connection handle could not be created or
	// was used after being released.
	Handle
	// Config indicates the request was misconfigured by the caller, for
	// example a degenerate range or an empty URL. Config errors are
	// detected before any network I/O happens.
	Config
	// Connection indicates a failure to establish or keep a connection
	// to the remote host or proxy, such as a refused or reset connection
	// or a DNS failure.
	Connection
	// TLS indicates a TLS handshake or certificate verification failure.
	TLS
	// Timeout indicates either the connect timeout or the total
	// execution timeout expired.
	Timeout
	// Canceled indicates the caller asked for the transfer to stop,
	// either through the stop predicate or by canceling the context.
	Canceled
)

var kindNames = []string{
	"None",
	"Other",
	"Handle",
	"Config",
	"Connection",
	"TLS",
	"Timeout",
	"Canceled",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

var (
	// ErrCanceled is the abort sentinel returned when the stop predicate
	// reports that the transfer should end.
	ErrCanceled = errors.New("httpcore: transfer canceled")
	// ErrHandle indicates a connection handle is unusable.
	ErrHandle = errors.New("httpcore: connection handle unavailable")
	// ErrConfig is wrapped by every caller misconfiguration error.
	ErrConfig = errors.New("httpcore: invalid configuration")
)

// Categorize returns the kind of the given error. Wrapped causes are
// examined, not just err itself.
//
// Cancellation is checked before timeout so that a transfer aborted by
// the stop predicate is never reported as a timeout, even if a deadline
// expired concurrently.
func Categorize(err error) Kind {
	if err == nil {
		return None
	}

	if errors.Is(err, ErrConfig) {
		return Config
	}

	if errors.Is(err, ErrHandle) {
		return Handle
	}

	if errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled) {
		return Canceled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if isTLS(err) {
		return TLS
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ECONNABORTED,
			syscall.EHOSTUNREACH, syscall.ENETUNREACH, syscall.EPIPE:
			return Connection
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Connection
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Connection
	}

	return Other
}

func isTLS(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}

	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return true
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}

	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}

	var invalidErr x509.CertificateInvalidError
	return errors.As(err, &invalidErr)
}

type hasTimeout interface {
	Timeout() bool
}
