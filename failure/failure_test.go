// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	assert.Equal(t, None, Categorize(nil))
	assert.Equal(t, Other, Categorize(errors.New("foo")))
	assert.Equal(t, Other, Categorize(wrapper{errors.New("bar")}))
	assert.Equal(t, Config, Categorize(ErrConfig))
	assert.Equal(t, Config, Categorize(fmt.Errorf("bad range: %w", ErrConfig)))
	assert.Equal(t, Handle, Categorize(&url.Error{Err: ErrHandle}))
	assert.Equal(t, Canceled, Categorize(ErrCanceled))
	assert.Equal(t, Canceled, Categorize(&url.Error{Err: wrapper{ErrCanceled}}))
	assert.Equal(t, Canceled, Categorize(context.Canceled))
	assert.Equal(t, Timeout, Categorize(context.DeadlineExceeded))
	assert.Equal(t, Timeout, Categorize(syscall.ETIMEDOUT))
	assert.Equal(t, Timeout, Categorize(timeout{}))
	assert.Equal(t, Timeout, Categorize(&url.Error{Err: timeout{}}))
	assert.Equal(t, Timeout, Categorize(wrapper{wrapper{timeout{}}}))
	assert.Equal(t, Timeout, Categorize(timeoutWrapper{true, syscall.ECONNRESET}))
	assert.Equal(t, Connection, Categorize(syscall.ECONNRESET))
	assert.Equal(t, Connection, Categorize(wrapper{syscall.ECONNREFUSED}))
	assert.Equal(t, Connection, Categorize(timeoutWrapper{false, syscall.ECONNREFUSED}))
	assert.Equal(t, Connection, Categorize(&url.Error{Err: &net.OpError{Op: "dial", Err: errors.New("no route")}}))
	assert.Equal(t, Connection, Categorize(&net.DNSError{Err: "no such host", Name: "nowhere.invalid"}))
	assert.Equal(t, TLS, Categorize(&url.Error{Err: x509.UnknownAuthorityError{}}))
	assert.Equal(t, TLS, Categorize(wrapper{x509.HostnameError{Host: "example.com"}}))
}

func TestCategorize_CanceledBeatsTimeout(t *testing.T) {
	err := fmt.Errorf("%w (%v)", ErrCanceled, context.DeadlineExceeded)
	assert.Equal(t, Canceled, Categorize(err))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "Handle", Handle.String())
	assert.Equal(t, "Config", Config.String())
	assert.Equal(t, "Connection", Connection.String())
	assert.Equal(t, "TLS", TLS.String())
	assert.Equal(t, "Timeout", Timeout.String())
	assert.Equal(t, "Canceled", Canceled.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}

type timeout struct{}

func (err timeout) Error() string {
	return "timeout"
}

func (_ timeout) Timeout() bool {
	return true
}

type wrapper struct {
	wrappedError error
}

func (err wrapper) Error() string {
	return fmt.Sprintf("wrapper - wraps %v", err.wrappedError)
}

func (err wrapper) Unwrap() error {
	return err.wrappedError
}

type timeoutWrapper struct {
	timeout      bool
	wrappedError error
}

func (err timeoutWrapper) Error() string {
	return fmt.Sprintf("timeoutWrapper - timeout %t, wraps %v", err.timeout, err.wrappedError)
}

func (err timeoutWrapper) Timeout() bool {
	return err.timeout
}

func (err timeoutWrapper) Unwrap() error {
	return err.wrappedError
}
