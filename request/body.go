// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogama/httpcore/failure"
)

const badBodyTypeMsg = "httpcore/request: invalid type (for body use nil, " +
	"string, []byte, io.Reader, io.ReadCloser or Body)"

// A Body is a raw POST body. Its ownership is part of its type: use
// Owned or Borrowed to construct one.
type Body interface {
	// Bytes returns the body content.
	Bytes() []byte
	// Owned reports whether the body holds its own copy of the bytes.
	Owned() bool

	body()
}

type ownedBody []byte

func (b ownedBody) Bytes() []byte { return b }
func (b ownedBody) Owned() bool   { return true }
func (b ownedBody) body()         {}

type borrowedBody []byte

func (b borrowedBody) Bytes() []byte { return b }
func (b borrowedBody) Owned() bool   { return false }
func (b borrowedBody) body()         {}

// Owned returns a Body holding a private copy of p.
func Owned(p []byte) Body {
	c := make([]byte, len(p))
	copy(c, p)
	return ownedBody(c)
}

// Borrowed returns a Body viewing p. The caller must not modify p until
// the request using the body has completed.
func Borrowed(p []byte) Body {
	return borrowedBody(p)
}

// BodyFrom builds a Body from a Body, which is returned unchanged, or
// from any of the types accepted by BodyBytes, whose content the
// returned Body owns. An unsupported type yields a failure.ErrConfig
// error.
func BodyFrom(body interface{}) (Body, error) {
	if b, ok := body.(Body); ok {
		return b, nil
	}
	b, err := BodyBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", failure.ErrConfig, err)
	}
	if _, ok := body.([]byte); ok {
		return Owned(b), nil
	}
	return ownedBody(b), nil
}

// BodyBytes reads the body of a request from any of the supported
// types: nil, string, []byte, io.Reader and io.ReadCloser.
//
// If body is an io.ReadCloser it is read to the end and closed.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
