// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

import (
	"context"

	"github.com/gogama/httpcore/proxy"
	"github.com/gogama/httpcore/request"
)

// Getter is the interface that wraps the basic Get method.
//
// Get executes a configured request as a GET and returns the final
// execution state (and error, if any). Request implements the Getter
// interface.
type Getter interface {
	Get(ctx context.Context) (*request.Execution, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post executes a configured request as a POST and returns the final
// execution state (and error, if any). Request implements the Poster
// interface.
type Poster interface {
	Post(ctx context.Context) (*request.Execution, error)
}

// Executor is the interface that groups the basic Get and Post
// methods.
type Executor interface {
	Getter
	Poster
}

var _ Executor = (*Request)(nil)

// RequestMaker is the interface that wraps the basic NewRequest method.
//
// NewRequest returns a new, unexecuted request using the given proxy
// settings. Client implements the RequestMaker interface.
//
// Any RequestMaker can be used with the Get, Post, PostForm and
// GetRange functions.
type RequestMaker interface {
	NewRequest(ps proxy.Settings, opts ...Option) *Request
}

var _ RequestMaker = (*Client)(nil)

// Get uses the specified RequestMaker to issue a GET to the specified
// URL through the automatically resolved proxy.
//
// The returned Request holds the result. It is nil only if m returned
// nil.
func Get(ctx context.Context, m RequestMaker, url string, opts ...Option) (*Request, error) {
	r := m.NewRequest(proxy.Settings{}, opts...)
	r.SetURL(url)
	_, err := r.Get(ctx)
	return r, err
}

// GetRange uses the specified RequestMaker to issue a GET for bytes
// from through to of the resource at the specified URL.
func GetRange(ctx context.Context, m RequestMaker, url string, from, to int64, opts ...Option) (*Request, error) {
	r := m.NewRequest(proxy.Settings{}, opts...)
	r.SetURL(url)
	if err := r.SetRange(from, to); err != nil {
		return r, err
	}
	_, err := r.Get(ctx)
	return r, err
}

// Post uses the specified RequestMaker to issue a POST of a raw body to
// the specified URL. The body is sent as
// application/x-www-form-urlencoded unless contentType is not empty.
//
// The body may be nil, a string, a []byte, an io.Reader, an
// io.ReadCloser or a request.Body. A request.Body is used as is; the
// other types are copied (readers are read to the end, and closed if
// they are closers). Any other type yields a failure.Config error and
// no request is made.
func Post(ctx context.Context, m RequestMaker, url, contentType string, body interface{}, opts ...Option) (*Request, error) {
	b, err := request.BodyFrom(body)
	if err != nil {
		return nil, err
	}
	r := m.NewRequest(proxy.Settings{}, opts...)
	r.SetURL(url)
	r.SetPostData(b)
	if contentType != "" {
		r.SetCustomHeader("Content-Type: " + contentType)
	}
	_, err = r.Post(ctx)
	return r, err
}

// PostForm uses the specified RequestMaker to issue a POST to the
// specified URL, with params URL-encoded as the request body.
func PostForm(ctx context.Context, m RequestMaker, url string, params request.Params, opts ...Option) (*Request, error) {
	r := m.NewRequest(proxy.Settings{}, opts...)
	r.SetURL(url)
	for k, v := range params {
		r.PushPostParameter(k, v)
	}
	_, err := r.Post(ctx)
	return r, err
}
