// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/gogama/httpcore/failure"
	"github.com/gogama/httpcore/netlog"
	"github.com/gogama/httpcore/proxy"
	"github.com/gogama/httpcore/request"
	"github.com/gogama/httpcore/timeout"
	"github.com/gogama/httpcore/transfer"
)

// An Option configures a Request at construction.
type Option func(*Request)

// WithStop sets the stop predicate polled while the request transfers.
// Once it returns true the transfer is aborted and the request fails
// with a failure.Canceled error. Aborted requests never fall back.
func WithStop(f transfer.StopFunc) Option {
	return func(r *Request) {
		r.stop = f
	}
}

// WithProgress sets the download progress callback. It is called only
// when the integer percentage changes, and never for bodies of unknown
// size or of at most one byte.
func WithProgress(f transfer.ProgressFunc) Option {
	return func(r *Request) {
		r.progress = f
	}
}

// WithLogTransform sets the transform applied to each diagnostic log
// before it reaches the client's sink.
func WithLogTransform(t netlog.Transform) Option {
	return func(r *Request) {
		r.transform = t
	}
}

// A Request is the caller-facing request entity: it holds the request
// configuration and orchestrates its execution, including the fallback
// from an automatically resolved proxy to the registry proxy.
//
// A Request is not safe for concurrent use. It may be executed any
// number of times; each execution replaces the previous result.
type Request struct {
	client *Client

	cfg       request.Config
	proxy     proxy.Settings
	timeouts  timeout.Policy
	params    request.Params
	form      request.Form
	body      request.Body
	keepAlive bool

	stop      transfer.StopFunc
	progress  transfer.ProgressFunc
	transform netlog.Transform

	result *request.Result
	exec   *request.Execution
}

// SetURL sets the target URL.
func (r *Request) SetURL(u string) {
	r.cfg.URL = u
}

// SetConnectTimeout sets the connect timeout. Zero means none.
func (r *Request) SetConnectTimeout(d time.Duration) {
	r.cfg.ConnectTimeout = d
}

// SetTimeout sets the total execution timeout of each attempt. Zero
// means none.
func (r *Request) SetTimeout(d time.Duration) {
	r.cfg.Timeout = d
}

// SetTimeoutPolicy sets a policy deciding the timeouts of each attempt.
// A non-nil policy takes precedence over SetConnectTimeout and
// SetTimeout.
func (r *Request) SetTimeoutPolicy(p timeout.Policy) {
	r.timeouts = p
}

// SetModifiedTimeCondition makes the request conditional: the resource
// is only returned if it was modified after tm. The zero time removes
// the condition.
func (r *Request) SetModifiedTimeCondition(tm time.Time) {
	r.cfg.ModifiedSince = tm
}

// SetRange requests bytes from through to of the resource. It returns a
// failure.Config error, leaving any previous range in place, unless
// 0 <= from < to.
func (r *Request) SetRange(from, to int64) error {
	rng, err := request.NewRange(from, to)
	if err != nil {
		return err
	}
	r.cfg.Range = rng
	return nil
}

// PushPostParameter sets a URL-encoded POST parameter. An empty value
// sends the name alone, without '='. Parameters, when present, take the
// place of any raw post data.
func (r *Request) PushPostParameter(name, value string) {
	r.params[name] = value
}

// PushPostFormParameter sets a multipart field. Fields with empty
// values are not sent.
func (r *Request) PushPostFormParameter(name, value string) {
	r.form.SetField(name, value)
}

// PushPostFormFile adds a multipart file part read from path when the
// request executes.
func (r *Request) PushPostFormFile(name, path string) {
	r.form.AddFile(name, path)
}

// PushPostFormFileData adds an in-memory multipart file part. data is
// not copied.
func (r *Request) PushPostFormFileData(name, fileName string, data []byte) {
	r.form.AddFileData(name, fileName, data)
}

// PushPostFormFileFromDisk loads the file at path into an in-memory
// multipart part named after the file's base name. Empty files are
// skipped.
func (r *Request) PushPostFormFileFromDisk(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", failure.ErrConfig, err)
	}
	if len(data) > 0 {
		r.form.AddFileData(name, filepath.Base(path), data)
	}
	return nil
}

// SetPostForm selects multipart/form-data for POST requests.
func (r *Request) SetPostForm(postForm bool) {
	r.cfg.PostForm = postForm
}

// SetCustomHeader appends a raw "Name: value" header line. Lines are
// validated when the request executes.
func (r *Request) SetCustomHeader(line string) {
	r.cfg.Headers = append(r.cfg.Headers, line)
}

// SetETag makes the request conditional on the entity tag: it adds an
// If-None-Match header carrying the quoted tag. An empty tag is
// ignored.
func (r *Request) SetETag(etag string) {
	if etag == "" {
		return
	}
	r.SetCustomHeader(`If-None-Match: "` + etag + `"`)
}

// SetKeepAlive makes the request use its worker's persistent handle
// and adds a "Connection: keep-alive" header. Calling it again has no
// effect.
func (r *Request) SetKeepAlive() {
	if r.keepAlive {
		return
	}
	r.keepAlive = true
	r.cfg.KeepAlive = true
	r.SetCustomHeader("Connection: keep-alive")
}

// SetPostData sets the raw POST body, replacing any previous one. Use
// request.Owned to have the request keep its own copy, or
// request.Borrowed to share the caller's buffer.
func (r *Request) SetPostData(b request.Body) {
	r.body = b
}

// ClearPostData drops the raw POST body. It is safe to call when there
// is none.
func (r *Request) ClearPostData() {
	r.body = nil
}

// SetNeedLog enables or disables capture of response bytes and trace
// events in the diagnostic log.
func (r *Request) SetNeedLog(needLog bool) {
	r.cfg.NeedLog = needLog
}

// ReplaceHost rewrites the host of the request URL with its alias.
func (r *Request) ReplaceHost(a HostAliaser) {
	r.cfg.URL = ReplaceHost(r.cfg.URL, a)
}

// URL returns the target URL.
func (r *Request) URL() string {
	return r.cfg.URL
}

// Config returns a copy of the request configuration.
func (r *Request) Config() request.Config {
	cfg := r.cfg
	cfg.Headers = append([]string(nil), r.cfg.Headers...)
	return cfg
}

// PostParameters returns a copy of the URL-encoded POST parameters.
func (r *Request) PostParameters() request.Params {
	return r.params.Clone()
}

// PostURL returns the URL with the POST parameters appended as a query
// string, which identifies the equivalent GET request.
func (r *Request) PostURL() string {
	return r.cfg.URL + "?" + r.params.Encode()
}

// UserProxy returns the proxy settings the request was created with.
func (r *Request) UserProxy() proxy.Settings {
	return r.proxy
}

// StatusCode returns the status code of the last successful execution,
// or zero.
func (r *Request) StatusCode() int {
	if r.result == nil {
		return 0
	}
	return r.result.StatusCode
}

// Body returns the response body of the last successful execution, or
// nil.
func (r *Request) Body() []byte {
	if r.result == nil {
		return nil
	}
	return r.result.Body
}

// Header returns the raw response headers of the last successful
// execution, or nil.
func (r *Request) Header() []byte {
	if r.result == nil {
		return nil
	}
	return r.result.Header
}

// Result returns the result of the last successful execution, or nil
// if the last execution failed or none has run.
func (r *Request) Result() *request.Result {
	return r.result
}

// Execution returns the state of the last execution, or nil.
func (r *Request) Execution() *request.Execution {
	return r.exec
}

// Get executes the request as a GET. See Post.
func (r *Request) Get(ctx context.Context) (*request.Execution, error) {
	return r.send(ctx, false)
}

// Post executes the request as a POST. The body is, in order of
// preference: the multipart form if SetPostForm(true) was called, the
// URL-encoded POST parameters, or the raw post data.
//
// The request is executed once through its proxy. If the request was
// not given an explicit proxy, its first attempt goes through the
// client's automatic proxy and, if that fails, the client's fallback
// decider may allow one more attempt through the registry proxy. A
// successful fallback makes the registry proxy the automatic proxy
// from then on.
//
// On success the result is available from the request's accessors. An
// HTTP status code of any value is a success. On failure the request
// has no result and the error is a *url.Error; use failure.Categorize
// to tell timeouts, cancellation, TLS and connection failures apart.
func (r *Request) Post(ctx context.Context) (*request.Execution, error) {
	return r.send(ctx, true)
}

func (r *Request) send(ctx context.Context, post bool) (*request.Execution, error) {
	c := r.client
	cfg := r.Config()
	e := &request.Execution{
		Config:    &cfg,
		Post:      post,
		UserProxy: r.proxy.IsUser(),
	}
	r.result = nil
	r.exec = e

	if !Initialized() {
		e.Err = transfer.WrapError(post, r.cfg.URL, ErrNotInitialized)
		return e, e.Err
	}

	handlers := c.Handlers
	logger := c.logger().With(zap.String("url", cfg.URL))
	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	policy := r.timeoutPolicy()
	t := policy.Timeout(e)
	for {
		e.Proxy = r.effectiveProxy(e.Fallback())
		r.attempt(ctx, e, post, t)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, e)
		}
		handlers.run(AfterAttempt, e)

		if e.Err == nil {
			if !e.UserProxy {
				c.fallback().MarkSucceeded()
				if e.Fallback() {
					c.proxies().Switch()
					logger.Info("switched to registry proxy", zap.Stringer("proxy", e.Proxy))
				}
			}
			break
		}

		logger.Debug("attempt failed",
			zap.Int("attempt", e.Attempt),
			zap.Stringer("kind", e.Kind()),
			zap.Error(e.Err))
		if e.UserProxy || e.Fallback() || ctx.Err() != nil || !c.decider().Decide(e) {
			break
		}

		logger.Warn("falling back to registry proxy", zap.Stringer("from", e.Proxy), zap.Error(e.Err))
		handlers.run(BeforeFallback, e)
		t = policy.Timeout(e)
		e.Err = nil
		e.Attempt++
	}

	e.End = time.Now()
	r.result = e.Result
	handlers.run(AfterExecutionEnd, e)
	return e, e.Err
}

func (r *Request) effectiveProxy(fallback bool) proxy.Settings {
	switch {
	case r.proxy.IsUser():
		return r.proxy
	case fallback:
		return r.client.proxies().Registry()
	default:
		return r.client.proxies().Auto(r.cfg.URL)
	}
}

func (r *Request) timeoutPolicy() timeout.Policy {
	if r.timeouts != nil {
		return r.timeouts
	}
	return timeout.Fixed(r.cfg.ConnectTimeout, r.cfg.Timeout)
}

func (r *Request) attempt(ctx context.Context, e *request.Execution, post bool, t timeout.Pair) {
	c := r.client
	e.Result = nil
	tr := transfer.New(c.transferOptions(ctx, r))
	defer tr.Close()

	if err := tr.Init(t.Connect, t.Total, e.Proxy, c.userAgent()); err != nil {
		e.Err = transfer.WrapError(post, r.cfg.URL, err)
		return
	}
	if err := r.configure(tr, post); err != nil {
		e.Err = transfer.WrapError(post, r.cfg.URL, err)
		return
	}

	c.Handlers.run(BeforeAttempt, e)
	if err := tr.Execute(ctx); err != nil {
		e.Err = err
		return
	}

	e.Result = &request.Result{
		StatusCode: tr.ResponseCode(),
		Body:       tr.Response(),
		Header:     tr.Header(),
	}
}

func (r *Request) configure(tr *transfer.Transfer, post bool) error {
	if post {
		if len(r.params) > 0 {
			tr.SetPostFields([]byte(r.params.Encode()))
		} else if r.body != nil {
			tr.SetPostFields(r.body.Bytes())
		}
		for _, f := range r.form.Fields {
			if f.Value != "" {
				tr.SetFormField(f.Name, f.Value)
			}
		}
		for _, f := range r.form.Files {
			tr.SetFormFile(f.Name, f.Path)
		}
		for _, d := range r.form.Data {
			if err := tr.SetFormFileData(d.Name, d.FileName, bytes.NewReader(d.Data)); err != nil {
				return err
			}
		}
		if r.cfg.PostForm {
			tr.SetHTTPPost()
		} else {
			tr.SetPost()
		}
	}

	if !r.cfg.ModifiedSince.IsZero() {
		tr.SetModifiedTime(r.cfg.ModifiedSince)
	}
	if r.cfg.Range.Valid() {
		if err := tr.SetRange(r.cfg.Range.From, r.cfg.Range.To); err != nil {
			return err
		}
	}
	if err := tr.SetCustomHeaders(r.cfg.Headers); err != nil {
		return err
	}
	tr.SetURL(r.cfg.URL)
	return nil
}
