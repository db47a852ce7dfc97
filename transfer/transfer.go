// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transfer

import (
	"bytes"
	"context"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"

	"github.com/gogama/httpcore/failure"
	"github.com/gogama/httpcore/handle"
	"github.com/gogama/httpcore/netlog"
	"github.com/gogama/httpcore/proxy"
	"github.com/gogama/httpcore/request"
	"github.com/gogama/httpcore/worker"
)

// MaxRedirects is the number of redirects a transfer follows before
// failing.
const MaxRedirects = 10

// ErrNotInitialized is returned by Execute if Init has not succeeded.
var ErrNotInitialized = fmt.Errorf("%w: transfer not initialized", failure.ErrHandle)

// Options are the construction parameters of a Transfer.
type Options struct {
	// Stop, if not nil, is polled during the transfer. Once it returns
	// true the transfer is aborted with failure.ErrCanceled.
	Stop StopFunc
	// Progress, if not nil, receives download progress. It is called
	// only when the integer percentage changes.
	Progress ProgressFunc
	// KeepAlive selects the persistent handle of Worker from Pool. If
	// it is false, or Pool or Worker is missing, the transfer uses a
	// private handle which Close releases.
	KeepAlive bool
	Worker    worker.ID
	Pool      *handle.Pool
	// Log enables capture of response bytes and trace events in the
	// diagnostic log.
	Log bool
	// Filters are the TraceText prefixes left out of the diagnostic
	// log. If nil, DefaultTraceFilters is used.
	Filters []string
	// Sink receives the diagnostic log at the end of Execute. If nil,
	// the log is dropped.
	Sink netlog.Sink
	// Transform, if not nil, rewrites the diagnostic log before it
	// reaches Sink.
	Transform netlog.Transform
	// Logger receives the transfer's own operational messages.
	Logger *zap.Logger
	// RootCAs, if not nil, replaces the system certificate pool.
	RootCAs *x509.CertPool
}

type headerField struct {
	name  string
	value string
}

// A Transfer is the binding between one request execution and one
// connection handle. A Transfer is not safe for concurrent use.
type Transfer struct {
	opts    Options
	filters []string
	logger  *zap.Logger

	h     *handle.Handle
	owned bool

	userAgent string
	timeout   time.Duration
	url       string
	post      bool
	multipart bool
	fields    []byte
	rng       request.Range
	modified  time.Time
	headers   []headerField
	form      request.Form

	code    int
	body    bytes.Buffer
	header  bytes.Buffer
	lastPct int

	logMu sync.Mutex
	log   bytes.Buffer
}

// New returns a Transfer. No handle is acquired until Init.
func New(opts Options) *Transfer {
	filters := opts.Filters
	if filters == nil {
		filters = DefaultTraceFilters
	}
	return &Transfer{
		opts:    opts,
		filters: filters,
		logger:  netlog.OrNop(opts.Logger),
		lastPct: -1,
	}
}

// Init acquires the transfer's handle and configures its connection
// settings: connect timeout, proxy, TLS verification and TCP
// keep-alive probing. timeout bounds the whole of Execute; zero means
// no limit.
//
// Init fails if userAgent is empty, if the proxy settings are invalid
// or if no handle can be created.
func (t *Transfer) Init(connectTimeout, timeout time.Duration, ps proxy.Settings, userAgent string) error {
	if userAgent == "" {
		return fmt.Errorf("%w: empty user agent", failure.ErrConfig)
	}
	if t.h == nil {
		h, owned, err := t.acquire()
		if err != nil {
			return err
		}
		t.h, t.owned = h, owned
	}
	err := t.h.Reset(handle.Settings{
		ConnectTimeout: connectTimeout,
		Proxy:          ps,
		RootCAs:        t.opts.RootCAs,
	})
	if err != nil {
		return err
	}
	t.userAgent = userAgent
	t.timeout = timeout
	return nil
}

func (t *Transfer) acquire() (*handle.Handle, bool, error) {
	if t.opts.KeepAlive && t.opts.Pool != nil {
		if t.opts.Worker != "" {
			h, err := t.opts.Pool.Get(t.opts.Worker)
			return h, false, err
		}
		t.logger.Debug("keep-alive without worker ID, using private handle")
	}
	h, err := handle.New()
	return h, true, err
}

// Handle returns the handle acquired by Init, or nil.
func (t *Transfer) Handle() *handle.Handle {
	return t.h
}

// SetURL sets the target URL.
func (t *Transfer) SetURL(u string) {
	t.url = u
}

// SetPost makes the request a POST with the raw body set by
// SetPostFields.
func (t *Transfer) SetPost() {
	t.post = true
	t.multipart = false
}

// SetHTTPPost makes the request a multipart/form-data POST built from
// the form parts.
func (t *Transfer) SetHTTPPost() {
	t.post = true
	t.multipart = true
}

// SetPostFields sets the raw POST body. p is not copied.
func (t *Transfer) SetPostFields(p []byte) {
	t.fields = p
}

// SetRange requests bytes from through to of the resource. It fails
// unless 0 <= from < to.
func (t *Transfer) SetRange(from, to int64) error {
	r, err := request.NewRange(from, to)
	if err != nil {
		return err
	}
	t.rng = r
	return nil
}

// SetModifiedTime makes the request conditional: the resource is only
// returned if it was modified after tm.
func (t *Transfer) SetModifiedTime(tm time.Time) {
	t.modified = tm
}

// SetCustomHeaders appends raw "Name: value" header lines, used for the
// rest of the transfer. A custom header replaces a default header of
// the same name. A line with an empty value removes the header.
//
// If any line is malformed none are added.
func (t *Transfer) SetCustomHeaders(lines []string) error {
	fields := make([]headerField, 0, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
			return fmt.Errorf("%w: malformed header %q", failure.ErrConfig, line)
		}
		fields = append(fields, headerField{name: textproto.CanonicalMIMEHeaderKey(name), value: value})
	}
	t.headers = append(t.headers, fields...)
	return nil
}

// SetFormField adds a plain multipart field.
func (t *Transfer) SetFormField(name, value string) {
	t.form.Fields = append(t.form.Fields, request.Field{Name: name, Value: value})
}

// SetFormFile adds a multipart file part read from path when the
// transfer executes. Its content type is detected from the content.
func (t *Transfer) SetFormFile(name, path string) {
	t.form.AddFile(name, path)
}

// SetFormFileData adds an in-memory multipart file part tagged
// application/octet-stream. It consumes the unread bytes of data and
// then rewinds data to its start.
func (t *Transfer) SetFormFileData(name, fileName string, data io.ReadSeeker) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("%w: form data %q: %v", failure.ErrConfig, name, err)
	}
	if _, err = data.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: form data %q: %v", failure.ErrConfig, name, err)
	}
	t.form.AddFileData(name, fileName, b)
	return nil
}

// Execute performs the request synchronously. It returns nil if the
// transfer completed, whatever the HTTP status code; otherwise the
// error is a *url.Error whose cause failure.Categorize can classify.
//
// Whatever the outcome, Execute appends a "perform result" line to the
// diagnostic log, applies the transform and hands the log to the sink.
func (t *Transfer) Execute(ctx context.Context) (err error) {
	t.code = 0
	t.body.Reset()
	t.header.Reset()
	t.lastPct = -1
	t.logMu.Lock()
	t.log.Reset()
	t.logMu.Unlock()

	defer func() {
		t.flushLog(err)
	}()

	if t.h == nil {
		return ErrNotInitialized
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := t.newRequest(ctx)
	if err != nil {
		return t.wrap(err)
	}
	if err = t.progress(0, 0); err != nil {
		return t.wrap(err)
	}
	resp, err := t.h.Do(req, t.checkRedirect)
	if err != nil {
		return t.wrap(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	t.code = resp.StatusCode
	t.recordHeader(resp)
	if err = t.progress(resp.ContentLength, 0); err != nil {
		return t.wrap(err)
	}
	if err = t.readBody(resp); err != nil {
		return t.wrap(err)
	}
	return nil
}

// ResponseCode returns the status code of the final response, or zero
// if none was received.
func (t *Transfer) ResponseCode() int {
	return t.code
}

// Response returns the decoded response body received so far.
func (t *Transfer) Response() []byte {
	return t.body.Bytes()
}

// Header returns the raw response header blocks received so far, one
// block per response including redirects.
func (t *Transfer) Header() []byte {
	return t.header.Bytes()
}

// Log returns a copy of the diagnostic log of the last Execute, after
// the transform was applied.
func (t *Transfer) Log() []byte {
	t.logMu.Lock()
	defer t.logMu.Unlock()
	return append([]byte(nil), t.log.Bytes()...)
}

// Close releases the transfer's handle if it is private. A pooled
// handle stays with its worker. Close is idempotent.
func (t *Transfer) Close() {
	if t.h != nil && t.owned {
		t.h.Close()
	}
	t.h = nil
}

func (t *Transfer) method() string {
	if t.post {
		return http.MethodPost
	}
	return http.MethodGet
}

func (t *Transfer) checkRedirect(req *http.Request, via []*http.Request) error {
	if req.Response != nil {
		t.recordHeader(req.Response)
	}
	if len(via) >= MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", MaxRedirects)
	}
	return t.progress(0, 0)
}

func (t *Transfer) recordHeader(resp *http.Response) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s\r\n", resp.Proto, resp.Status)
	_ = resp.Header.Write(&b)
	b.WriteString("\r\n")
	t.writeHeader(b.Bytes())
	t.trace(TraceHeaderIn, b.Bytes())
}

func (t *Transfer) flushLog(err error) {
	kind := failure.Categorize(err)
	line := "perform result: " + kind.String()
	if err != nil {
		line += ": " + err.Error()
	}

	t.logMu.Lock()
	defer t.logMu.Unlock()
	t.log.WriteString(line + "\n")
	if t.opts.Transform != nil {
		t.opts.Transform(&t.log)
	}
	if t.opts.Sink == nil {
		return
	}
	if serr := t.opts.Sink.Write(t.log.Bytes()); serr != nil {
		t.logger.Warn("network log sink failed", zap.String("url", t.url), zap.Error(serr))
	}
}

func (t *Transfer) wrap(err error) error {
	return WrapError(t.post, t.url, err)
}

// WrapError wraps err in a *url.Error naming the method and URL, the
// way net/http reports transport failures. An err which already is a
// *url.Error is returned unchanged.
func WrapError(post bool, rawURL string, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	op := "Get"
	if post {
		op = "Post"
	}
	return &url.Error{
		Op:  op,
		URL: rawURL,
		Err: err,
	}
}
