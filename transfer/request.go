// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transfer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptrace"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"

	"github.com/gogama/httpcore/failure"
)

const (
	chunkSize = 32 * 1024

	formURLEncoded = "application/x-www-form-urlencoded"
	octetStream    = "application/octet-stream"
)

func (t *Transfer) newRequest(ctx context.Context) (*http.Request, error) {
	if t.url == "" {
		return nil, fmt.Errorf("%w: empty URL", failure.ErrConfig)
	}

	var body []byte
	var contentType string
	if t.post {
		if t.multipart {
			var err error
			body, contentType, err = t.multipartBody()
			if err != nil {
				return nil, err
			}
		} else {
			body = t.fields
			contentType = formURLEncoded
		}
	}

	ctx = httptrace.WithClientTrace(ctx, t.clientTrace(body))
	var r io.Reader
	if t.post {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, t.method(), t.url, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", failure.ErrConfig, err)
	}

	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.rng.Valid() {
		req.Header.Set("Range", t.rng.HeaderValue())
	}
	if !t.modified.IsZero() {
		req.Header.Set("If-Modified-Since", t.modified.UTC().Format(http.TimeFormat))
	}

	custom := make(map[string]bool, len(t.headers))
	for _, f := range t.headers {
		switch {
		case f.value == "":
			req.Header.Del(f.name)
		case f.name == "Host":
			req.Host = f.value
		case custom[f.name]:
			req.Header.Add(f.name, f.value)
		default:
			req.Header.Set(f.name, f.value)
		}
		custom[f.name] = true
	}

	return req, nil
}

func (t *Transfer) multipartBody() ([]byte, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for _, f := range t.form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range t.form.Files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, "", fmt.Errorf("%w: form file %q: %v", failure.ErrConfig, f.Name, err)
		}
		ct := mimetype.Detect(data).String()
		if err = writePart(w, f.Name, filepath.Base(f.Path), ct, data); err != nil {
			return nil, "", err
		}
	}
	for _, d := range t.form.Data {
		if err := writePart(w, d.Name, d.FileName, octetStream, d.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return b.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writePart(w *multipart.Writer, name, fileName, contentType string, data []byte) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(name), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

func (t *Transfer) clientTrace(body []byte) *httptrace.ClientTrace {
	var out bytes.Buffer
	bodySent := false
	text := func(format string, a ...interface{}) {
		t.trace(TraceText, []byte(fmt.Sprintf(format, a...)))
	}
	return &httptrace.ClientTrace{
		DNSDone: func(info httptrace.DNSDoneInfo) {
			if info.Err != nil {
				text("Could not resolve host: %v\n", info.Err)
			}
		},
		ConnectStart: func(network, addr string) {
			text("Trying %s...\n", addr)
		},
		ConnectDone: func(network, addr string, err error) {
			if err != nil {
				text("Failed to connect to %s: %v\n", addr, err)
				return
			}
			text("Connected to %s\n", addr)
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err != nil {
				text("TLS handshake failed: %v\n", err)
				return
			}
			text("TLS connection using %s / %s\n",
				tls.VersionName(state.Version), tls.CipherSuiteName(state.CipherSuite))
		},
		GotConn: func(info httptrace.GotConnInfo) {
			if info.Reused {
				text("Re-using existing connection to %s\n", info.Conn.RemoteAddr())
			}
		},
		WroteHeaderField: func(key string, values []string) {
			for _, v := range values {
				out.WriteString(key + ": " + v + "\r\n")
			}
		},
		WroteHeaders: func() {
			out.WriteString("\r\n")
			t.trace(TraceHeaderOut, out.Bytes())
			out.Reset()
			if !bodySent && len(body) > 0 {
				bodySent = true
				t.trace(TraceDataOut, body)
			}
		},
	}
}

func (t *Transfer) readBody(resp *http.Response) error {
	wire := &countingReader{r: resp.Body}
	var r io.Reader = wire
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(wire)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		defer func() {
			_ = zr.Close()
		}()
		r = zr
		if perr := t.progress(resp.ContentLength, wire.n); perr != nil {
			return perr
		}
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			t.trace(TraceDataIn, buf[:n])
			t.writeBody(buf[:n])
			if perr := t.progress(resp.ContentLength, wire.n); perr != nil {
				return perr
			}
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
