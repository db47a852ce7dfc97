// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bufio"
	"bytes"
	"net/http"
	"net/textproto"
)

// A Result is the outcome of one successful execution.
type Result struct {
	// StatusCode is the status code of the final response.
	StatusCode int
	// Body is the decoded response body.
	Body []byte
	// Header holds the raw response header blocks as received,
	// including the status line of each response. When redirects are
	// followed there is one block per response.
	Header []byte
}

// HTTPHeader parses the last header block in r.Header. It returns nil
// if there is no parseable block.
func (r *Result) HTTPHeader() http.Header {
	if r == nil || len(r.Header) == 0 {
		return nil
	}
	raw := bytes.TrimRight(r.Header, "\r\n")
	if i := bytes.LastIndex(raw, []byte("\r\n\r\n")); i >= 0 {
		raw = raw[i+4:]
	}
	raw = append(append([]byte(nil), raw...), "\r\n\r\n"...)
	tp := textproto.NewReader(bufio.NewReader(bytes.NewReader(raw)))
	if _, err := tp.ReadLine(); err != nil {
		return nil
	}
	mh, err := tp.ReadMIMEHeader()
	if err != nil && len(mh) == 0 {
		return nil
	}
	return http.Header(mh)
}
