// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netlog

import (
	"bytes"
	"net/textproto"
)

// A Transform rewrites a diagnostic log in place before it reaches the
// sink.
type Transform func(buf *bytes.Buffer)

// Identity leaves the log unchanged.
func Identity(*bytes.Buffer) {}

// Chain returns a Transform applying each non-nil transform in order.
func Chain(ts ...Transform) Transform {
	return func(buf *bytes.Buffer) {
		for _, t := range ts {
			if t != nil {
				t(buf)
			}
		}
	}
}

const redacted = "[redacted]"

// RedactHeaders returns a Transform replacing the value of every log
// line of the form "Name: value" whose name is one of names. Names are
// matched case-insensitively.
func RedactHeaders(names ...string) Transform {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[textproto.CanonicalMIMEHeaderKey(n)] = true
	}
	return func(buf *bytes.Buffer) {
		if len(set) == 0 || buf.Len() == 0 {
			return
		}
		lines := bytes.SplitAfter(buf.Bytes(), []byte("\n"))
		var out bytes.Buffer
		out.Grow(buf.Len())
		for _, line := range lines {
			i := bytes.IndexByte(line, ':')
			if i <= 0 || !set[textproto.CanonicalMIMEHeaderKey(string(line[:i]))] {
				out.Write(line)
				continue
			}
			out.Write(line[:i+1])
			out.WriteString(" " + redacted)
			switch {
			case bytes.HasSuffix(line, []byte("\r\n")):
				out.WriteString("\r\n")
			case bytes.HasSuffix(line, []byte("\n")):
				out.WriteString("\n")
			}
		}
		buf.Reset()
		buf.Write(out.Bytes())
	}
}

// DefaultRedaction redacts credentials commonly found in request and
// response headers.
var DefaultRedaction = RedactHeaders("Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie")
