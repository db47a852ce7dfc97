// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gogama/httpcore/failure"
)

// Params is a set of URL-encoded POST parameters. Keys are unique. An
// empty value means "key with no value" and is encoded without '='.
type Params map[string]string

// Encode encodes p as "k1=v1&k2&k3=v3", escaping keys and values and
// sorting by key.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		if v := p[k]; v != "" {
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// Clone returns a copy of p.
func (p Params) Clone() Params {
	q := make(Params, len(p))
	for k, v := range p {
		q[k] = v
	}
	return q
}

// ParseParams parses an encoded parameter string as produced by
// Params.Encode. A later duplicate key replaces an earlier one.
func ParseParams(s string) (Params, error) {
	p := make(Params)
	if s == "" {
		return p, nil
	}
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("%w: bad parameter key %q: %v", failure.ErrConfig, k, err)
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("%w: bad parameter value %q: %v", failure.ErrConfig, v, err)
		}
		p[key] = val
	}
	return p, nil
}
