// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcore

import "strings"

// A HostAliaser provides an alternate host name for a host. It returns
// host itself when there is no alias.
type HostAliaser interface {
	HostAlias(host string) string
}

// The HostAliasFunc type is an adapter to allow the use of ordinary
// functions as host aliasers.
type HostAliasFunc func(host string) string

// HostAlias calls f(host).
func (f HostAliasFunc) HostAlias(host string) string {
	return f(host)
}

// HostMap is a HostAliaser backed by a map from host to alias.
type HostMap map[string]string

// HostAlias returns the alias of host, or host if it has none.
func (m HostMap) HostAlias(host string) string {
	if alt, ok := m[host]; ok && alt != "" {
		return alt
	}
	return host
}

// ReplaceHost replaces the host of rawURL, meaning the text between
// "://" and the first following '/', '?' or ':', with its alias. The
// URL is returned unchanged if it has no "://" or the host is empty.
func ReplaceHost(rawURL string, a HostAliaser) string {
	i := strings.Index(rawURL, "://")
	if i < 0 {
		return rawURL
	}
	start := i + len("://")
	end := strings.IndexAny(rawURL[start:], "/?:")
	if end < 0 {
		end = len(rawURL)
	} else {
		end += start
	}
	host := rawURL[start:end]
	if host == "" {
		return rawURL
	}
	return rawURL[:start] + a.HostAlias(host) + rawURL[end:]
}
