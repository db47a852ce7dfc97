// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package proxy

import (
	"net/url"
	"sync/atomic"

	"golang.org/x/net/http/httpproxy"
)

// A Source resolves Auto proxy settings.
//
// Implementations of Source must be safe for concurrent use by multiple
// goroutines.
type Source interface {
	// Registry returns the proxy the application has configured.
	Registry() Settings
	// Auto returns the proxy to try first for an Auto request to the
	// target URL.
	Auto(target string) Settings
	// Switch is called after a fallback attempt through the registry
	// proxy succeeded. The Source should prefer the registry proxy for
	// future Auto requests.
	Switch()
}

// SystemSource is a Source whose registry proxy is fixed at construction
// time and whose auto proxy is detected, per target URL, from the
// HTTPS_PROXY, HTTP_PROXY and NO_PROXY environment variables (and their
// lowercase versions).
type SystemSource struct {
	registry Settings
	env      func() *httpproxy.Config
	switched atomic.Bool
}

// NewSystemSource returns a SystemSource with the given registry proxy.
// Registry settings of Type Auto are treated as a direct connection.
func NewSystemSource(registry Settings) *SystemSource {
	if registry.Type == Auto {
		registry.Type = None
	}
	return &SystemSource{
		registry: registry,
		env:      httpproxy.FromEnvironment,
	}
}

// Registry returns the registry proxy.
func (s *SystemSource) Registry() Settings {
	return s.registry
}

// Auto returns the environment proxy for target, or the registry proxy
// once Switch has been called.
func (s *SystemSource) Auto(target string) Settings {
	if s.switched.Load() {
		return s.registry
	}
	return FromEnvironment(s.env(), target)
}

// Switch makes Auto return the registry proxy from now on.
func (s *SystemSource) Switch() {
	s.switched.Store(true)
}

// Switched reports whether Switch has been called.
func (s *SystemSource) Switched() bool {
	return s.switched.Load()
}

// FromEnvironment returns the proxy cfg selects for the target URL:
// HTTPS_PROXY for https targets, HTTP_PROXY for http targets, and a
// direct connection for hosts matched by NO_PROXY, for localhost and
// for loopback addresses. Unparseable values yield direct Settings.
func FromEnvironment(cfg *httpproxy.Config, target string) Settings {
	direct := Settings{Type: None}
	if cfg == nil {
		return direct
	}
	u, err := url.Parse(target)
	if err != nil {
		return direct
	}
	p, err := cfg.ProxyFunc()(u)
	if err != nil || p == nil {
		return direct
	}
	s, err := FromURL(p.String())
	if err != nil {
		return direct
	}
	return s
}

// StaticSource is a Source returning fixed settings. It is mostly
// useful in tests and in applications with no environment proxy.
type StaticSource struct {
	RegistrySettings Settings
	AutoSettings     Settings
	switches         atomic.Int32
}

// Registry returns s.RegistrySettings.
func (s *StaticSource) Registry() Settings {
	return s.RegistrySettings
}

// Auto returns s.AutoSettings whatever the target.
func (s *StaticSource) Auto(string) Settings {
	return s.AutoSettings
}

// Switch counts the call. It does not change what Auto returns.
func (s *StaticSource) Switch() {
	s.switches.Add(1)
}

// Switches returns the number of times Switch was called.
func (s *StaticSource) Switches() int {
	return int(s.switches.Load())
}
