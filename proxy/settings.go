// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package proxy

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/gogama/httpcore/failure"
)

// A Type identifies the kind of proxy to use.
type Type int

const (
	// Auto means the proxy is resolved by a Source rather than given by
	// the caller. It is the zero value.
	Auto Type = iota
	// None is an explicit direct connection.
	None
	// HTTP is a plain HTTP proxy.
	HTTP
	// HTTPS is an HTTP proxy reached over TLS.
	HTTPS
	// SOCKS5 is a SOCKS version 5 proxy.
	SOCKS5
)

var typeNames = []string{"auto", "none", "http", "https", "socks5"}

// String returns the lowercase name of the proxy type.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// ParseType parses a proxy type name as returned by Type.String. The
// empty string parses as Auto.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Auto, nil
	}
	for i, name := range typeNames {
		if s == name {
			return Type(i), nil
		}
	}
	return Auto, fmt.Errorf("%w: unknown proxy type %q", failure.ErrConfig, s)
}

// DefaultPort is the port value meaning "not specified". When Port
// equals DefaultPort, Server is used as is, and may carry its own port.
const DefaultPort = 0

// Settings describes one proxy configuration. Settings are immutable
// per request.
type Settings struct {
	UseProxy bool
	Server   string
	Port     int
	Type     Type
	NeedAuth bool
	Login    string
	Password string
}

// IsUser reports whether s is an explicit caller choice, as opposed to
// one a Source must resolve.
func (s Settings) IsUser() bool {
	return s.Type != Auto
}

// Enabled reports whether s routes traffic through a proxy.
func (s Settings) Enabled() bool {
	return s.UseProxy && s.Type != Auto && s.Type != None && s.Server != ""
}

// Address returns the proxy host and port in the form "host:port", or
// just the server if no port was set.
func (s Settings) Address() string {
	if s.Port == DefaultPort {
		return s.Server
	}
	return net.JoinHostPort(s.Server, strconv.Itoa(s.Port))
}

// Validate reports a failure.Config error if s is enabled but
// malformed.
func (s Settings) Validate() error {
	if !s.Enabled() {
		return nil
	}
	switch s.Type {
	case HTTP, HTTPS, SOCKS5:
	default:
		return fmt.Errorf("%w: unsupported proxy type %s", failure.ErrConfig, s.Type)
	}
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("%w: proxy port %d out of range", failure.ErrConfig, s.Port)
	}
	return nil
}

// URL returns the proxy URL for an HTTP or HTTPS proxy, with the
// credentials as user info when NeedAuth is set.
func (s Settings) URL() *url.URL {
	u := &url.URL{
		Scheme: s.Type.String(),
		Host:   s.Address(),
	}
	if s.NeedAuth {
		u.User = url.UserPassword(s.Login, s.Password)
	}
	return u
}

// String renders s for logging. The password is never included.
func (s Settings) String() string {
	if !s.Enabled() {
		return s.Type.String() + "(direct)"
	}
	if s.NeedAuth {
		return s.Type.String() + "://" + s.Login + "@" + s.Address()
	}
	return s.Type.String() + "://" + s.Address()
}

// FromURL converts a proxy URL such as "http://user:pw@host:3128" into
// Settings. A URL without a scheme is treated as an HTTP proxy. An
// empty string yields direct Settings.
func FromURL(raw string) (Settings, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Settings{Type: None}, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", failure.ErrConfig, err)
	}
	typ, err := ParseType(u.Scheme)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		UseProxy: true,
		Server:   u.Hostname(),
		Type:     typ,
	}
	if p := u.Port(); p != "" {
		s.Port, err = strconv.Atoi(p)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: bad proxy port %q", failure.ErrConfig, p)
		}
	}
	if u.User != nil {
		s.NeedAuth = true
		s.Login = u.User.Username()
		s.Password, _ = u.User.Password()
	}
	return s, s.Validate()
}
