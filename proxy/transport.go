// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package proxy

import (
	"fmt"
	"net"
	"net/http"

	xproxy "golang.org/x/net/proxy"

	"github.com/gogama/httpcore/failure"
)

// Apply routes t through the proxy described by s. Connections to the
// proxy, and direct connections, are made with base.
//
// HTTP and HTTPS proxies are set on t.Proxy. SOCKS5 proxies replace
// t.DialContext with a SOCKS5 dialer layered over base.
func Apply(t *http.Transport, base *net.Dialer, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	t.Proxy = nil
	t.DialContext = base.DialContext

	if !s.Enabled() {
		return nil
	}

	switch s.Type {
	case HTTP, HTTPS:
		t.Proxy = http.ProxyURL(s.URL())
	case SOCKS5:
		var auth *xproxy.Auth
		if s.NeedAuth {
			auth = &xproxy.Auth{User: s.Login, Password: s.Password}
		}
		d, err := xproxy.SOCKS5("tcp", s.Address(), auth, base)
		if err != nil {
			return fmt.Errorf("%w: %v", failure.ErrConfig, err)
		}
		cd, ok := d.(xproxy.ContextDialer)
		if !ok {
			return fmt.Errorf("%w: socks5 dialer lacks DialContext", failure.ErrConfig)
		}
		t.DialContext = cd.DialContext
	}

	return nil
}
