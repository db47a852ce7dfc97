// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/httpcore/failure"
	"github.com/gogama/httpcore/proxy"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
	t.Run("environment", func(t *testing.T) {
		t.Setenv("HTTPCORE_USER_AGENT", "agent/2")
		t.Setenv("HTTPCORE_CONNECT_TIMEOUT", "3s")
		t.Setenv("HTTPCORE_TIMEOUT", "1m")
		t.Setenv("HTTPCORE_NEED_LOG", "false")
		t.Setenv("HTTPCORE_PROXY_TYPE", "socks5")
		t.Setenv("HTTPCORE_PROXY_SERVER", "proxy.local")
		t.Setenv("HTTPCORE_PROXY_PORT", "1080")
		t.Setenv("HTTPCORE_PROXY_LOGIN", "user")
		t.Setenv("HTTPCORE_PROXY_PASSWORD", "secret")
		t.Setenv("HTTPCORE_LOG_LEVEL", "debug")
		t.Setenv("HTTPCORE_LOG_DEV", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "agent/2", cfg.UserAgent)
		assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.False(t, cfg.NeedLog)
		assert.Equal(t, LogConfig{Level: "debug", Development: true}, cfg.Log)

		p, err := cfg.RegistryProxy()
		require.NoError(t, err)
		assert.Equal(t, proxy.Settings{
			UseProxy: true,
			Server:   "proxy.local",
			Port:     1080,
			Type:     proxy.SOCKS5,
			NeedAuth: true,
			Login:    "user",
			Password: "secret",
		}, p)
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("HTTPCORE_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("bad proxy type", func(t *testing.T) {
		t.Setenv("HTTPCORE_PROXY_TYPE", "carrier-pigeon")
		_, err := Load()
		assert.ErrorIs(t, err, failure.ErrConfig)
	})
	t.Run("empty user agent", func(t *testing.T) {
		t.Setenv("HTTPCORE_USER_AGENT", "")
		_, err := Load()
		assert.ErrorIs(t, err, failure.ErrConfig)
	})
}

func TestNetwork_Validate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.UserAgent = ""
	assert.ErrorIs(t, cfg.Validate(), failure.ErrConfig)

	cfg = Default()
	cfg.Timeout = -time.Second
	assert.ErrorIs(t, cfg.Validate(), failure.ErrConfig)

	cfg = Default()
	cfg.Proxy = ProxyConfig{Type: "http", Server: "p", Port: 99999}
	assert.ErrorIs(t, cfg.Validate(), failure.ErrConfig)
}

func TestNetwork_RegistryProxy(t *testing.T) {
	testCases := []struct {
		name string
		cfg  ProxyConfig
		want proxy.Settings
	}{
		{"none", ProxyConfig{Type: "none", Server: "p"}, proxy.Settings{Type: proxy.None}},
		{"auto", ProxyConfig{Type: "auto", Server: "p"}, proxy.Settings{Type: proxy.None}},
		{"no server", ProxyConfig{Type: "http"}, proxy.Settings{Type: proxy.None}},
		{"http no auth", ProxyConfig{Type: "HTTP", Server: "p", Port: 8080},
			proxy.Settings{UseProxy: true, Type: proxy.HTTP, Server: "p", Port: 8080}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := Default()
			cfg.Proxy = testCase.cfg
			got, err := cfg.RegistryProxy()
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestNetwork_Logger(t *testing.T) {
	cfg := Default()
	l, err := cfg.Logger()
	require.NoError(t, err)
	assert.NotNil(t, l)

	cfg.Log.Level = "shouty"
	_, err = cfg.Logger()
	assert.Error(t, err)
}
