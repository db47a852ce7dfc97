// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the networking configuration from HTTPCORE_*
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/gogama/httpcore/failure"
	"github.com/gogama/httpcore/netlog"
	"github.com/gogama/httpcore/proxy"
	"github.com/gogama/httpcore/request"
)

// Prefix is the environment variable prefix.
const Prefix = "HTTPCORE"

// DefaultUserAgent is the user agent sent when none is configured.
const DefaultUserAgent = "httpcore/1.0"

// Network holds the networking configuration.
type Network struct {
	UserAgent      string        `envconfig:"USER_AGENT" default:"httpcore/1.0"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"15s"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"15s"`
	NeedLog        bool          `envconfig:"NEED_LOG" default:"true"`
	Proxy          ProxyConfig   `envconfig:"PROXY"`
	Log            LogConfig     `envconfig:"LOG"`
}

// ProxyConfig holds the registry proxy, used when requests are not
// given an explicit proxy and the automatic proxy fails.
type ProxyConfig struct {
	Type     string `envconfig:"TYPE" default:"none"`
	Server   string `envconfig:"SERVER"`
	Port     int    `envconfig:"PORT"`
	Login    string `envconfig:"LOGIN"`
	Password string `envconfig:"PASSWORD"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Network, error) {
	var cfg Network
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Network {
	return &Network{
		UserAgent:      DefaultUserAgent,
		ConnectTimeout: request.DefaultConnectTimeout,
		Timeout:        request.DefaultTimeout,
		NeedLog:        true,
		Proxy: ProxyConfig{
			Type: proxy.None.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks cfg for values no request could use.
func (cfg *Network) Validate() error {
	if cfg.UserAgent == "" {
		return fmt.Errorf("%w: empty user agent", failure.ErrConfig)
	}
	if cfg.ConnectTimeout < 0 || cfg.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", failure.ErrConfig)
	}
	_, err := cfg.RegistryProxy()
	return err
}

// RegistryProxy returns the configured registry proxy. An empty server
// or a "none" type yields a direct connection.
func (cfg *Network) RegistryProxy() (proxy.Settings, error) {
	t, err := proxy.ParseType(cfg.Proxy.Type)
	if err != nil {
		return proxy.Settings{}, err
	}
	if t == proxy.Auto || t == proxy.None || cfg.Proxy.Server == "" {
		return proxy.Settings{Type: proxy.None}, nil
	}
	s := proxy.Settings{
		UseProxy: true,
		Server:   cfg.Proxy.Server,
		Port:     cfg.Proxy.Port,
		Type:     t,
		NeedAuth: cfg.Proxy.Login != "",
		Login:    cfg.Proxy.Login,
		Password: cfg.Proxy.Password,
	}
	return s, s.Validate()
}

// Logger builds the logger described by the Log section.
func (cfg *Network) Logger() (*zap.Logger, error) {
	return netlog.NewLogger(cfg.Log.Level, cfg.Log.Development)
}
