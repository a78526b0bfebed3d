// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads ajax client configuration from TOML files.
package config

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/timeout"
	"github.com/gogama/ajax/transport"
)

// Config describes how to build a Client.
type Config struct {
	// Origin is the origin same-origin URLs are resolved against.
	Origin string
	// CrossOrigin makes the client use URLs verbatim.
	CrossOrigin bool
	// Timeout is the dispatch timeout.
	Timeout time.Duration
	// HTTP2 selects an HTTP/2-only transport.
	HTTP2 bool
	// Compress requests gzip, deflate and brotli compressed responses.
	Compress bool
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
	// LogLevel is the default log level name.
	LogLevel string
}

type fileConfig struct {
	Origin             string `toml:"origin"`
	CrossOrigin        bool   `toml:"cross_origin"`
	Timeout            string `toml:"timeout"`
	TimeoutMS          int64  `toml:"timeout_ms"`
	HTTP2              bool   `toml:"http2"`
	Compress           bool   `toml:"compress"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
	LogLevel           string `toml:"log_level"`
}

// Default returns the configuration used for settings a file leaves
// undefined.
func Default() Config {
	return Config{
		Timeout:  timeout.DefaultTimeout,
		Compress: true,
		LogLevel: "info",
	}
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load ajax config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load ajax config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("origin") {
		cfg.Origin = strings.TrimSpace(raw.Origin)
	}

	if meta.IsDefined("cross_origin") {
		cfg.CrossOrigin = raw.CrossOrigin
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}

	if meta.IsDefined("timeout_ms") {
		cfg.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}

	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("load ajax config: timeout must be positive, got %v", cfg.Timeout)
	}

	if meta.IsDefined("http2") {
		cfg.HTTP2 = raw.HTTP2
	}

	if meta.IsDefined("compress") {
		cfg.Compress = raw.Compress
	}

	if meta.IsDefined("insecure_skip_verify") {
		cfg.InsecureSkipVerify = raw.InsecureSkipVerify
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}

// Factory returns the transport factory described by c.
func (c Config) Factory() transport.Factory {
	var tlsConfig *tls.Config
	if c.InsecureSkipVerify {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if c.HTTP2 {
		return transport.NewHTTP2Factory(tlsConfig, c.Compress)
	}

	f := &transport.HTTPFactory{Compress: c.Compress}
	if tlsConfig != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = tlsConfig
		f.Doer = &http.Client{Transport: t}
	}
	return f
}

// NewClient builds a Client from c.
func (c Config) NewClient() (*ajax.Client, error) {
	cl, err := ajax.New(c.Factory(), c.CrossOrigin, c.Origin)
	if err != nil {
		return nil, err
	}
	cl.TimeoutPolicy = timeout.Fixed(c.Timeout)
	return cl, nil
}
