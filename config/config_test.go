// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/timeout"
	"github.com/gogama/ajax/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	cfg, err := Load("ex.config.toml")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Origin:             "https://example.com:8443/app/",
		CrossOrigin:        false,
		Timeout:            5 * time.Second,
		HTTP2:              true,
		Compress:           false,
		InsecureSkipVerify: true,
		LogLevel:           "debug",
	}, cfg)
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected Config
		err      string
	}{
		{
			name:     "empty",
			content:  "",
			expected: Default(),
		},
		{
			name:    "timeout_ms wins",
			content: "timeout = \"1s\"\ntimeout_ms = 250\ncross_origin = true\n",
			expected: Config{
				CrossOrigin: true,
				Timeout:     250 * time.Millisecond,
				Compress:    true,
				LogLevel:    "info",
			},
		},
		{
			name:    "bad timeout",
			content: "timeout = \"soon\"\n",
			err:     "parse timeout",
		},
		{
			name:    "zero timeout",
			content: "timeout_ms = 0\n",
			err:     "timeout must be positive",
		},
		{
			name:    "unknown key",
			content: "orign = \"https://example.com\"\n",
			err:     "unknown key \"orign\"",
		},
		{
			name:    "bad syntax",
			content: "origin = \n",
			err:     "load ajax config",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			path := writeConfig(t, testCase.content)
			cfg, err := Load(path)
			if testCase.err != "" {
				assert.ErrorContains(t, err, testCase.err)
				assert.Equal(t, Config{}, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, cfg)
		})
	}
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorContains(t, err, "load ajax config")
	})
}

func TestConfig_Factory(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		f := Default().Factory()
		hf, ok := f.(*transport.HTTPFactory)
		require.True(t, ok)
		assert.Nil(t, hf.Doer)
		assert.True(t, hf.Compress)
	})
	t.Run("insecure", func(t *testing.T) {
		cfg := Default()
		cfg.InsecureSkipVerify = true
		hf := cfg.Factory().(*transport.HTTPFactory)
		client, ok := hf.Doer.(*http.Client)
		require.True(t, ok)
		assert.True(t, client.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify)
	})
}

func TestConfig_NewClient(t *testing.T) {
	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(req.Proto))
	}))
	server.EnableHTTP2 = true
	server.StartTLS()
	defer server.Close()

	path := writeConfig(t, "origin = \""+server.URL+"\"\nhttp2 = true\ninsecure_skip_verify = true\ntimeout = \"3s\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	cl, err := cfg.NewClient()
	require.NoError(t, err)
	assert.Equal(t, timeout.Fixed(3*time.Second), cl.TimeoutPolicy)
	assert.False(t, cl.CrossOrigin)

	e, err := cl.Get("/proto", nil, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, e.Wait(ctx))
	require.NotNil(t, e.Result, "failure: %v", e.Failure)
	assert.Equal(t, "HTTP/2.0", e.Result.Text())

	t.Run("no origin", func(t *testing.T) {
		_, err := Default().NewClient()
		assert.ErrorIs(t, err, request.ErrNoOrigin)
	})
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "ajax.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
