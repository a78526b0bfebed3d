// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		raw   string
		level zerolog.Level
		ok    bool
	}{
		{"", zerolog.InfoLevel, false},
		{"bogus", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{" Debug ", zerolog.DebugLevel, true},
		{"INFO", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.raw, func(t *testing.T) {
			level, ok := ParseLevel(testCase.raw)
			assert.Equal(t, testCase.level, level)
			assert.Equal(t, testCase.ok, ok)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("runtime defaults", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		t.Setenv(EnvLogTimestamp, "")
		t.Setenv(EnvLogNoColor, "")
		cfg := Resolve(ProfileRuntime, "")
		assert.Equal(t, zerolog.InfoLevel, cfg.Level)
		assert.True(t, cfg.Timestamp)
		assert.False(t, cfg.NoColor)
	})
	t.Run("test defaults", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		cfg := Resolve(ProfileTest, "")
		assert.Equal(t, zerolog.DebugLevel, cfg.Level)
		assert.False(t, cfg.Timestamp)
		assert.True(t, cfg.NoColor)
	})
	t.Run("level argument", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		cfg := Resolve(ProfileRuntime, "warn")
		assert.Equal(t, zerolog.WarnLevel, cfg.Level)
	})
	t.Run("env wins", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "error")
		t.Setenv(EnvLogTimestamp, "false")
		t.Setenv(EnvLogNoColor, "1")
		cfg := Resolve(ProfileRuntime, "debug")
		assert.Equal(t, zerolog.ErrorLevel, cfg.Level)
		assert.False(t, cfg.Timestamp)
		assert.True(t, cfg.NoColor)
	})
	t.Run("bad env ignored", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "loud")
		t.Setenv(EnvLogTimestamp, "maybe")
		cfg := Resolve(ProfileRuntime, "")
		assert.Equal(t, zerolog.InfoLevel, cfg.Level)
		assert.True(t, cfg.Timestamp)
	})
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.WarnLevel, NoColor: true, Out: &buf})
	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")
}
