// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/response"
	"github.com/gogama/ajax/timeout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	timeoutErr := &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}
	decodeErr := &response.DecodeError{DataType: response.JSON, Err: errors.New("eof")}
	testCases := []struct {
		name     string
		failure  *request.Failure
		expected string
	}{
		{"success", nil, "success"},
		{"status", &request.Failure{Status: 500}, "failure"},
		{"timeout", &request.Failure{Err: timeoutErr}, "timeout"},
		{"decode", &request.Failure{Status: 200, Err: decodeErr}, "decode_error"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e := &request.Execution{Failure: testCase.failure}
			assert.Equal(t, testCase.expected, Outcome(e))
		})
	}
}

func TestLogger(t *testing.T) {
	testCases := []struct {
		name    string
		evt     ajax.Event
		e       *request.Execution
		level   string
		message string
	}{
		{
			name:    "success",
			evt:     ajax.AfterDispatchEnd,
			e:       &request.Execution{Method: "GET", URL: "http://a/b", Status: 200, Result: response.NewText("ok")},
			level:   "info",
			message: "ajax_request",
		},
		{
			name:    "client error",
			evt:     ajax.AfterDispatchEnd,
			e:       &request.Execution{Method: "POST", URL: "http://a/b", Status: 404, Failure: &request.Failure{Status: 404}},
			level:   "warn",
			message: "ajax_request",
		},
		{
			name:    "server error",
			evt:     ajax.AfterDispatchEnd,
			e:       &request.Execution{Method: "PUT", URL: "http://a/b", Status: 502, Failure: &request.Failure{Status: 502}},
			level:   "error",
			message: "ajax_request",
		},
		{
			name:    "no response",
			evt:     ajax.AfterDispatchEnd,
			e:       &request.Execution{Method: "GET", URL: "http://a/b", Failure: &request.Failure{Err: errors.New("refused")}},
			level:   "error",
			message: "ajax_request",
		},
		{
			name:    "timeout",
			evt:     ajax.AfterTimeout,
			e:       &request.Execution{Method: "DELETE", URL: "http://a/b"},
			level:   "warn",
			message: "ajax_timeout",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := Logger(zerolog.New(&buf))
			h.Handle(testCase.evt, testCase.e)
			records := decodeRecords(t, &buf)
			require.Len(t, records, 1)
			assert.Equal(t, testCase.level, records[0]["level"])
			assert.Equal(t, testCase.message, records[0]["message"])
			assert.Equal(t, testCase.e.Method, records[0]["method"])
			assert.Equal(t, testCase.e.URL, records[0]["url"])
		})
	}
	t.Run("ignored events", func(t *testing.T) {
		var buf bytes.Buffer
		h := Logger(zerolog.New(&buf))
		h.Handle(ajax.BeforeDispatch, &request.Execution{})
		h.Handle(ajax.BeforeSend, &request.Execution{})
		h.Handle(ajax.AfterComplete, &request.Execution{})
		assert.Equal(t, 0, buf.Len())
	})
}

func TestMetrics(t *testing.T) {
	t.Run("register", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewMetrics(reg, "test")
		require.NoError(t, err)
		_, err = NewMetrics(reg, "test")
		var are prometheus.AlreadyRegisteredError
		assert.ErrorAs(t, err, &are)
	})
	t.Run("Handle", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m, err := NewMetrics(reg, "test")
		require.NoError(t, err)
		start := time.Now()
		ok := &request.Execution{Method: "GET", Status: 200, Start: start, End: start.Add(time.Second)}
		bad := &request.Execution{Method: "GET", Status: 500, Start: start, End: start.Add(time.Second), Failure: &request.Failure{Status: 500}}
		m.Handle(ajax.BeforeDispatch, ok)
		m.Handle(ajax.AfterDispatchEnd, ok)
		m.Handle(ajax.AfterDispatchEnd, ok)
		m.Handle(ajax.AfterDispatchEnd, bad)
		m.Handle(ajax.AfterTimeout, bad)
		assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "200", "success")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "500", "failure")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.timeouts.WithLabelValues("GET")))
		assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
	})
}

func TestInstall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if d, err := time.ParseDuration(req.URL.Query().Get("pause")); err == nil {
			select {
			case <-time.After(d):
			case <-req.Context().Done():
				return
			}
		}
		status, _ := strconv.Atoi(req.URL.Query().Get("status"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte("body"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	var mu sync.Mutex
	logger := zerolog.New(&lockedWriter{mu: &mu, w: &buf})
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg, "install")
	require.NoError(t, err)
	g := &ajax.HandlerGroup{}
	InstallLogger(g, logger)
	m.Install(g)

	cl, err := ajax.New(nil, false, server.URL)
	require.NoError(t, err)
	cl.Handlers = g
	cl.TimeoutPolicy = timeout.Fixed(100 * time.Millisecond)

	for _, path := range []string{"/?status=200", "/?status=404", "/?status=200&pause=5s"} {
		e, err := cl.Get(path, nil, nil)
		require.NoError(t, err)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		require.NoError(t, e.Wait(ctx))
		cancel()
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "200", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "404", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "0", "timeout")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.timeouts.WithLabelValues("GET")))

	mu.Lock()
	defer mu.Unlock()
	records := decodeRecords(t, &buf)
	var messages []string
	for _, r := range records {
		messages = append(messages, r["message"].(string))
	}
	assert.Equal(t, []string{"ajax_request", "ajax_request", "ajax_timeout", "ajax_request"}, messages)
}

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var records []map[string]interface{}
	s := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for s.Scan() {
		var r map[string]interface{}
		require.NoError(t, json.Unmarshal(s.Bytes(), &r))
		records = append(records, r)
	}
	return records
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
