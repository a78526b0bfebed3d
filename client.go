// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/response"
	"github.com/gogama/ajax/timeout"
	"github.com/gogama/ajax/transport"
	"github.com/rs/zerolog"
)

const (
	requestedWithHeader = "X-Requested-With"
	requestedWithValue  = "XMLHttpRequest"
	formContentType     = "application/x-www-form-urlencoded"
)

var (
	emptyHandlers = HandlerGroup{}
	nopLogger     = zerolog.Nop()
)

// A Client dispatches request descriptors and delivers each outcome to
// exactly one of the descriptor's success or failure callbacks.
//
// A Client is only a configuration holder. Every dispatch acquires its
// own transport handle from Transport, so a Client is safe for
// concurrent use by multiple goroutines and may have any number of
// requests in flight at once. Client's fields should not be changed
// once it is in use, except through SetProgress.
//
// The zero value Client uses transport.Default as the transport,
// timeout.DefaultPolicy as the timeout policy and no event handlers.
// Because it has no origin, the zero value can only dispatch
// cross-origin requests unless CrossOrigin is set.
type Client struct {
	// CrossOrigin, when true, makes the client use every descriptor
	// URL verbatim. When false, descriptor URLs are rewritten against
	// Origin unless the descriptor itself is marked cross-origin.
	CrossOrigin bool

	// Origin is the scheme, host and optional port which same-origin
	// URLs are resolved against. A path, if present, is the base for
	// relative descriptor URLs.
	Origin *url.URL

	// Transport supplies a fresh transport handle for every dispatch.
	// If nil, transport.Default is used.
	Transport transport.Factory

	// TimeoutPolicy decides how long a dispatch may run before the
	// transport is aborted. If nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	// Handlers is the event handler group invoked at each step of a
	// dispatch. If nil, no handlers are invoked.
	Handlers *HandlerGroup

	// Logger receives debug records for each dispatch and a warning
	// for each timeout. If nil, nothing is logged.
	Logger *zerolog.Logger

	mu       sync.Mutex
	progress transport.ProgressFunc
}

// New returns a Client using the transport factory f.
//
// If f is nil, transport.Default is used. New returns an error wrapping
// ErrTransportUnavailable if f reports it cannot supply handles.
//
// When crossOrigin is false, origin must be an absolute http or https
// URL, such as "https://example.com:8443", and descriptor URLs are
// resolved against it. When crossOrigin is true, origin may be empty.
func New(f transport.Factory, crossOrigin bool, origin string) (*Client, error) {
	if f == nil {
		f = transport.Default
	}
	if err := f.Available(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
	}

	c := &Client{
		CrossOrigin: crossOrigin,
		Transport:   f,
	}

	if origin == "" {
		if !crossOrigin {
			return nil, ErrNoOrigin
		}
		return c, nil
	}

	u, err := request.ParseOrigin(origin)
	if err != nil {
		return nil, err
	}
	c.Origin = u
	return c, nil
}

// SetProgress installs the default progress observer, replacing any
// previous one. It applies to dispatches started after it returns, and
// is overridden by a descriptor's own Progress observer. A nil fn
// removes the default observer.
func (c *Client) SetProgress(fn transport.ProgressFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = fn
}

// Request dispatches the request described by d.
//
// Request returns an error, and invokes neither callback, if the
// descriptor is invalid (ErrUnsupportedMethod, ErrUnsupportedData,
// ErrNoOrigin), no transport handle can be acquired
// (ErrTransportUnavailable), or the transport rejects the request
// before it is sent.
//
// Otherwise Request returns the execution for the dispatch. Exactly
// one of d.Success or d.Failure is invoked, exactly once, when the
// transport reaches its terminal state or the dispatch times out. For
// asynchronous descriptors this happens on another goroutine and
// Request returns immediately; use the execution's Done or Wait to
// block. For synchronous descriptors Request returns only after the
// callback has run.
//
// The execution's fields other than Descriptor, Method, URL, Body and
// Header must not be read until it is done.
func (c *Client) Request(d *request.Descriptor) (*request.Execution, error) {
	if d == nil {
		panic("ajax: nil descriptor")
	}

	method, ok := request.NormalizeMethod(d.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, d.Method)
	}

	body, hasBody, err := request.EncodeData(d.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedData, err)
	}

	u, err := request.Resolve(c.Origin, d.URL, c.CrossOrigin || d.CrossOrigin)
	if err != nil {
		return nil, err
	}

	h, err := c.transport().New()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
	}

	e := &request.Execution{
		Descriptor: d,
		Method:     method,
		URL:        u,
		Body:       body,
		HasBody:    hasBody,
		Header:     requestHeader(method, d.Header),
	}
	x := &dispatch{
		handle:   h,
		exec:     e,
		handlers: c.handlers(),
		logger:   c.logger(),
	}

	h.OnReadyStateChange(x.onStateChange)
	if p := c.progressFor(d); p != nil {
		h.OnProgress(p)
	}

	if err = h.Open(method, u, !d.Sync); err != nil {
		return nil, err
	}

	e.Start = time.Now()
	x.logger.Debug().
		Str("method", method).
		Str("url", u).
		Bool("sync", d.Sync).
		Msg("ajax dispatch")
	x.handlers.run(BeforeDispatch, e)
	x.handlers.run(BeforeSend, e)

	for name, values := range e.Header {
		if err = h.SetRequestHeader(name, strings.Join(values, ", ")); err != nil {
			x.abandon()
			return nil, err
		}
	}

	limit := c.timeoutPolicy().Timeout(e)
	x.mu.Lock()
	x.timeoutDone = make(chan struct{})
	x.timer = time.AfterFunc(limit, x.onTimeout)
	x.mu.Unlock()

	var payload []byte
	if request.HasFormBody(method) {
		payload = []byte(body)
	}

	if err = h.Send(payload); err != nil {
		if x.timedOut() {
			x.complete()
			return e, nil
		}
		x.abandon()
		return nil, err
	}

	return e, nil
}

// Get dispatches an asynchronous GET for url whose response body is
// delivered as text.
func (c *Client) Get(url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error) {
	return Get(c, url, success, failure)
}

// GetJSON dispatches an asynchronous GET for url whose response body
// is decoded as JSON.
func (c *Client) GetJSON(url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error) {
	return GetJSON(c, url, success, failure)
}

// Post dispatches an asynchronous POST of the form-encoded data to url.
func (c *Client) Post(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return Post(c, url, success, failure, data)
}

// Put dispatches an asynchronous PUT of the form-encoded data to url.
func (c *Client) Put(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return Put(c, url, success, failure, data)
}

// Delete dispatches an asynchronous DELETE to url, with the
// form-encoded data as the body.
func (c *Client) Delete(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return Delete(c, url, success, failure, data)
}

func (c *Client) transport() transport.Factory {
	if c.Transport != nil {
		return c.Transport
	}
	return transport.Default
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.TimeoutPolicy != nil {
		return c.TimeoutPolicy
	}
	return timeout.DefaultPolicy
}

func (c *Client) handlers() *HandlerGroup {
	if c.Handlers != nil {
		return c.Handlers
	}
	return &emptyHandlers
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return &nopLogger
}

func (c *Client) progressFor(d *request.Descriptor) transport.ProgressFunc {
	if d.Progress != nil {
		return d.Progress
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

func requestHeader(method string, extra http.Header) http.Header {
	h := make(http.Header, len(extra)+2)
	h[requestedWithHeader] = []string{requestedWithValue}
	if request.HasFormBody(method) {
		h["Content-Type"] = []string{formContentType}
	}
	for name, values := range extra {
		name = http.CanonicalHeaderKey(name)
		if name == requestedWithHeader || len(values) == 0 {
			continue
		}
		h[name] = append([]string(nil), values...)
	}
	return h
}

// A dispatch drives one transport handle through one exchange and
// guarantees its outcome is reported once.
type dispatch struct {
	handle   transport.Handle
	exec     *request.Execution
	handlers *HandlerGroup
	logger   *zerolog.Logger

	mu          sync.Mutex
	timer       *time.Timer
	timeoutDone chan struct{} // closed once AfterTimeout handlers return
	expired     bool
	finished    bool
}

// claim marks the dispatch finished and stops the timer. It reports
// false if the dispatch was already finished. If the timeout has
// already fired, claim also returns a channel which is closed when
// the AfterTimeout handlers have returned.
func (x *dispatch) claim() (<-chan struct{}, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.finished {
		return nil, false
	}
	x.finished = true
	if x.timer != nil {
		x.timer.Stop()
	}
	if x.expired {
		return x.timeoutDone, true
	}
	return nil, true
}

func (x *dispatch) timedOut() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.expired
}

func (x *dispatch) onTimeout() {
	x.mu.Lock()
	if x.finished {
		x.mu.Unlock()
		return
	}
	x.expired = true
	x.exec.TimedOut = true
	x.mu.Unlock()

	x.logger.Warn().
		Str("method", x.exec.Method).
		Str("url", x.exec.URL).
		Dur("elapsed", time.Since(x.exec.Start)).
		Msg("ajax dispatch timed out, aborting")
	func() {
		defer close(x.timeoutDone)
		x.handlers.run(AfterTimeout, x.exec)
	}()
	x.handle.Abort()
}

func (x *dispatch) onStateChange() {
	if x.handle.ReadyState() != transport.Done {
		return
	}
	x.complete()
}

// abandon ends a dispatch which failed before it was sent. No event
// handler or callback runs.
func (x *dispatch) abandon() {
	if _, ok := x.claim(); ok {
		x.exec.Finish()
	}
}

func (x *dispatch) complete() {
	pending, ok := x.claim()
	if !ok {
		return
	}
	if pending != nil {
		<-pending
	}

	e := x.exec
	h := x.handle
	e.Status = h.Status()
	e.ResponseHeader = h.Header()
	e.ResponseBody = h.Body()
	e.Err = h.Err()
	if e.TimedOut && (e.Err != nil || e.Status == 0) {
		e.Err = timeoutErr(e, e.Err)
	}

	defer func() {
		e.End = time.Now()
		x.handlers.run(AfterDispatchEnd, e)
		e.Finish()
	}()

	x.handlers.run(AfterComplete, e)

	d := e.Descriptor
	contentType := ""
	if e.ResponseHeader != nil {
		contentType = e.ResponseHeader.Get("Content-Type")
	}

	var (
		v   *response.Value
		f   *request.Failure
		err error
	)
	switch {
	case e.Status >= 200 && e.Status < 300:
		v, err = response.Decode(d.DataType, e.ResponseBody, contentType)
		if err != nil {
			f = &request.Failure{Status: e.Status, Raw: e.ResponseBody, Err: err}
		}
	case len(e.ResponseBody) > 0:
		var body *response.Value
		body, err = response.Decode(d.DataType, e.ResponseBody, contentType)
		if err != nil {
			f = &request.Failure{Status: e.Status, Raw: e.ResponseBody, Err: err}
		} else {
			f = &request.Failure{Status: e.Status, Body: body, Raw: e.ResponseBody, Err: e.Err}
		}
	default:
		f = &request.Failure{Status: e.Status, Err: e.Err}
	}

	if f != nil {
		e.Failure = f
		x.logger.Debug().
			Str("method", e.Method).
			Str("url", e.URL).
			Int("status", e.Status).
			Dur("duration", time.Since(e.Start)).
			Err(f.Err).
			Msg("ajax dispatch failed")
		if d.Failure != nil {
			d.Failure(f)
		}
		return
	}

	e.Result = v
	x.logger.Debug().
		Str("method", e.Method).
		Str("url", e.URL).
		Int("status", e.Status).
		Dur("duration", time.Since(e.Start)).
		Msg("ajax dispatch succeeded")
	if d.Success != nil {
		d.Success(v)
	}
}

// timeoutErr marks err as caused by the dispatch timeout, keeping it a
// *url.Error as the transport produced it.
func timeoutErr(e *request.Execution, err error) error {
	if ue, ok := err.(*url.Error); ok {
		return &url.Error{Op: ue.Op, URL: ue.URL, Err: &timeoutError{cause: ue.Err}}
	}
	op := strings.ToUpper(e.Method[:1]) + strings.ToLower(e.Method[1:])
	return &url.Error{Op: op, URL: e.URL, Err: &timeoutError{cause: err}}
}
