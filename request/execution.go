// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gogama/ajax/response"
	"github.com/gogama/ajax/transient"
)

// An Execution represents the state of a single Descriptor dispatch.
//
// The client creates an Execution when a Descriptor is dispatched,
// updates it as the request progresses, and finishes it after the
// outcome callback has run. Event handlers and timeout policies may
// store values on it with SetValue, but should otherwise treat its
// exported fields as read-only.
type Execution struct {
	// Descriptor is the descriptor being dispatched. It is never nil.
	Descriptor *Descriptor

	// Method is the normalized request method.
	Method string

	// URL is the resolved request URL.
	URL string

	// Body is the encoded request body. HasBody is false if there is
	// no body, which is distinct from an empty Body.
	Body    string
	HasBody bool

	// Header holds the request headers set on the transport.
	Header http.Header

	// Start is the time the dispatch started. It is zero until the
	// transport has been acquired.
	Start time.Time

	// End is the time the dispatch ended, after the outcome callback
	// returned. It is zero while the dispatch is in flight.
	End time.Time

	// Status is the HTTP status code of the response, or zero if there
	// was no response or the request is still in flight.
	Status int

	// ResponseHeader holds the response headers, or nil if there was
	// no response.
	ResponseHeader http.Header

	// ResponseBody is the complete response body.
	ResponseBody []byte

	// Err is the transport error which ended the request, if any.
	// Whenever Err is non-nil it has the type *url.Error.
	Err error

	// TimedOut is set when the dispatch timeout fired and aborted the
	// transport.
	TimedOut bool

	// Result is the decoded body handed to the success callback. It is
	// nil unless the request succeeded.
	Result *response.Value

	// Failure is the value handed to the failure callback. It is nil
	// unless the request failed.
	Failure *Failure

	data     context.Context
	initOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once
}

// Succeeded reports whether the dispatch ended with the success
// callback.
func (e *Execution) Succeeded() bool {
	return e.Result != nil
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Now().Sub(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether the dispatch timed out, either because the
// dispatch timeout fired or because Err reports a timeout of its own.
func (e *Execution) Timeout() bool {
	return e.TimedOut || transient.Categorize(e.Err) == transient.Timeout
}

// Done returns a channel which is closed when the execution ends.
func (e *Execution) Done() <-chan struct{} {
	e.init()
	return e.done
}

// Wait blocks until the execution ends, or ctx is done, whichever
// happens first. It returns ctx.Err() in the latter case.
func (e *Execution) Wait(ctx context.Context) error {
	select {
	case <-e.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Finish releases anyone waiting on Done, setting the end time first if
// it is not already set. It is called by the client once the outcome
// callback has returned; calls after the first have no effect.
func (e *Execution) Finish() {
	e.init()
	e.doneOnce.Do(func() {
		if !e.Ended() {
			e.End = time.Now()
		}
		close(e.done)
	})
}

func (e *Execution) init() {
	e.initOnce.Do(func() {
		e.done = make(chan struct{})
	})
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
