// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidState is returned when a Handle method is called in a
// ready state which does not allow it, for example Send before Open.
var ErrInvalidState = errors.New("ajax/transport: invalid state")

// A ReadyState is the stage a Handle has reached in its exchange.
type ReadyState int

const (
	// Unsent means the handle has not been opened.
	Unsent ReadyState = iota
	// Opened means Open has been called.
	Opened
	// HeadersReceived means the response status and headers are
	// available.
	HeadersReceived
	// Loading means the response body is being received.
	Loading
	// Done means the exchange is over: either the whole response was
	// received, or the exchange failed or was aborted. A handle which
	// reaches Done reports no further ready-state changes for the
	// exchange.
	Done
)

var readyStateNames = []string{
	"Unsent",
	"Opened",
	"HeadersReceived",
	"Loading",
	"Done",
}

// String returns the name of the ready state.
func (s ReadyState) String() string {
	if s < 0 || int(s) >= len(readyStateNames) {
		return fmt.Sprintf("ReadyState(%d)", int(s))
	}
	return readyStateNames[s]
}

// Progress reports how much of a response body has been received.
type Progress struct {
	// Loaded is the number of body bytes received so far.
	Loaded int64
	// Total is the expected body length. It is only meaningful when
	// LengthComputable is true.
	Total int64
	// LengthComputable is true when the server declared the body
	// length and the body is not being decompressed on the fly.
	LengthComputable bool
}

// A ProgressFunc observes response body progress.
type ProgressFunc func(p Progress)

// A Handle is a transport handle which mediates one asynchronous
// network exchange at a time.
//
// Observers are invoked from whichever goroutine advances the
// exchange, and must not call back into the Handle's Open or Send.
type Handle interface {
	// Open prepares the handle for an exchange with the given method
	// and absolute URL. When async is false, Send blocks until the
	// exchange is Done.
	Open(method, url string, async bool) error
	// SetRequestHeader sets a request header. It must be called after
	// Open and before Send.
	SetRequestHeader(name, value string) error
	// Send starts the exchange. A nil body sends no body; a non-nil
	// empty body sends an empty one.
	Send(body []byte) error
	// Abort cancels the exchange in flight. If the exchange was sent,
	// the handle moves to Done with a zero status and empty body.
	Abort()
	// OnReadyStateChange installs the ready-state observer, replacing
	// any previous one.
	OnReadyStateChange(fn func())
	// OnProgress installs the progress observer, replacing any
	// previous one. A nil fn removes it.
	OnProgress(fn ProgressFunc)
	// ReadyState returns the current ready state.
	ReadyState() ReadyState
	// Status returns the response status code, or zero if there is no
	// response.
	Status() int
	// Header returns the response headers, or nil.
	Header() http.Header
	// Body returns the response body received so far.
	Body() []byte
	// Err returns the error which ended the exchange, if any. Whenever
	// it is non-nil, it has the type *url.Error.
	Err() error
}

// A Factory acquires transport handles.
//
// Implementations of Factory must be safe for concurrent use by
// multiple goroutines.
type Factory interface {
	// Available returns a non-nil error if the factory cannot supply
	// handles in the current environment.
	Available() error
	// New returns a new handle in the Unsent state.
	New() (Handle, error)
}

// Unavailable returns a Factory for an environment without any usable
// transport. Both of its methods return err.
func Unavailable(err error) Factory {
	if err == nil {
		err = errors.New("ajax/transport: no transport available")
	}
	return unavailable{err}
}

type unavailable struct {
	err error
}

func (u unavailable) Available() error {
	return u.err
}

func (u unavailable) New() (Handle, error) {
	return nil, u.err
}
