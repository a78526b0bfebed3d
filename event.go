// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import "fmt"

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeDispatch identifies the event that occurs after a
	// descriptor has been validated, its URL resolved, and a transport
	// handle acquired and opened, but before the request is sent.
	//
	// When Client fires BeforeDispatch, the execution's descriptor,
	// method, URL, body, request header and start time are set.
	BeforeDispatch Event = iota
	// BeforeSend identifies the event that occurs just before the
	// request headers are applied to the transport handle and the
	// request is sent.
	//
	// BeforeSend handlers may modify the execution's request Header,
	// for example to add a signature, thus changing the headers which
	// will be sent.
	BeforeSend
	// AfterTimeout identifies the event that occurs when the dispatch
	// timeout fires before the request reaches a terminal state. The
	// transport is aborted after all AfterTimeout handlers have
	// finished, which in turn leads to the usual terminal-state
	// processing. If the request reaches its terminal state while
	// AfterTimeout handlers are running, terminal-state processing
	// waits for them to return.
	//
	// AfterTimeout may run on a different goroutine from the other
	// events and, unlike them, only fires for dispatches which time
	// out.
	AfterTimeout
	// AfterComplete identifies the event that occurs when the request
	// reaches its terminal state, before the body is decoded and the
	// outcome callback is invoked.
	//
	// When Client fires AfterComplete, the execution's status,
	// response header, response body, error and timed-out flag are
	// set.
	AfterComplete
	// AfterDispatchEnd identifies the event that occurs after the
	// outcome callback has returned (or panicked).
	//
	// When Client fires AfterDispatchEnd, the execution's end time and
	// its Result or Failure are set. Goroutines waiting on the
	// execution are released after all AfterDispatchEnd handlers have
	// finished.
	AfterDispatchEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeDispatch",
	"BeforeSend",
	"AfterTimeout",
	"AfterComplete",
	"AfterDispatchEnd",
}

// Events returns a slice containing all events which can occur in a
// dispatch by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeDispatch,
		BeforeSend,
		AfterTimeout,
		AfterComplete,
		AfterDispatchEnd,
	}
}

// Name returns the name of the event. An out-of-range event is
// named "Event(n)".
func (evt Event) Name() string {
	if evt < 0 || int(evt) >= len(eventNames) {
		return fmt.Sprintf("Event(%d)", int(evt))
	}
	return eventNames[evt]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
