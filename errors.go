// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"errors"

	"github.com/gogama/ajax/request"
)

// Errors returned synchronously by New and Client.Request. They are
// always wrapped with more detail, so test for them with errors.Is.
//
// Once a request has been sent, errors are never returned. They are
// delivered to the descriptor's failure callback instead.
var (
	// ErrUnsupportedMethod indicates a descriptor method other than
	// GET, POST, PUT or DELETE. No transport is acquired.
	ErrUnsupportedMethod = errors.New("ajax: unsupported method")
	// ErrUnsupportedData indicates descriptor data of a type which
	// cannot be form-encoded.
	ErrUnsupportedData = errors.New("ajax: unsupported data")
	// ErrTransportUnavailable indicates the transport factory cannot
	// supply a handle.
	ErrTransportUnavailable = errors.New("ajax: transport unavailable")
	// ErrNoOrigin indicates a same-origin request, or a same-origin
	// client, without an origin to resolve URLs against.
	ErrNoOrigin = request.ErrNoOrigin
)

// timeoutError is the cause attached to a transport error when the
// dispatch timeout aborted the exchange.
type timeoutError struct {
	cause error
}

func (err *timeoutError) Error() string {
	return "ajax: dispatch timeout exceeded"
}

func (err *timeoutError) Timeout() bool {
	return true
}

func (err *timeoutError) Unwrap() error {
	return err.cause
}
