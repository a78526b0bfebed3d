// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/response"
)

// FailureStatusBody adapts a handler taking the status code and the
// decoded response body into a request.FailureFunc. The body is nil
// when the response had no body, or it could not be decoded.
func FailureStatusBody(fn func(status int, body *response.Value)) request.FailureFunc {
	if fn == nil {
		panic("ajax: nil failure handler")
	}
	return func(f *request.Failure) {
		fn(f.Status, f.Body)
	}
}

// FailureStatus adapts a handler taking only the status code into a
// request.FailureFunc. Handlers that need the body of a failed
// response should use FailureStatusBody or a plain FailureFunc.
func FailureStatus(fn func(status int)) request.FailureFunc {
	if fn == nil {
		panic("ajax: nil failure handler")
	}
	return func(f *request.Failure) {
		fn(f.Status)
	}
}

// FailureNoArgs adapts a handler with no parameters into a
// request.FailureFunc.
func FailureNoArgs(fn func()) request.FailureFunc {
	if fn == nil {
		panic("ajax: nil failure handler")
	}
	return func(_ *request.Failure) {
		fn()
	}
}
