// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gogama/ajax/response"
	"github.com/gogama/ajax/transient"
	"github.com/gogama/ajax/transport"
)

// The request methods a Descriptor may use.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// A SuccessFunc receives the decoded body of a successful response.
type SuccessFunc func(v *response.Value)

// A FailureFunc receives the outcome of a failed request.
//
// A failed response which carries a decodable body reports it in
// Failure.Body. Only a plain FailureFunc and one built with
// ajax.FailureStatusBody see that body: the ajax.FailureStatus and
// ajax.FailureNoArgs adapters drop it, so handlers which need the body
// of an error response must use one of the first two forms.
type FailureFunc func(f *Failure)

// A Descriptor describes a single request and the callbacks which
// receive its outcome. Exactly one of Success or Failure is invoked,
// at most once, per dispatch.
type Descriptor struct {
	// Method is the request method. It is case-insensitive, and must
	// be one of GET, POST, PUT or DELETE.
	Method string

	// URL is the request path, or an absolute URL in cross-origin
	// mode.
	URL string

	// Success is invoked with the decoded body when the response has
	// a 2XX status code. It may be nil, in which case the body is
	// still decoded but the result is discarded.
	Success SuccessFunc

	// Failure is invoked when the request ends with a non-2XX status,
	// with no response at all, or with a body that cannot be decoded
	// as DataType. It may be nil, in which case failures are silently
	// dropped.
	Failure FailureFunc

	// Data is the optional request payload. See EncodeData for the
	// supported types and encoding rules.
	Data interface{}

	// DataType selects how the response body is decoded. The zero
	// value is response.Text.
	DataType response.DataType

	// Sync, when true, makes the dispatch synchronous: the client's
	// Request method does not return until the outcome callback has
	// run. By default dispatches are asynchronous.
	Sync bool

	// CrossOrigin, when true, makes the client use URL verbatim
	// instead of rewriting it against the client's origin. The client
	// also uses URL verbatim if it is itself in cross-origin mode.
	CrossOrigin bool

	// Header holds extra request headers. They are set after the
	// X-Requested-With and Content-Type headers, so they may replace
	// Content-Type but not remove X-Requested-With.
	Header http.Header

	// Progress, if not nil, replaces the client's progress observer
	// for this request.
	Progress transport.ProgressFunc
}

// NormalizeMethod upper-cases method and reports whether it is one of
// the supported request methods.
func NormalizeMethod(method string) (string, bool) {
	m := strings.ToUpper(strings.TrimSpace(method))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return m, true
	default:
		return m, false
	}
}

// HasFormBody reports whether a request with the normalized method m
// carries a form-encoded body.
func HasFormBody(m string) bool {
	return m == MethodPost || m == MethodPut || m == MethodDelete
}

// A Failure describes a request which did not succeed.
//
// Body is non-nil when the response carried a non-empty body that was
// decoded successfully as the requested data type. A non-empty failure
// body always takes precedence over status-only reporting.
//
// Err is non-nil when there was no HTTP response (the transport failed
// or was aborted, for example by the timeout), or when the body could
// not be decoded, in which case it is a *response.DecodeError and Raw
// holds the undecodable bytes.
type Failure struct {
	// Status is the HTTP status code, or zero if there was no HTTP
	// response.
	Status int
	// Body is the decoded response body, or nil if the body was empty
	// or could not be decoded.
	Body *response.Value
	// Raw is the undecoded response body.
	Raw []byte
	// Err is the transport or decoding error, if any.
	Err error
}

// Error returns a description of the failure, which makes Failure
// usable as an error value.
func (f *Failure) Error() string {
	switch {
	case f.Err != nil && f.Status != 0:
		return fmt.Sprintf("ajax: status %d: %v", f.Status, f.Err)
	case f.Err != nil:
		return fmt.Sprintf("ajax: %v", f.Err)
	default:
		return fmt.Sprintf("ajax: status %d", f.Status)
	}
}

// Unwrap returns Err.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Category returns the transient error category of Err.
func (f *Failure) Category() transient.Category {
	return transient.Categorize(f.Err)
}

// Timeout reports whether the request failed because the dispatch
// timeout aborted it.
func (f *Failure) Timeout() bool {
	return f.Category() == transient.Timeout
}

// Decode reports whether the failure was caused by a body which could
// not be decoded.
func (f *Failure) Decode() bool {
	var err *response.DecodeError
	return errors.As(f.Err, &err)
}
