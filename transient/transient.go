// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the category of an error which ended a request without
// an HTTP response, as reported by function Categorize.
//
// The category Not means the error did not fall into any of the
// recognized categories. This includes the nil error.
type Category int

const (
	// Not indicates a nil error, or an error in no other category.
	Not Category = iota
	// Timeout indicates a client-side timeout: the dispatch timeout
	// fired and the transport was aborted, or a lower layer reported
	// a timeout of its own.
	//
	// Function Categorize returns Timeout if the error or any of its
	// wrapped causes has a Timeout method that reports true.
	Timeout
	// Aborted indicates the transport was aborted for a reason other
	// than a timeout.
	//
	// Function Categorize returns Aborted if the error is not a Timeout
	// and the error or any of its wrapped causes is context.Canceled.
	Aborted
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"Aborted",
	"ConnRefused",
	"ConnReset",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[c]
}

// Categorize returns the category of the given error. A nil error, and
// an error in no recognized category, both produce the return value
// Not.
//
// Categorize looks at wrapped cause errors contained within err, not
// just err itself. Timeout takes precedence over every other category.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	if errors.Is(err, context.Canceled) {
		return Aborted
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
