// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the errors that end a dispatched request
// without a response. The dispatcher uses it to tell a timeout-triggered
// abort apart from a plain abort or a refused connection, and the
// observe package uses it to bucket error metrics.
//
// Package transient depends only on the standard library packages
// "context", "errors" and "syscall".
package transient
