// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/ajax/request"
)

// A Policy defines a timeout policy which may be plugged into the ajax
// client to decide how long a dispatched request may remain in flight
// before its transport is aborted.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to arm for the dispatch described by
	// e. The execution's descriptor, method and URL are set, but the
	// request has not been sent.
	Timeout(e *request.Execution) time.Duration
}

// DefaultTimeout is the timeout used by DefaultPolicy.
const DefaultTimeout = 30 * time.Second

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 30 seconds on every dispatch.
var DefaultPolicy Policy = Fixed(DefaultTimeout)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value for every
// dispatch.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (p fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(p)
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as timeout policies.
type PolicyFunc func(e *request.Execution) time.Duration

// Timeout calls f(e).
func (f PolicyFunc) Timeout(e *request.Execution) time.Duration {
	return f(e)
}

// ByMethod constructs a timeout policy which looks up the timeout by
// the execution's normalized request method, falling back to def for
// methods not in m.
func ByMethod(def time.Duration, m map[string]time.Duration) Policy {
	m2 := make(map[string]time.Duration, len(m))
	for k, v := range m {
		m2[k] = v
	}
	return PolicyFunc(func(e *request.Execution) time.Duration {
		if d, ok := m2[e.Method]; ok {
			return d
		}
		return def
	})
}
