// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the timeout which
// aborts a dispatched request. A generic interface for timeout policies
// is provided, Policy, along with the built-in policies DefaultPolicy
// and Infinite and the constructor Fixed.
package timeout
