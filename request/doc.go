// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Descriptor (describes one
request and the callbacks that receive its outcome) and Execution
(describes the dispatch of a Descriptor).

A Descriptor is created by the caller, handed to the client once, and
then discarded:

	d := &request.Descriptor{
		Method:   "post",
		URL:      "/items",
		Data:     request.Form{{"name", "a"}},
		DataType: response.JSON,
		Success: func(v *response.Value) {
			...
		},
		Failure: func(f *request.Failure) {
			...
		},
	}
	e, err := client.Request(d)

The method is case-insensitive and must be one of GET, POST, PUT or
DELETE. Data may be a pre-encoded string, or a flat mapping which is
encoded as an application/x-www-form-urlencoded body with EncodeData.

The second core type is Execution, which represents the state of one
dispatch. It is the input type for the client's event handlers and
timeout policy, and is returned by the client so that callers which
need to can wait for the outcome with Wait or Done.
*/
package request
