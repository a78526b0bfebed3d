// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ajax provides a callback-based HTTP request client in the
style of a browser's asynchronous request object.

Create a Client with New, giving the origin which request paths are
resolved against, then dispatch requests. Each request reports its
outcome to exactly one of two callbacks.

	client, err := ajax.New(nil, false, "https://example.com")
	...
	ex, err := client.GetJSON("/items",
		func(v *response.Value) {
			fmt.Println(v.JSON())
		},
		func(f *request.Failure) {
			fmt.Println("failed:", f)
		})
	...
	ex, err := client.Post("/items", nil,
		ajax.FailureStatus(func(status int) { ... }),
		map[string]string{"name": "a"})

Requests are asynchronous by default: the callbacks run on another
goroutine and the returned execution can be waited on with Done or
Wait. Set request.Descriptor.Sync to make Client.Request block until
the callback has run.

For full control over a request, build a request.Descriptor and pass it
to Client.Request. Every request carries the header
"X-Requested-With: XMLHttpRequest", and POST, PUT and DELETE requests
carry a form-encoded body.

A cross-origin client, created with crossOrigin set to true, uses
descriptor URLs verbatim. A same-origin client rewrites them against its
origin, so "/items" and "https://elsewhere/items" both become
"https://example.com/items".

Every request is subject to a timeout, 30 seconds unless the client's
TimeoutPolicy says otherwise. When the timeout fires the transport is
aborted and the failure callback receives a request.Failure whose
Timeout method returns true.

The Failure shape carries the status and, when the response had a body,
the decoded body. The adapters FailureStatusBody, FailureStatus and
FailureNoArgs fit handlers which only want some of it.

Install event handlers on the client's HandlerGroup to extend it with
logging, metrics and similar. Package observe provides both.
*/
package ajax
