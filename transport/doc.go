// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines the transport handle the ajax client drives
through one request/response exchange, and the factory capability the
client acquires handles from.

A Handle mirrors the familiar browser request object: it is opened with
a method and URL, given request headers, sent, and reports its progress
through ready-state and progress observers until it reaches Done.

	h, err := transport.Default.New()
	...
	h.OnReadyStateChange(func() {
		if h.ReadyState() == transport.Done {
			fmt.Println(h.Status(), string(h.Body()))
		}
	})
	_ = h.Open("GET", "https://example.com/items", true)
	_ = h.SetRequestHeader("X-Requested-With", "XMLHttpRequest")
	_ = h.Send(nil)

The production Factory is HTTPFactory, which runs exchanges over any
HTTPDoer, by default http.DefaultClient. NewHTTP2Factory and
NewH2CFactory build factories which speak HTTP/2 over TLS and over
cleartext respectively.
*/
package transport
