// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package response decodes HTTP response bodies according to a declared
data type.

A request declares the kind of body it expects with a DataType: Text
(the zero value), JSON, or XML. When the request reaches a terminal
state the body is decoded with Decode, producing a Value, which is a
tagged union over the three kinds:

	v, err := response.Decode(response.JSON, body, "application/json")
	...
	m := v.JSON().(map[string]interface{})

Text bodies are transcoded to UTF-8 when the Content-Type declares a
different charset. XML bodies are parsed into a generic element tree,
the Document, which can be navigated with Node.Find.
*/
package response
