// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"encoding/json"
)

// A Value is a decoded response body. Its Kind selects which accessor
// carries the decoded form: Text for Text, JSON for JSON and Document
// for XML. Raw and Text are always available regardless of Kind.
//
// A Value only lives as long as the callback it is handed to needs it;
// the client does not retain it.
type Value struct {
	// Kind is the data type the body was decoded as.
	Kind DataType

	raw  []byte
	text string
	json interface{}
	doc  *Document
}

// NewText returns a Text value holding s.
func NewText(s string) *Value {
	return &Value{Kind: Text, raw: []byte(s), text: s}
}

// Raw returns the undecoded response body bytes.
func (v *Value) Raw() []byte {
	return v.raw
}

// Text returns the body as a string. For a Text value whose response
// declared a non UTF-8 charset, the string has been transcoded to UTF-8.
func (v *Value) Text() string {
	return v.text
}

// JSON returns the parsed JSON value, which is nil unless Kind is JSON.
// The dynamic type follows encoding/json: map[string]interface{},
// []interface{}, float64, string, bool or nil.
func (v *Value) JSON() interface{} {
	return v.json
}

// Document returns the parsed XML document. It is nil unless Kind is
// XML and the body was non-empty.
func (v *Value) Document() *Document {
	return v.doc
}

// Unmarshal decodes the raw body as JSON into x, regardless of Kind.
func (v *Value) Unmarshal(x interface{}) error {
	return json.Unmarshal(v.raw, x)
}

// String returns the body as text.
func (v *Value) String() string {
	return v.text
}
