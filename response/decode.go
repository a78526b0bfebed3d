// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
)

// A DecodeError reports a response body that could not be decoded as
// the requested data type.
type DecodeError struct {
	// DataType is the data type the body was being decoded as.
	DataType DataType
	// Err is the underlying parse error.
	Err error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("ajax/response: failed to decode %s body: %v", err.DataType, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// Decode decodes body as the data type dt. Parameter contentType is the
// value of the response Content-Type header, and may be empty.
//
// The decoding rules are:
//
// • Text: the body as a string, transcoded to UTF-8 if contentType
// names another known charset. Never fails.
//
// • JSON: the body parsed by encoding/json. An empty or malformed body
// fails with a *DecodeError.
//
// • XML: the body parsed into a Document. An empty body yields a value
// with a nil Document; a malformed one fails with a *DecodeError.
//
// Any data type other than these three is decoded as Text.
func Decode(dt DataType, body []byte, contentType string) (*Value, error) {
	v := &Value{
		Kind: dt,
		raw:  body,
		text: text(body, contentType),
	}

	switch dt {
	case JSON:
		if err := json.Unmarshal(body, &v.json); err != nil {
			return nil, &DecodeError{DataType: JSON, Err: err}
		}
	case XML:
		if len(bytes.TrimSpace(body)) == 0 {
			break
		}
		doc, err := ParseDocument(bytes.NewReader(body))
		if err != nil {
			return nil, &DecodeError{DataType: XML, Err: err}
		}
		v.doc = doc
	default:
		v.Kind = Text
	}

	return v, nil
}

func text(body []byte, contentType string) string {
	label := charsetLabel(contentType)
	if label == "" {
		return string(body)
	}
	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return string(body)
	}
	b, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(b)
}

func charsetLabel(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}
