// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const badDataTypeMsg = "ajax/request: invalid data type (use nil, string, " +
	"[]byte, Form, url.Values, map[string]string or map[string]interface{})"

// ErrBadData is returned by EncodeData for an unsupported payload type.
var ErrBadData = errors.New(badDataTypeMsg)

// A Field is one key/value pair of a Form.
type Field struct {
	Key   string
	Value string
}

// A Form is an ordered list of form fields. Unlike a map, a Form is
// encoded in slice order.
type Form []Field

// Add appends a field to the form.
func (f *Form) Add(key, value string) {
	*f = append(*f, Field{Key: key, Value: value})
}

// EncodeData converts a request payload into a request body. The second
// return value is false when there is no body, which is distinct from a
// present but empty body.
//
// The conversion rules are:
//
// • nil: no body.
//
// • string and []byte: used verbatim, even if empty.
//
// • Form: each field encoded as key=EncodeURIComponent(value), joined
// by "&", in slice order.
//
// • url.Values, map[string]string and map[string]interface{}: encoded
// like a Form in ascending key order. Multi-valued url.Values keys
// produce one pair per value; map[string]interface{} values are
// formatted with fmt.Sprint.
//
// An empty Form or mapping produces no body. Keys are not escaped and
// nested structures are not supported. Any other type results in
// ErrBadData.
func EncodeData(data interface{}) (string, bool, error) {
	switch x := data.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	case []byte:
		return string(x), true, nil
	case Form:
		return encodeForm(x)
	case url.Values:
		var f Form
		for _, k := range sortedKeys(x) {
			for _, v := range x[k] {
				f.Add(k, v)
			}
		}
		return encodeForm(f)
	case map[string]string:
		var f Form
		for _, k := range sortedKeys(x) {
			f.Add(k, x[k])
		}
		return encodeForm(f)
	case map[string]interface{}:
		var f Form
		for _, k := range sortedKeys(x) {
			f.Add(k, fmt.Sprint(x[k]))
		}
		return encodeForm(f)
	default:
		return "", false, ErrBadData
	}
}

func encodeForm(f Form) (string, bool, error) {
	if len(f) == 0 {
		return "", false, nil
	}
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(field.Key)
		b.WriteByte('=')
		b.WriteString(EncodeURIComponent(field.Value))
	}
	return b.String(), true, nil
}

func sortedKeys(m interface{}) []string {
	var keys []string
	switch x := m.(type) {
	case url.Values:
		for k := range x {
			keys = append(keys, k)
		}
	case map[string]string:
		for k := range x {
			keys = append(keys, k)
		}
	case map[string]interface{}:
		for k := range x {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// componentUnescaper restores the characters which url.QueryEscape
// escapes but a URI component encoding leaves alone, and encodes space
// as %20 rather than "+".
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s, leaving only the characters
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) unescaped. Space is encoded as %20.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
