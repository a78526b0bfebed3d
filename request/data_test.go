// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeData(t *testing.T) {
	testCases := []struct {
		name    string
		data    interface{}
		body    string
		hasBody bool
	}{
		{name: "nil"},
		{name: "string", data: "a=b&c", body: "a=b&c", hasBody: true},
		{name: "empty string", data: "", body: "", hasBody: true},
		{name: "bytes", data: []byte("raw"), body: "raw", hasBody: true},
		{name: "empty Form", data: Form{}},
		{name: "Form", data: Form{{"b", "2 3"}, {"a", "1"}}, body: "b=2%203&a=1", hasBody: true},
		{name: "empty map", data: map[string]string{}},
		{name: "map", data: map[string]string{"a": "1", "b": "2 3"}, body: "a=1&b=2%203", hasBody: true},
		{name: "interface map", data: map[string]interface{}{"n": 10, "ok": true, "s": "x/y"}, body: "n=10&ok=true&s=x%2Fy", hasBody: true},
		{name: "url.Values", data: url.Values{"ham": {"eggs", "spam"}, "a": {"&"}}, body: "a=%26&ham=eggs&ham=spam", hasBody: true},
		{name: "empty url.Values", data: url.Values{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			body, hasBody, err := EncodeData(testCase.data)
			assert.NoError(t, err)
			assert.Equal(t, testCase.body, body)
			assert.Equal(t, testCase.hasBody, hasBody)
		})
	}

	t.Run("bad type", func(t *testing.T) {
		body, hasBody, err := EncodeData(42)
		assert.Equal(t, ErrBadData, err)
		assert.Empty(t, body)
		assert.False(t, hasBody)
	})
}

func TestForm_Add(t *testing.T) {
	var f Form
	f.Add("x", "1")
	f.Add("x", "2")
	assert.Equal(t, Form{{"x", "1"}, {"x", "2"}}, f)
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "2%203", EncodeURIComponent("2 3"))
	assert.Equal(t, "AZaz09-_.!~*'()", EncodeURIComponent("AZaz09-_.!~*'()"))
	assert.Equal(t, "%26%3D%2B%2F%3F%23", EncodeURIComponent("&=+/?#"))
	assert.Equal(t, "caf%C3%A9", EncodeURIComponent("café"))
	assert.Equal(t, "", EncodeURIComponent(""))
}
