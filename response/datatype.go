// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"fmt"
	"strings"
)

// A DataType identifies how a response body is decoded.
type DataType int

const (
	// Text leaves the body as a string. It is the zero value, so a
	// request that does not declare a data type gets raw text.
	Text DataType = iota
	// JSON parses the body as a JSON value.
	JSON
	// XML parses the body as an XML document.
	XML
	dataTypeSentinel
)

var dataTypeNames = []string{
	"TEXT",
	"JSON",
	"XML",
}

// ParseDataType parses a data type name case-insensitively. The empty
// string parses as Text.
func ParseDataType(s string) (DataType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Text, nil
	}
	for i, name := range dataTypeNames {
		if strings.EqualFold(s, name) {
			return DataType(i), nil
		}
	}
	return Text, fmt.Errorf("ajax/response: unknown data type %q", s)
}

// String returns the upper-case name of the data type.
func (dt DataType) String() string {
	if dt < 0 || dt >= dataTypeSentinel {
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
	return dataTypeNames[dt]
}
