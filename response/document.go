// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// A Document is a parsed XML response body.
type Document struct {
	// Root is the document element. It is never nil.
	Root *Node
}

// A Node is one element of a Document.
type Node struct {
	// Name is the element name.
	Name xml.Name
	// Attr holds the element attributes in document order.
	Attr []xml.Attr
	// Text is the concatenated character data directly inside the
	// element, with leading and trailing white space removed.
	Text string
	// Children holds the child elements in document order.
	Children []*Node
}

var errNoRoot = errors.New("no root element")

// ParseDocument parses an XML document from r. Documents declaring a
// non UTF-8 encoding are transcoded.
func ParseDocument(r io.Reader) (*Document, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	var stack []*Node
	var text []*strings.Builder
	var root *Node
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name, Attr: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			} else {
				return nil, errors.New("multiple root elements")
			}
			stack = append(stack, n)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, errNoRoot
	}

	return &Document{Root: root}, nil
}

// Find walks down from n following the given local element names and
// returns the first matching descendant, or nil if there is none. With
// no names, Find returns n.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		var next *Node
		for _, c := range cur.Children {
			if c.Name.Local == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Attribute returns the value of the attribute with the given local
// name.
func (n *Node) Attribute(local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
