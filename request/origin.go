// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"net"
	urlpkg "net/url"
	"strings"
)

// ErrNoOrigin is returned by Resolve when a same-origin URL must be
// rewritten but no origin is known.
var ErrNoOrigin = errors.New("ajax/request: no origin for same-origin request")

// ParseOrigin parses the URL of the page (or service) on whose behalf
// same-origin requests are made. Only the scheme, host, port and path
// are kept. The scheme must be http or https.
func ParseOrigin(s string) (*urlpkg.URL, error) {
	u, err := urlpkg.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("ajax/request: origin %q must use http or https", s)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("ajax/request: origin %q has no host", s)
	}
	return &urlpkg.URL{
		Scheme: u.Scheme,
		Host:   canonicalHost(u.Scheme, u.Host),
		Path:   u.Path,
	}, nil
}

// Resolve returns the URL a request for url should be sent to.
//
// In cross-origin mode url is returned verbatim and is assumed to be
// absolute. Otherwise url is rewritten into an absolute URL on origin:
// its own scheme and host, if any, are discarded, its path is resolved
// against the origin path, and its query and fragment are kept. The
// port is omitted when it is the default port for the scheme.
func Resolve(origin *urlpkg.URL, url string, crossOrigin bool) (string, error) {
	if crossOrigin {
		return url, nil
	}
	if origin == nil {
		return "", ErrNoOrigin
	}
	ref, err := urlpkg.Parse(url)
	if err != nil {
		return "", err
	}
	ref.Scheme = ""
	ref.Opaque = ""
	ref.User = nil
	ref.Host = ""
	base := &urlpkg.URL{
		Scheme: origin.Scheme,
		Host:   canonicalHost(origin.Scheme, origin.Host),
		Path:   origin.Path,
	}
	if base.Path == "" {
		base.Path = "/"
	}
	return base.ResolveReference(ref).String(), nil
}

func canonicalHost(scheme, host string) string {
	host = removeEmptyPort(host)
	if !hasPort(host) {
		return host
	}
	h, port, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		if strings.Contains(h, ":") {
			return "[" + h + "]"
		}
		return h
	}
	return host
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
