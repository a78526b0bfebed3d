// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"

	"golang.org/x/net/http2"
)

// NewHTTP2Factory returns an HTTPFactory whose handles speak HTTP/2
// over TLS using the given TLS configuration, which may be nil.
func NewHTTP2Factory(tlsConfig *tls.Config, compress bool) *HTTPFactory {
	return &HTTPFactory{
		Doer: &http.Client{
			Transport: &http2.Transport{
				TLSClientConfig: tlsConfig,
			},
		},
		Compress: compress,
	}
}

// NewH2CFactory returns an HTTPFactory whose handles speak HTTP/2
// over cleartext TCP ("h2c", prior knowledge). It only accepts http
// URLs.
func NewH2CFactory(compress bool) *HTTPFactory {
	return &HTTPFactory{
		Doer: &http.Client{
			Transport: &http2.Transport{
				AllowHTTP: true,
				DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, network, addr)
				},
			},
		},
		Compress: compress,
	}
}
