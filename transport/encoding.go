// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

const acceptEncoding = "gzip, deflate, br"

// decodeContent returns a reader over the decoded response body, along
// with the expected length of what the reader yields and whether that
// length is known. Closing the reader releases any decoder state but
// leaves resp.Body open.
func decodeContent(resp *http.Response) (io.ReadCloser, int64, bool, error) {
	var r io.ReadCloser
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, 0, false, err
		}
		r = gz
	case "deflate":
		r = deflateReader(resp.Body)
	case "br":
		r = ioutil.NopCloser(brotli.NewReader(resp.Body))
	default:
		computable := resp.ContentLength >= 0
		total := resp.ContentLength
		if !computable {
			total = 0
		}
		return ioutil.NopCloser(resp.Body), total, computable, nil
	}

	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return r, 0, false, nil
}

// deflateReader reads a "deflate" coded body. RFC 9110 defines it as a
// zlib stream, but some servers send raw DEFLATE, so the zlib header is
// checked first.
func deflateReader(body io.Reader) io.ReadCloser {
	br := bufio.NewReader(body)
	hdr, err := br.Peek(2)
	if err == nil && isZlibHeader(hdr[0], hdr[1]) {
		zr, err := zlib.NewReader(br)
		if err == nil {
			return zr
		}
	}
	return flate.NewReader(br)
}

func isZlibHeader(cmf, flg byte) bool {
	return cmf&0x0f == 8 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
