// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"sync"

	"golang.org/x/net/http/httpguts"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// Default is the default transport factory. It sends requests with
// http.DefaultClient.
var Default Factory = &HTTPFactory{}

// An HTTPFactory supplies handles which run their exchanges over an
// HTTPDoer. Its zero value is a valid configuration.
type HTTPFactory struct {
	// Doer sends the HTTP requests. If Doer is nil, http.DefaultClient
	// from the standard net/http package is used.
	Doer HTTPDoer
	// Compress, when true, makes handles request gzip, deflate and
	// brotli compressed responses, and decompress them as they are
	// received.
	Compress bool
}

// Available always returns nil: net/http is present in every Go
// environment.
func (f *HTTPFactory) Available() error {
	return nil
}

// New returns a new handle.
func (f *HTTPFactory) New() (Handle, error) {
	doer := f.Doer
	if doer == nil {
		doer = http.DefaultClient
	}
	return &httpHandle{doer: doer, compress: f.Compress}, nil
}

const readChunkSize = 32 * 1024

type httpHandle struct {
	doer     HTTPDoer
	compress bool

	mu         sync.Mutex
	state      ReadyState
	sent       bool
	method     string
	url        *urlpkg.URL
	async      bool
	reqHeader  http.Header
	cancel     context.CancelFunc
	status     int
	respHeader http.Header
	body       []byte
	err        error
	onState    func()
	onProgress ProgressFunc
}

func (h *httpHandle) Open(method, url string, async bool) error {
	if method == "" || strings.IndexFunc(method, isNotToken) != -1 {
		return fmt.Errorf("ajax/transport: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ajax/transport: URL %q is not an absolute http(s) URL", url)
	}

	h.mu.Lock()
	if h.sent && h.state != Done {
		h.mu.Unlock()
		return ErrInvalidState
	}
	h.state = Opened
	h.sent = false
	h.method = method
	h.url = u
	h.async = async
	h.reqHeader = make(http.Header)
	h.cancel = nil
	h.status = 0
	h.respHeader = nil
	h.body = nil
	h.err = nil
	h.mu.Unlock()

	h.fireState()
	return nil
}

func (h *httpHandle) SetRequestHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("ajax/transport: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("ajax/transport: invalid value for header %q", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Opened || h.sent {
		return ErrInvalidState
	}
	h.reqHeader.Set(name, value)
	return nil
}

func (h *httpHandle) Send(body []byte) error {
	h.mu.Lock()
	if h.state != Opened || h.sent {
		h.mu.Unlock()
		return ErrInvalidState
	}
	ctx, cancel := context.WithCancel(context.Background())
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, h.method, h.url.String(), r)
	if err != nil {
		h.mu.Unlock()
		cancel()
		return err
	}
	req.Header = h.reqHeader.Clone()
	if h.compress && req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	h.sent = true
	h.cancel = cancel
	async := h.async
	h.mu.Unlock()

	if async {
		go h.run(req, cancel)
	} else {
		h.run(req, cancel)
	}
	return nil
}

func (h *httpHandle) Abort() {
	h.mu.Lock()
	cancel := h.cancel
	switch {
	case h.state == Done:
	case !h.sent:
		h.state = Unsent
	}
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (h *httpHandle) OnReadyStateChange(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onState = fn
}

func (h *httpHandle) OnProgress(fn ProgressFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProgress = fn
}

func (h *httpHandle) ReadyState() ReadyState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *httpHandle) Status() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *httpHandle) Header() http.Header {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.respHeader
}

func (h *httpHandle) Body() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.body
}

func (h *httpHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *httpHandle) run(req *http.Request, cancel context.CancelFunc) {
	defer cancel()

	resp, err := h.doer.Do(req)
	if err != nil {
		h.fail(req, err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, total, computable, err := decodeContent(resp)
	if err != nil {
		h.fail(req, err)
		return
	}
	defer func() {
		_ = body.Close()
	}()

	h.mu.Lock()
	h.status = resp.StatusCode
	h.respHeader = resp.Header
	h.state = HeadersReceived
	h.mu.Unlock()
	h.fireState()

	buf := make([]byte, readChunkSize)
	var loaded int64
	for {
		n, err := body.Read(buf)
		if n > 0 {
			loaded += int64(n)
			h.mu.Lock()
			h.body = append(h.body, buf[:n]...)
			first := h.state == HeadersReceived
			h.state = Loading
			h.mu.Unlock()
			if first {
				h.fireState()
			}
			h.fireProgress(Progress{Loaded: loaded, Total: total, LengthComputable: computable})
		}
		if err == io.EOF {
			break
		} else if err != nil {
			h.fail(req, err)
			return
		}
	}

	h.mu.Lock()
	h.state = Done
	if h.body == nil {
		h.body = []byte{}
	}
	h.mu.Unlock()
	h.fireState()
}

// fail ends the exchange as a network error: no status, no headers and
// no body, which is also how an aborted exchange ends.
func (h *httpHandle) fail(req *http.Request, err error) {
	h.mu.Lock()
	h.state = Done
	h.status = 0
	h.respHeader = nil
	h.body = nil
	h.err = urlErrorWrap(req, err)
	h.mu.Unlock()
	h.fireState()
}

func (h *httpHandle) fireState() {
	h.mu.Lock()
	fn := h.onState
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (h *httpHandle) fireProgress(p Progress) {
	h.mu.Lock()
	fn := h.onProgress
	h.mu.Unlock()
	if fn != nil {
		fn(p)
	}
}

func urlErrorWrap(req *http.Request, err error) error {
	if _, ok := err.(*urlpkg.Error); ok {
		return err
	}

	return &urlpkg.Error{
		Op:  urlErrorOp(req.Method),
		URL: req.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
