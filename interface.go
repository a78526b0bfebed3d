// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/response"
	"github.com/gogama/ajax/transport"
)

// Requester is the interface that wraps the basic Request method.
//
// Request dispatches a request descriptor and returns the execution
// state (and error, if the descriptor could not be dispatched). Client
// implements the Requester interface, and any other Requester
// implementation must behave substantially the same as Client.Request.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Requester interface {
	Request(d *request.Descriptor) (*request.Execution, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Any Requester can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error)
}

// JSONGetter is the interface that wraps the basic GetJSON method.
//
// Any Requester can be used to emulate a JSONGetter via the GetJSON
// function.
type JSONGetter interface {
	GetJSON(url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error)
}

// Poster is the interface that wraps the basic Post method.
//
// The data parameter may be nil for an empty body, or any of the types
// supported by request.EncodeData.
//
// Any Requester can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Requester can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Requester can be used to emulate a Deleter via the Delete
// function.
type Deleter interface {
	Delete(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error)
}

// ProgressSetter is the interface that wraps the basic SetProgress
// method.
//
// If the underlying implementation supports it, SetProgress installs
// the default progress observer for subsequent requests. If it does
// not, SetProgress does nothing.
type ProgressSetter interface {
	SetProgress(fn transport.ProgressFunc)
}

// Executor is the interface that groups the basic Request, Get,
// GetJSON, Post, Put, Delete and SetProgress methods.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Executor interface {
	Requester
	Getter
	JSONGetter
	Poster
	Putter
	Deleter
	ProgressSetter
}

// Get uses the specified Requester to dispatch an asynchronous GET to
// the specified URL, decoding the response body as text.
func Get(r Requester, url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error) {
	return r.Request(&request.Descriptor{
		Method:  request.MethodGet,
		URL:     url,
		Success: success,
		Failure: failure,
	})
}

// GetJSON uses the specified Requester to dispatch an asynchronous GET
// to the specified URL, decoding the response body as JSON.
func GetJSON(r Requester, url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error) {
	return r.Request(&request.Descriptor{
		Method:   request.MethodGet,
		URL:      url,
		Success:  success,
		Failure:  failure,
		DataType: response.JSON,
	})
}

// Post uses the specified Requester to dispatch an asynchronous POST of
// the form-encoded data to the specified URL.
func Post(r Requester, url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return send(r, request.MethodPost, url, success, failure, data)
}

// Put uses the specified Requester to dispatch an asynchronous PUT of
// the form-encoded data to the specified URL.
func Put(r Requester, url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return send(r, request.MethodPut, url, success, failure, data)
}

// Delete uses the specified Requester to dispatch an asynchronous
// DELETE to the specified URL, with the form-encoded data as the body.
func Delete(r Requester, url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return send(r, request.MethodDelete, url, success, failure, data)
}

func send(r Requester, method, url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return r.Request(&request.Descriptor{
		Method:  method,
		URL:     url,
		Success: success,
		Failure: failure,
		Data:    data,
	})
}

// Inflate converts any non-nil Requester into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Requester needs to call a function that requires an
// Executor.
func Inflate(r Requester) Executor {
	if r == nil {
		panic("ajax: nil requester")
	}

	if e, ok := r.(Executor); ok {
		return e
	}

	return inflated{r}
}

type inflated struct {
	requester Requester
}

func (i inflated) Request(d *request.Descriptor) (*request.Execution, error) {
	return i.requester.Request(d)
}

func (i inflated) Get(url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error) {
	return Get(i.requester, url, success, failure)
}

func (i inflated) GetJSON(url string, success request.SuccessFunc, failure request.FailureFunc) (*request.Execution, error) {
	return GetJSON(i.requester, url, success, failure)
}

func (i inflated) Post(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return Post(i.requester, url, success, failure, data)
}

func (i inflated) Put(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return Put(i.requester, url, success, failure, data)
}

func (i inflated) Delete(url string, success request.SuccessFunc, failure request.FailureFunc, data interface{}) (*request.Execution, error) {
	return Delete(i.requester, url, success, failure, data)
}

func (i inflated) SetProgress(fn transport.ProgressFunc) {
	if ps, ok := i.requester.(ProgressSetter); ok {
		ps.SetProgress(fn)
	}
}
