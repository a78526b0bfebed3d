// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/rs/zerolog"
)

// Logger returns an event handler which writes one record per finished
// dispatch, and one per timeout, to logger.
//
// Successful dispatches are logged at info level, failures with a 4XX
// status at warn level and all other failures, including those with no
// response, at error level.
func Logger(logger zerolog.Logger) ajax.Handler {
	return ajax.HandlerFunc(func(evt ajax.Event, e *request.Execution) {
		switch evt {
		case ajax.AfterTimeout:
			logger.Warn().
				Str("method", e.Method).
				Str("url", e.URL).
				Dur("elapsed", e.Duration()).
				Msg("ajax_timeout")
		case ajax.AfterDispatchEnd:
			logDispatch(logger, e)
		}
	})
}

// InstallLogger installs the Logger handler for every event it handles
// into g.
func InstallLogger(g *ajax.HandlerGroup, logger zerolog.Logger) {
	h := Logger(logger)
	g.PushBack(ajax.AfterTimeout, h)
	g.PushBack(ajax.AfterDispatchEnd, h)
}

func logDispatch(logger zerolog.Logger, e *request.Execution) {
	event := logger.Info()
	if f := e.Failure; f != nil {
		if f.Status >= 400 && f.Status < 500 {
			event = logger.Warn()
		} else {
			event = logger.Error()
		}
		if f.Err != nil {
			event = event.Err(f.Err)
		}
	}

	event.
		Str("method", e.Method).
		Str("url", e.URL).
		Int("status", e.Status).
		Str("outcome", Outcome(e)).
		Dur("duration", e.Duration()).
		Int("bytes", len(e.ResponseBody)).
		Msg("ajax_request")
}

// Outcome classifies a finished execution as "success", "failure",
// "timeout" or "decode_error".
func Outcome(e *request.Execution) string {
	switch {
	case e.Failure == nil:
		return "success"
	case e.Failure.Timeout():
		return "timeout"
	case e.Failure.Decode():
		return "decode_error"
	default:
		return "failure"
	}
}
