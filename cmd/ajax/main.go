// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command ajax dispatches one request and prints its outcome.
//
// Usage:
//
//	ajax [-config file] [-method GET] [-type text|json|xml] [-data k=v]... [-H name:value]... url
//
// A URL with a scheme and host is dispatched cross-origin unless the
// configuration sets an origin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/config"
	"github.com/gogama/ajax/internal/logging"
	"github.com/gogama/ajax/observe"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/response"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ajax: %v\n", err)
		os.Exit(1)
	}
}

type formFlag struct {
	form request.Form
}

func (f *formFlag) String() string {
	parts := make([]string, len(f.form))
	for i, field := range f.form {
		parts[i] = field.Key + "=" + field.Value
	}
	return strings.Join(parts, "&")
}

func (f *formFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	f.form.Add(k, v)
	return nil
}

type headerFlag map[string][]string

func (h headerFlag) String() string {
	return fmt.Sprint(map[string][]string(h))
}

func (h headerFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected name:value, got %q", s)
	}
	k = strings.TrimSpace(k)
	h[k] = append(h[k], strings.TrimSpace(v))
	return nil
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("ajax", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML configuration `file`")
	method := fs.String("method", "GET", "request method")
	dataType := fs.String("type", "text", "response data type: text, json or xml")
	origin := fs.String("origin", "", "origin to resolve the URL against")
	wait := fs.Duration("timeout", 0, "dispatch timeout (overrides config)")
	var data formFlag
	fs.Var(&data, "data", "form field `key=value` (repeatable)")
	header := headerFlag{}
	fs.Var(header, "H", "request header `name:value` (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one URL")
	}
	url := fs.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *origin != "" {
		cfg.Origin = *origin
	}
	if *wait > 0 {
		cfg.Timeout = *wait
	}
	if cfg.Origin == "" {
		cfg.CrossOrigin = true
	}

	dt, err := response.ParseDataType(*dataType)
	if err != nil {
		return err
	}

	logger := logging.Configure(logging.ProfileRuntime, cfg.LogLevel)
	cl, err := cfg.NewClient()
	if err != nil {
		return err
	}
	cl.Logger = &logger
	cl.Handlers = &ajax.HandlerGroup{}
	observe.InstallLogger(cl.Handlers, logger)

	d := &request.Descriptor{
		Method:   *method,
		URL:      url,
		DataType: dt,
		Header:   map[string][]string(header),
		Sync:     true,
	}
	if len(data.form) > 0 {
		d.Data = data.form
	}

	e, err := cl.Request(d)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+time.Second)
	defer cancel()
	if err = e.Wait(ctx); err != nil {
		return err
	}

	if e.Failure != nil {
		if e.Failure.Body != nil {
			_ = printValue(stdout, e.Failure.Body)
		}
		return e.Failure
	}
	return printValue(stdout, e.Result)
}

func printValue(w io.Writer, v *response.Value) error {
	switch v.Kind {
	case response.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v.JSON())
	default:
		_, err := fmt.Fprintln(w, v.Text())
		return err
	}
}
