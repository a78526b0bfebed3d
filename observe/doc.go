// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package observe provides event handlers which log and measure the
requests made by an ajax.Client.

	logger := zerolog.New(os.Stderr)
	metrics, err := observe.NewMetrics(prometheus.DefaultRegisterer, "myapp")
	...
	handlers := &ajax.HandlerGroup{}
	observe.InstallLogger(handlers, logger)
	metrics.Install(handlers)
	client.Handlers = handlers
*/
package observe
