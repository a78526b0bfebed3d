// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"strconv"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records prometheus metrics for the dispatches of the clients
// it is installed in.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	timeouts *prometheus.CounterVec
}

// NewMetrics creates the request metrics under namespace and registers
// them with reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ajax",
				Name:      "requests_total",
				Help:      "Total dispatched requests.",
			},
			[]string{"method", "status", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ajax",
				Name:      "request_duration_seconds",
				Help:      "Dispatch duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "outcome"},
		),
		timeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ajax",
				Name:      "timeouts_total",
				Help:      "Dispatches aborted by the dispatch timeout.",
			},
			[]string{"method"},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.timeouts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handle records the timeout on AfterTimeout and the request count and
// duration on AfterDispatchEnd. It ignores other events.
func (m *Metrics) Handle(evt ajax.Event, e *request.Execution) {
	switch evt {
	case ajax.AfterTimeout:
		m.timeouts.WithLabelValues(e.Method).Inc()
	case ajax.AfterDispatchEnd:
		outcome := Outcome(e)
		m.requests.WithLabelValues(e.Method, strconv.Itoa(e.Status), outcome).Inc()
		m.duration.WithLabelValues(e.Method, outcome).Observe(e.Duration().Seconds())
	}
}

// Install pushes m onto the back of g's handler chains for the events
// it records.
func (m *Metrics) Install(g *ajax.HandlerGroup) {
	g.PushBack(ajax.AfterTimeout, m)
	g.PushBack(ajax.AfterDispatchEnd, m)
}
