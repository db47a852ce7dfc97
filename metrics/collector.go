// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogama/httpcore"
	"github.com/gogama/httpcore/handle"
	"github.com/gogama/httpcore/request"
)

// Namespace prefixes every metric name.
const Namespace = "httpcore"

// A Collector records request execution metrics. It implements
// httpcore.Handler and is safe for concurrent use.
type Collector struct {
	reg        prometheus.Registerer
	Executions *prometheus.CounterVec
	Attempts   *prometheus.CounterVec
	Timeouts   *prometheus.CounterVec
	Fallbacks  prometheus.Counter
	Duration   *prometheus.HistogramVec
}

// NewCollector creates a collector and registers its metrics with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Collector{
		reg: reg,
		Executions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "executions_total",
				Help:      "Total number of request executions, by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		Attempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "attempts_total",
				Help:      "Total number of attempts, by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		Timeouts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "attempt_timeouts_total",
				Help:      "Total number of attempts which timed out",
			},
			[]string{"method"},
		),
		Fallbacks: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "fallbacks_total",
				Help:      "Total number of fallbacks to the registry proxy",
			},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "execution_duration_seconds",
				Help:      "Request execution duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method"},
		),
	}
}

// Install adds c to the back of every handler chain it observes.
func (c *Collector) Install(g *httpcore.HandlerGroup) {
	g.PushBack(httpcore.AfterAttemptTimeout, c)
	g.PushBack(httpcore.AfterAttempt, c)
	g.PushBack(httpcore.BeforeFallback, c)
	g.PushBack(httpcore.AfterExecutionEnd, c)
}

// WatchPool registers, and returns, a gauge reporting the number of
// persistent handles held in p. Only one pool can be watched per
// registry.
func (c *Collector) WatchPool(p *handle.Pool) prometheus.GaugeFunc {
	return promauto.With(c.reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "pooled_handles",
			Help:      "Number of persistent connection handles held by workers",
		},
		func() float64 {
			return float64(p.Len())
		},
	)
}

// Handle records the event.
func (c *Collector) Handle(evt httpcore.Event, e *request.Execution) {
	m := method(e)
	switch evt {
	case httpcore.AfterAttemptTimeout:
		c.Timeouts.WithLabelValues(m).Inc()
	case httpcore.AfterAttempt:
		c.Attempts.WithLabelValues(m, outcome(e)).Inc()
	case httpcore.BeforeFallback:
		c.Fallbacks.Inc()
	case httpcore.AfterExecutionEnd:
		c.Executions.WithLabelValues(m, outcome(e)).Inc()
		if e.Started() {
			c.Duration.WithLabelValues(m).Observe(e.Duration().Seconds())
		}
	}
}

func method(e *request.Execution) string {
	if e.Post {
		return "POST"
	}
	return "GET"
}

func outcome(e *request.Execution) string {
	return e.Kind().String()
}
