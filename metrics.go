// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/luxfi/botrpc/onebot"
)

const metricsNamespace = "botrpc"

// inbound frame classes
const (
	classEmpty    = "empty"
	classEvent    = "event"
	classResponse = "response"
)

// Metrics holds the collectors updated by connections. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	connections   prometheus.Gauge
	inflight      prometheus.Gauge
	frames        *prometheus.CounterVec
	unmatched     prometheus.Counter
	droppedEvents prometheus.Counter
	malformed     prometheus.Counter
	callDuration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connections",
			Help:      "Bot connections currently served.",
		}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "calls",
			Name:      "inflight",
			Help:      "Calls awaiting a response.",
		}),
		frames: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frames_total",
			Help:      "Frames moved over bot connections.",
		}, []string{"direction", "class"}),
		unmatched: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unmatched_responses_total",
			Help:      "Responses whose echo matched no pending call.",
		}),
		droppedEvents: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dropped_events_total",
			Help:      "Events dropped because every handler slot was busy.",
		}),
		malformed: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "malformed_frames_total",
			Help:      "Inbound frames that failed to decode.",
		}),
		callDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "calls",
			Name:      "duration_seconds",
			Help:      "Call latency from registration to completion.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type", "outcome"}),
	}
}

func (m *Metrics) connOpened() {
	if m != nil {
		m.connections.Inc()
	}
}

func (m *Metrics) connClosed() {
	if m != nil {
		m.connections.Dec()
	}
}

func (m *Metrics) frameOut() {
	if m != nil {
		m.frames.WithLabelValues("out", "request").Inc()
	}
}

func (m *Metrics) frameIn(class string) {
	if m != nil {
		m.frames.WithLabelValues("in", class).Inc()
	}
}

func (m *Metrics) unmatchedResponse() {
	if m != nil {
		m.unmatched.Inc()
	}
}

func (m *Metrics) droppedEvent() {
	if m != nil {
		m.droppedEvents.Inc()
	}
}

func (m *Metrics) malformedFrame() {
	if m != nil {
		m.malformed.Inc()
	}
}

func (m *Metrics) callStarted() {
	if m != nil {
		m.inflight.Inc()
	}
}

func (m *Metrics) callDone(t onebot.FrameType, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	m.callDuration.WithLabelValues(t.String(), outcome(err)).Observe(d.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrConnClosed):
		return "closed"
	default:
		return "error"
	}
}
