// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultQueueSize         = 16
	defaultMaxInflightEvents = 256
	defaultEventBacklog      = 1024
)

// Option configures a connection
type Option func(*options)

type options struct {
	codec             Codec
	events            EventHandler
	logger            *zap.Logger
	metrics           *Metrics
	queueSize         int
	maxInflightEvents int64
	eventBacklog      int
	sendRate          rate.Limit
	sendBurst         int
	callTimeout       time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		codec:             defaultCodec,
		logger:            zap.NewNop(),
		queueSize:         defaultQueueSize,
		maxInflightEvents: defaultMaxInflightEvents,
		eventBacklog:      defaultEventBacklog,
		sendRate:          rate.Inf,
		sendBurst:         1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCodec sets a custom frame codec
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithEventHandler sets the handler receiving inbound events. Without one,
// events are logged and dropped.
func WithEventHandler(h EventHandler) Option {
	return func(o *options) { o.events = h }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the collectors updated by the connection
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithQueueSize bounds the outbound frame queue. Callers block while it is full.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithMaxInflightEvents bounds how many event handlers may run at once.
// Events arriving while the bound is reached wait in the event backlog.
func WithMaxInflightEvents(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxInflightEvents = n
		}
	}
}

// WithEventBacklog bounds how many events may wait for a free handler slot.
// Events arriving while the backlog is full are dropped.
func WithEventBacklog(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.eventBacklog = n
		}
	}
}

// WithSendRate paces outbound frames. A zero or negative limit disables pacing.
func WithSendRate(limit float64, burst int) Option {
	return func(o *options) {
		if limit <= 0 {
			o.sendRate = rate.Inf
			return
		}
		o.sendRate = rate.Limit(limit)
		o.sendBurst = max(burst, 1)
	}
}

// WithCallTimeout bounds every call made through the connection. Zero means
// calls only end with their context, a response, or the connection.
func WithCallTimeout(d time.Duration) Option {
	return func(o *options) { o.callTimeout = d }
}
