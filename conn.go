// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/luxfi/botrpc/onebot"
)

var (
	ErrConnClosed     = errors.New("botrpc: connection closed")
	ErrInvalidBotID   = errors.New("botrpc: invalid bot id")
	ErrMalformedFrame = errors.New("botrpc: malformed frame")
	ErrDuplicateEcho  = errors.New("botrpc: duplicate echo")
	ErrNoResult       = errors.New("botrpc: no result")
	ErrAlreadyServing = errors.New("botrpc: connection already serving")
)

// Conn multiplexes calls, responses and events of one bot over one transport.
// It owns exactly one writer loop and one reader loop; see Serve.
type Conn struct {
	botID   int64
	tr      Transport
	opts    options
	log     *zap.Logger
	queue   chan *onebot.Frame
	pending *pendingTable
	events  *semaphore.Weighted
	backlog chan onebot.Payload
	limiter *rate.Limiter
	bot     *Bot

	serving   atomic.Bool
	closed    chan struct{}
	closeOnce sync.Once
	closeErr  error

	errMu sync.Mutex
	err   error
}

// NewConn attaches to an established transport of bot botID. A bot id of zero
// or below is rejected.
func NewConn(botID int64, tr Transport, opts ...Option) (*Conn, error) {
	if botID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBotID, botID)
	}
	if tr == nil {
		return nil, errors.New("botrpc: nil transport")
	}
	o := newOptions(opts)
	c := &Conn{
		botID:   botID,
		tr:      tr,
		opts:    o,
		log:     o.logger.With(zap.Int64("bot_id", botID)),
		queue:   make(chan *onebot.Frame, o.queueSize),
		pending: newPendingTable(),
		events:  semaphore.NewWeighted(o.maxInflightEvents),
		backlog: make(chan onebot.Payload, o.eventBacklog),
		limiter: rate.NewLimiter(o.sendRate, o.sendBurst),
		closed:  make(chan struct{}),
	}
	c.bot = &Bot{conn: c}
	return c, nil
}

// ID returns the bot id the connection was established for
func (c *Conn) ID() int64 { return c.botID }

// Bot returns the call handle of this connection
func (c *Conn) Bot() *Bot { return c.bot }

// Done is closed once the connection starts tearing down
func (c *Conn) Done() <-chan struct{} { return c.closed }

// Pending returns the number of calls awaiting a response
func (c *Conn) Pending() int { return c.pending.len() }

// Err returns the error Serve ended with, if it has ended.
func (c *Conn) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Close tears the connection down and fails every pending call with
// ErrConnClosed, whether or not Serve is running. Serve returns once both
// loops have stopped.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		if n := c.pending.failAll(ErrConnClosed); n > 0 {
			c.log.Debug("failed pending calls", zap.Int("calls", n))
		}
		c.closeErr = c.tr.Close()
	})
	return c.closeErr
}

// Serve runs the writer and reader loops until the transport fails, a frame
// cannot be decoded, ctx is cancelled or Close is called. Whichever ends first
// stops the other, and every call still pending is failed with ErrConnClosed.
func (c *Conn) Serve(ctx context.Context) error {
	if !c.serving.CompareAndSwap(false, true) {
		return ErrAlreadyServing
	}
	c.opts.metrics.connOpened()
	c.log.Info("bot connected")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.writeLoop(gctx) })
	g.Go(func() error { return c.readLoop(gctx) })
	g.Go(func() error { return c.eventLoop(gctx) })
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-c.closed:
		}
		c.Close()
		return nil
	})
	err := g.Wait()
	if ctx.Err() != nil && errors.Is(err, ErrConnClosed) {
		err = ctx.Err()
	}

	c.pending.failAll(ErrConnClosed)
	c.errMu.Lock()
	c.err = err
	c.errMu.Unlock()
	c.opts.metrics.connClosed()

	if err != nil && !errors.Is(err, ErrConnClosed) && !errors.Is(err, context.Canceled) {
		c.log.Warn("bot disconnected", zap.Error(err))
	} else {
		c.log.Info("bot disconnected")
	}
	return err
}

func (c *Conn) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.closed:
			return ErrConnClosed
		case f := <-c.queue:
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			data, err := c.opts.codec.Encode(f)
			if err != nil {
				c.log.Warn("cannot encode request", zap.String("echo", f.Echo), zap.Stringer("type", f.Type), zap.Error(err))
				c.pending.reject(f.Echo, err)
				continue
			}
			if err := c.tr.Send(ctx, data); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
			c.opts.metrics.frameOut()
		}
	}
}

func (c *Conn) readLoop(ctx context.Context) error {
	for {
		data, err := c.tr.Recv(ctx)
		if err != nil {
			select {
			case <-c.closed:
				return ErrConnClosed
			default:
			}
			return fmt.Errorf("read frame: %w", err)
		}
		f, err := c.opts.codec.Decode(data)
		if err != nil {
			c.opts.metrics.malformedFrame()
			return fmt.Errorf("%w: %w", ErrMalformedFrame, err)
		}
		c.dispatch(ctx, f)
	}
}

// dispatch routes one inbound frame. Responses are resolved inline: that is a
// constant-time, non-blocking table operation. Events run on their own
// goroutines so a slow handler never delays responses.
func (c *Conn) dispatch(ctx context.Context, f *onebot.Frame) {
	switch {
	case f.Data == nil:
		c.opts.metrics.frameIn(classEmpty)
		c.log.Debug("dropping frame without payload", zap.Stringer("type", f.Type), zap.String("echo", f.Echo))
	case onebot.IsEvent(f.Data):
		c.opts.metrics.frameIn(classEvent)
		c.dispatchEvent(ctx, f.Data)
	default:
		c.opts.metrics.frameIn(classResponse)
		if !c.pending.resolve(f.Echo, f) {
			c.opts.metrics.unmatchedResponse()
			c.log.Debug("dropping unmatched response", zap.String("echo", f.Echo), zap.Stringer("type", f.Type))
		}
	}
}

// dispatchEvent starts a handler for ev when a slot is free and nothing is
// waiting, otherwise parks ev in the backlog. It never blocks the reader.
func (c *Conn) dispatchEvent(ctx context.Context, ev onebot.Payload) {
	h := c.opts.events
	if h == nil {
		c.log.Debug("no event handler, dropping event", zap.Stringer("type", onebot.FrameTypeOf(ev)))
		return
	}
	if len(c.backlog) == 0 && c.events.TryAcquire(1) {
		go c.handleEvent(ctx, h, ev)
		return
	}
	select {
	case c.backlog <- ev:
	default:
		c.opts.metrics.droppedEvent()
		c.log.Warn("dropped event for busy handlers", zap.Stringer("type", onebot.FrameTypeOf(ev)))
	}
}

// eventLoop hands backlogged events to handlers as slots free up.
func (c *Conn) eventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.closed:
			return nil
		case ev := <-c.backlog:
			if err := c.events.Acquire(ctx, 1); err != nil {
				return nil
			}
			go c.handleEvent(ctx, c.opts.events, ev)
		}
	}
}

func (c *Conn) handleEvent(ctx context.Context, h EventHandler, ev onebot.Payload) {
	defer c.events.Release(1)
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("event handler panicked", zap.Stringer("type", onebot.FrameTypeOf(ev)), zap.Any("panic", r))
		}
	}()
	h.HandleEvent(ctx, c.bot, ev)
}

// call registers a completion slot for a fresh echo, then queues the request,
// then waits. Registering first means a response can never arrive before its
// slot exists.
func (c *Conn) call(ctx context.Context, data onebot.Payload) (_ *onebot.Frame, err error) {
	if data == nil {
		return nil, errors.New("botrpc: nil payload")
	}
	if c.opts.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.callTimeout)
		defer cancel()
	}
	echo, err := newEcho()
	if err != nil {
		return nil, err
	}
	req := &onebot.Frame{
		BotID: c.botID,
		Type:  onebot.FrameTypeOf(data),
		Echo:  echo,
		OK:    true,
		Data:  data,
	}

	slot, err := c.pending.register(echo)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	c.opts.metrics.callStarted()
	defer func() { c.opts.metrics.callDone(req.Type, err, time.Since(start)) }()

	select {
	case c.queue <- req:
	case <-ctx.Done():
		c.pending.cancel(echo)
		return nil, ctx.Err()
	case <-c.closed:
		c.pending.cancel(echo)
		return nil, ErrConnClosed
	}

	select {
	case res, ok := <-slot:
		if !ok {
			return nil, c.pending.failure()
		}
		return res.frame, res.err
	case <-ctx.Done():
		c.pending.cancel(echo)
		return nil, ctx.Err()
	}
}
