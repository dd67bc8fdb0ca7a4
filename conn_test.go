// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/botrpc/onebot"
)

const testBotID = 10001

// pipeTransport is one end of an in-memory transport pair.
type pipeTransport struct {
	in         <-chan []byte
	out        chan<- []byte
	closed     chan struct{}
	peerClosed <-chan struct{}
	once       sync.Once
}

func newPipe() (*pipeTransport, *pipeTransport) {
	ab := make(chan []byte, 64)
	ba := make(chan []byte, 64)
	a := &pipeTransport{in: ba, out: ab, closed: make(chan struct{})}
	b := &pipeTransport{in: ab, out: ba, closed: make(chan struct{})}
	a.peerClosed = b.closed
	b.peerClosed = a.closed
	return a, b
}

func (p *pipeTransport) Send(ctx context.Context, data []byte) error {
	select {
	case <-p.closed:
		return io.ErrClosedPipe
	case <-p.peerClosed:
		return io.ErrClosedPipe
	default:
	}
	select {
	case p.out <- data:
		return nil
	case <-p.closed:
		return io.ErrClosedPipe
	case <-p.peerClosed:
		return io.ErrClosedPipe
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeTransport) Recv(context.Context) ([]byte, error) {
	select {
	case data := <-p.in:
		return data, nil
	case <-p.closed:
		return nil, io.ErrClosedPipe
	case <-p.peerClosed:
		return nil, io.EOF
	}
}

func (p *pipeTransport) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

// peer plays the bot implementation on the far end of a pipe.
type peer struct {
	t  *testing.T
	tr *pipeTransport
}

func (p *peer) recv() *onebot.Frame {
	p.t.Helper()
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := p.tr.Recv(context.Background())
		ch <- result{data, err}
	}()
	select {
	case r := <-ch:
		require.NoError(p.t, r.err)
		f, err := onebot.Unmarshal(r.data)
		require.NoError(p.t, err)
		return f
	case <-time.After(5 * time.Second):
		p.t.Fatal("timed out waiting for a request")
		return nil
	}
}

func (p *peer) send(f *onebot.Frame) {
	p.t.Helper()
	data, err := onebot.Marshal(f)
	require.NoError(p.t, err)
	require.NoError(p.t, p.tr.Send(context.Background(), data))
}

func (p *peer) reply(req *onebot.Frame, data onebot.Payload) {
	p.t.Helper()
	p.send(&onebot.Frame{
		BotID: req.BotID,
		Type:  onebot.FrameTypeOf(data),
		Echo:  req.Echo,
		OK:    true,
		Data:  data,
	})
}

type testConn struct {
	*Conn
	served chan error
}

func (c *testConn) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-c.served:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
		return nil
	}
}

func newTestConn(t *testing.T, opts ...Option) (*testConn, *peer) {
	t.Helper()
	local, remote := newPipe()
	c, err := NewConn(testBotID, local, opts...)
	require.NoError(t, err)

	tc := &testConn{Conn: c, served: make(chan error, 1)}
	go func() { tc.served <- c.Serve(context.Background()) }()
	t.Cleanup(func() { c.Close() })
	return tc, &peer{t: t, tr: remote}
}

type callOutcome struct {
	id  int32
	err error
}

func sendAsync(ctx context.Context, bot *Bot, userID int64, text string) <-chan callOutcome {
	ch := make(chan callOutcome, 1)
	go func() {
		id, err := bot.SendPrivateText(ctx, userID, text)
		ch <- callOutcome{id, err}
	}()
	return ch
}

func await(t *testing.T, ch <-chan callOutcome) callOutcome {
	t.Helper()
	select {
	case out := <-ch:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("call did not complete")
		return callOutcome{}
	}
}

func TestSendPrivateMessage(t *testing.T) {
	c, p := newTestConn(t)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req := p.recv()
	assert.Equal(t, onebot.TSendPrivateMsgReq, req.Type)
	assert.Equal(t, int64(testBotID), req.BotID)
	assert.Len(t, req.Echo, 32)
	data, ok := req.Data.(*onebot.SendPrivateMsgReq)
	require.True(t, ok)
	assert.Equal(t, int64(123), data.UserID)
	assert.Equal(t, "hi", onebot.PlainText(data.Message))

	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 42})
	out := await(t, done)
	require.NoError(t, out.err)
	assert.Equal(t, int32(42), out.id)
	assert.Equal(t, 0, c.Pending())
}

func TestOutOfOrderResponses(t *testing.T) {
	c, p := newTestConn(t)

	first := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req1 := p.recv()
	second := sendAsync(context.Background(), c.Bot(), 123, "again")
	req2 := p.recv()
	require.NotEqual(t, req1.Echo, req2.Echo)

	p.reply(req2, &onebot.SendPrivateMsgResp{MessageID: 43})
	p.reply(req1, &onebot.SendPrivateMsgResp{MessageID: 42})

	assert.Equal(t, int32(42), await(t, first).id)
	assert.Equal(t, int32(43), await(t, second).id)
}

func TestReverseOrderResponses(t *testing.T) {
	c, p := newTestConn(t, WithQueueSize(4))
	const n = 64

	calls := make(map[int64]<-chan callOutcome, n)
	for i := int64(1); i <= n; i++ {
		calls[i] = sendAsync(context.Background(), c.Bot(), i, fmt.Sprint("msg ", i))
	}
	reqs := make([]*onebot.Frame, 0, n)
	for range n {
		reqs = append(reqs, p.recv())
	}
	require.Eventually(t, func() bool { return c.Pending() == n }, time.Second, time.Millisecond)

	for i := len(reqs) - 1; i >= 0; i-- {
		userID := reqs[i].Data.(*onebot.SendPrivateMsgReq).UserID
		p.reply(reqs[i], &onebot.SendPrivateMsgResp{MessageID: int32(userID)})
	}
	for userID, ch := range calls {
		out := await(t, ch)
		require.NoError(t, out.err)
		assert.Equal(t, int32(userID), out.id)
	}
	assert.Equal(t, 0, c.Pending())
}

func TestUnmatchedResponseIsDropped(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	c, p := newTestConn(t, WithMetrics(m))

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req := p.recv()
	p.send(&onebot.Frame{BotID: testBotID, Echo: "not-a-pending-echo", OK: true, Data: &onebot.SendPrivateMsgResp{MessageID: 7}})
	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 42})

	out := await(t, done)
	require.NoError(t, out.err)
	assert.Equal(t, int32(42), out.id)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unmatched))
}

func TestDuplicateResponse(t *testing.T) {
	c, p := newTestConn(t)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req := p.recv()
	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 42})
	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 99})
	assert.Equal(t, int32(42), await(t, done).id)

	// the connection keeps working after the duplicate
	done = sendAsync(context.Background(), c.Bot(), 123, "again")
	req = p.recv()
	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 43})
	assert.Equal(t, int32(43), await(t, done).id)
}

func TestEventNeverResolvesCall(t *testing.T) {
	events := make(chan onebot.Payload, 1)
	c, p := newTestConn(t, WithEventHandler(EventHandlerFunc(func(_ context.Context, bot *Bot, ev onebot.Payload) {
		assert.Equal(t, int64(testBotID), bot.ID())
		events <- ev
	})))

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req := p.recv()

	// an event carrying the pending echo must still be routed as an event
	ev := &onebot.PrivateMessageEvent{UserID: 5, RawMessage: "hello"}
	p.send(&onebot.Frame{BotID: testBotID, Type: onebot.TPrivateMessageEvent, Echo: req.Echo, Data: ev})

	select {
	case got := <-events:
		assert.Equal(t, ev, got)
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}
	assert.Equal(t, 1, c.Pending())

	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 42})
	assert.Equal(t, int32(42), await(t, done).id)
}

func TestSlowEventHandlerDoesNotBlockResponses(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c, p := newTestConn(t, WithEventHandler(EventHandlerFunc(func(context.Context, *Bot, onebot.Payload) {
		<-release
	})))

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req := p.recv()
	p.send(&onebot.Frame{BotID: testBotID, Type: onebot.TGroupMessageEvent, Data: &onebot.GroupMessageEvent{GroupID: 1}})
	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 42})
	assert.Equal(t, int32(42), await(t, done).id)
}

func TestEventsWaitInBacklogWhenHandlersBusy(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	release := make(chan struct{})
	var handled atomic.Int32
	_, p := newTestConn(t,
		WithMetrics(m),
		WithMaxInflightEvents(1),
		WithEventBacklog(2),
		WithEventHandler(EventHandlerFunc(func(context.Context, *Bot, onebot.Payload) {
			<-release
			handled.Add(1)
		})),
	)

	for range 3 {
		p.send(&onebot.Frame{BotID: testBotID, Type: onebot.TFriendAddNoticeEvent, Data: &onebot.FriendAddNoticeEvent{UserID: 1}})
	}
	require.Eventually(t, func() bool { return testutil.ToFloat64(m.frames.WithLabelValues("in", classEvent)) == 3 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, int32(0), handled.Load())

	close(release)
	require.Eventually(t, func() bool { return handled.Load() == 3 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.droppedEvents))
}

func TestEventsDroppedWhenBacklogFull(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	release := make(chan struct{})
	var handled atomic.Int32
	_, p := newTestConn(t,
		WithMetrics(m),
		WithMaxInflightEvents(1),
		WithEventBacklog(1),
		WithEventHandler(EventHandlerFunc(func(context.Context, *Bot, onebot.Payload) {
			<-release
			handled.Add(1)
		})),
	)

	const sent = 10
	for range sent {
		p.send(&onebot.Frame{BotID: testBotID, Type: onebot.TFriendAddNoticeEvent, Data: &onebot.FriendAddNoticeEvent{UserID: 1}})
	}
	// one running, at most one held for the next slot, one in the backlog
	require.Eventually(t, func() bool { return testutil.ToFloat64(m.droppedEvents) >= sent-3 }, 5*time.Second, time.Millisecond)

	close(release)
	require.Eventually(t, func() bool {
		return float64(handled.Load())+testutil.ToFloat64(m.droppedEvents) == sent
	}, 5*time.Second, time.Millisecond)
}

func TestEventHandlerPanicIsContained(t *testing.T) {
	calls := make(chan struct{}, 2)
	c, p := newTestConn(t, WithEventHandler(EventHandlerFunc(func(context.Context, *Bot, onebot.Payload) {
		calls <- struct{}{}
		panic("handler bug")
	})))

	p.send(&onebot.Frame{BotID: testBotID, Type: onebot.TFriendRequestEvent, Data: &onebot.FriendRequestEvent{UserID: 1}})
	<-calls

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	p.reply(p.recv(), &onebot.SendPrivateMsgResp{MessageID: 42})
	assert.Equal(t, int32(42), await(t, done).id)
}

func TestFrameWithoutPayloadIsDropped(t *testing.T) {
	c, p := newTestConn(t)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req := p.recv()
	p.send(&onebot.Frame{BotID: testBotID, Echo: req.Echo, OK: true})
	require.Never(t, func() bool { return c.Pending() == 0 }, 50*time.Millisecond, 5*time.Millisecond)

	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 42})
	assert.Equal(t, int32(42), await(t, done).id)
}

func TestMismatchedResponseYieldsNoResult(t *testing.T) {
	c, p := newTestConn(t)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	p.reply(p.recv(), &onebot.GetLoginInfoResp{UserID: 1})

	out := await(t, done)
	require.ErrorIs(t, out.err, ErrNoResult)
}

func TestTeardownFailsPendingCalls(t *testing.T) {
	c, p := newTestConn(t)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	p.recv()
	require.NoError(t, p.tr.Close())

	out := await(t, done)
	require.ErrorIs(t, out.err, ErrConnClosed)
	require.Error(t, c.wait(t))
	assert.Equal(t, 0, c.Pending())

	select {
	case <-c.Done():
	default:
		t.Fatal("Done not closed")
	}

	_, err := c.Bot().SendPrivateText(context.Background(), 123, "late")
	require.ErrorIs(t, err, ErrConnClosed)
}

func TestCloseFailsPendingCalls(t *testing.T) {
	c, p := newTestConn(t)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	p.recv()
	require.NoError(t, c.Close())

	require.ErrorIs(t, await(t, done).err, ErrConnClosed)
	require.ErrorIs(t, c.wait(t), ErrConnClosed)
	assert.ErrorIs(t, c.Err(), ErrConnClosed)
}

func TestCloseWithoutServeFailsCalls(t *testing.T) {
	local, _ := newPipe()
	c, err := NewConn(testBotID, local)
	require.NoError(t, err)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	require.Eventually(t, func() bool { return c.Pending() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, c.Close())
	require.ErrorIs(t, await(t, done).err, ErrConnClosed)

	_, err = c.Bot().SendPrivateText(context.Background(), 123, "late")
	require.ErrorIs(t, err, ErrConnClosed)
	assert.Equal(t, 0, c.Pending())
}

func TestMalformedFrameIsFatal(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	c, p := newTestConn(t, WithMetrics(m))

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	p.recv()
	require.NoError(t, p.tr.Send(context.Background(), []byte{0x80}))

	require.ErrorIs(t, c.wait(t), ErrMalformedFrame)
	require.ErrorIs(t, await(t, done).err, ErrConnClosed)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.malformed))
}

func TestNewConnRejectsInvalidBotID(t *testing.T) {
	for _, id := range []int64{0, -1} {
		local, _ := newPipe()
		_, err := NewConn(id, local)
		require.ErrorIs(t, err, ErrInvalidBotID)
	}
}

func TestServeTwice(t *testing.T) {
	c, _ := newTestConn(t)
	require.Eventually(t, func() bool { return c.serving.Load() }, time.Second, time.Millisecond)
	require.ErrorIs(t, c.Serve(context.Background()), ErrAlreadyServing)
}

func TestCallTimeout(t *testing.T) {
	c, p := newTestConn(t, WithCallTimeout(200*time.Millisecond))

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	req := p.recv()
	out := await(t, done)
	require.ErrorIs(t, out.err, context.DeadlineExceeded)
	assert.Equal(t, 0, c.Pending())

	// a late answer is an unmatched response, not an error
	p.reply(req, &onebot.SendPrivateMsgResp{MessageID: 42})
	done = sendAsync(context.Background(), c.Bot(), 123, "again")
	p.reply(p.recv(), &onebot.SendPrivateMsgResp{MessageID: 43})
	assert.Equal(t, int32(43), await(t, done).id)
}

func TestCallContextCanceled(t *testing.T) {
	c, p := newTestConn(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := sendAsync(ctx, c.Bot(), 123, "hi")
	p.recv()
	cancel()
	require.ErrorIs(t, await(t, done).err, context.Canceled)
	assert.Equal(t, 0, c.Pending())
}

// failingCodec refuses to encode frames of one type.
type failingCodec struct {
	ProtoCodec
	refuse onebot.FrameType
}

var errRefused = errors.New("refused")

func (c failingCodec) Encode(f *onebot.Frame) ([]byte, error) {
	if f.Type == c.refuse {
		return nil, errRefused
	}
	return c.ProtoCodec.Encode(f)
}

func TestEncodeFailureFailsOnlyThatCall(t *testing.T) {
	c, p := newTestConn(t, WithCodec(failingCodec{refuse: onebot.TDeleteMsgReq}))

	_, err := c.Bot().DeleteMsg(context.Background(), 1)
	require.ErrorIs(t, err, errRefused)

	done := sendAsync(context.Background(), c.Bot(), 123, "hi")
	p.reply(p.recv(), &onebot.SendPrivateMsgResp{MessageID: 42})
	assert.Equal(t, int32(42), await(t, done).id)
}

// brokenWriter fails every Send; Recv blocks until Close.
type brokenWriter struct {
	closed chan struct{}
	once   sync.Once
}

func (b *brokenWriter) Send(context.Context, []byte) error { return io.ErrShortWrite }

func (b *brokenWriter) Recv(context.Context) ([]byte, error) {
	<-b.closed
	return nil, io.ErrClosedPipe
}

func (b *brokenWriter) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}

func TestWriteFailureStopsReader(t *testing.T) {
	tr := &brokenWriter{closed: make(chan struct{})}
	c, err := NewConn(testBotID, tr)
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- c.Serve(context.Background()) }()

	_, err = c.Bot().SendPrivateText(context.Background(), 123, "hi")
	require.ErrorIs(t, err, ErrConnClosed)

	select {
	case err := <-served:
		require.ErrorIs(t, err, io.ErrShortWrite)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestServeContextCanceled(t *testing.T) {
	local, _ := newPipe()
	c, err := NewConn(testBotID, local)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- c.Serve(ctx) }()
	cancel()

	select {
	case err := <-served:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestTypedCallsUseTheirOwnFrameType(t *testing.T) {
	c, p := newTestConn(t)

	type result struct {
		resp *onebot.GetGroupMemberListResp
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		resp, err := c.Bot().GetGroupMemberList(context.Background(), 77)
		ch <- result{resp, err}
	}()
	req := p.recv()
	assert.Equal(t, onebot.TGetGroupMemberListReq, req.Type)
	assert.Equal(t, &onebot.GetGroupMemberListReq{GroupID: 77}, req.Data)

	members := []*onebot.GroupMember{{GroupID: 77, UserID: 1}, {GroupID: 77, UserID: 2}}
	p.reply(req, &onebot.GetGroupMemberListResp{GroupMember: members})
	res := <-ch
	require.NoError(t, res.err)
	assert.Equal(t, members, res.resp.GroupMember)

	go func() {
		_, err := c.Bot().SendMsg(context.Background(), "group", 0, 77, onebot.Chain(onebot.Text("x")), false)
		ch <- result{err: err}
	}()
	req = p.recv()
	assert.Equal(t, onebot.TSendMsgReq, req.Type)
	p.reply(req, &onebot.SendMsgResp{MessageID: 1})
	require.NoError(t, (<-ch).err)
}
