// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mockbot is a minimal OneBot implementation: it answers every request
// with the paired response and can emit message events. It stands in for a
// real bot in tests and in `botgw mockbot`.
package mockbot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/botrpc"
	"github.com/luxfi/botrpc/onebot"
)

const firstMessageID = 42

// Bot answers the requests arriving on one transport.
type Bot struct {
	id    int64
	tr    botrpc.Transport
	codec botrpc.Codec
	log   *zap.Logger

	writeMu   sync.Mutex
	nextMsgID atomic.Int32
	handled   atomic.Int64
}

func New(id int64, tr botrpc.Transport, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bot{
		id:    id,
		tr:    tr,
		codec: botrpc.ProtoCodec{},
		log:   log.With(zap.Int64("bot_id", id)),
	}
	b.nextMsgID.Store(firstMessageID - 1)
	return b
}

// Handled returns how many requests have been answered
func (b *Bot) Handled() int64 { return b.handled.Load() }

// Serve answers requests until the transport fails or ctx ends.
func (b *Bot) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		b.tr.Close()
	}()
	for {
		data, err := b.tr.Recv(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read frame: %w", err)
		}
		req, err := b.codec.Decode(data)
		if err != nil {
			return fmt.Errorf("decode frame: %w", err)
		}
		if err := b.answer(ctx, req); err != nil {
			return err
		}
	}
}

func (b *Bot) answer(ctx context.Context, req *onebot.Frame) error {
	resp := onebot.ResponseFor(req.Data)
	if resp == nil {
		b.log.Debug("ignoring frame", zap.Stringer("type", req.Type))
		return nil
	}
	switch r := resp.(type) {
	case *onebot.SendPrivateMsgResp:
		r.MessageID = b.nextMsgID.Add(1)
	case *onebot.SendGroupMsgResp:
		r.MessageID = b.nextMsgID.Add(1)
	case *onebot.SendMsgResp:
		r.MessageID = b.nextMsgID.Add(1)
	case *onebot.GetLoginInfoResp:
		r.UserID = b.id
		r.Nickname = "mockbot"
	case *onebot.GetStatusResp:
		r.Online = true
		r.Good = true
	case *onebot.GetGroupListResp:
		r.Group = []*onebot.Group{{GroupID: 100, GroupName: "mockbot group", MemberCount: 1, MaxMemberCount: 200}}
	}
	b.handled.Add(1)
	b.log.Debug("answering", zap.Stringer("type", req.Type), zap.String("echo", req.Echo))
	return b.send(ctx, &onebot.Frame{
		BotID: b.id,
		Type:  onebot.FrameTypeOf(resp),
		Echo:  req.Echo,
		OK:    true,
		Data:  resp,
	})
}

// EmitPrivateMessage sends a private message event from userID.
func (b *Bot) EmitPrivateMessage(ctx context.Context, userID int64, text string) error {
	if text == "" {
		return errors.New("mockbot: empty message")
	}
	ev := &onebot.PrivateMessageEvent{
		Time:        time.Now().Unix(),
		SelfID:      b.id,
		PostType:    "message",
		MessageType: "private",
		SubType:     "friend",
		MessageID:   b.nextMsgID.Add(1),
		UserID:      userID,
		Message:     onebot.Chain(onebot.Text(text)),
		RawMessage:  text,
		Sender:      &onebot.Sender{UserID: userID, Nickname: fmt.Sprintf("user%d", userID)},
	}
	return b.send(ctx, &onebot.Frame{
		BotID: b.id,
		Type:  onebot.TPrivateMessageEvent,
		Data:  ev,
	})
}

func (b *Bot) send(ctx context.Context, f *onebot.Frame) error {
	data, err := b.codec.Encode(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if err := b.tr.Send(ctx, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
