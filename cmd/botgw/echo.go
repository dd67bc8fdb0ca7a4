// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/botrpc"
	"github.com/luxfi/botrpc/onebot"
)

const recallTimeout = 10 * time.Second

// echoHandler repeats private messages back to their sender and recalls the
// reply after recallAfter. Zero disables the recall.
type echoHandler struct {
	recallAfter time.Duration
	log         *zap.Logger
}

func (h *echoHandler) onPrivateMessage(ctx context.Context, bot *botrpc.Bot, ev *onebot.PrivateMessageEvent) {
	if ev.RawMessage == "" {
		return
	}
	h.echo(ctx, bot, ev)
	h.logGroups(ctx, bot)
}

func (h *echoHandler) echo(ctx context.Context, bot *botrpc.Bot, ev *onebot.PrivateMessageEvent) {
	resp, err := bot.SendPrivateMsg(ctx, ev.UserID, onebot.Chain(onebot.Text(ev.RawMessage)), false)
	if err != nil {
		h.log.Warn("echo failed", zap.Int64("bot_id", bot.ID()), zap.Int64("user_id", ev.UserID), zap.Error(err))
		return
	}
	h.log.Debug("echoed", zap.Int64("user_id", ev.UserID), zap.Int32("message_id", resp.MessageID))
	if h.recallAfter <= 0 {
		return
	}
	time.AfterFunc(h.recallAfter, func() {
		ctx, cancel := context.WithTimeout(context.Background(), recallTimeout)
		defer cancel()
		if _, err := bot.DeleteMsg(ctx, resp.MessageID); err != nil {
			h.log.Warn("recall failed", zap.Int32("message_id", resp.MessageID), zap.Error(err))
		}
	})
}

func (h *echoHandler) logGroups(ctx context.Context, bot *botrpc.Bot) {
	resp, err := bot.GetGroupList(ctx)
	if err != nil {
		h.log.Warn("group list failed", zap.Int64("bot_id", bot.ID()), zap.Error(err))
		return
	}
	for _, g := range resp.Group {
		h.log.Debug("group", zap.Int64("bot_id", bot.ID()), zap.Int64("group_id", g.GroupID), zap.String("group_name", g.GroupName))
	}
}
