// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/luxfi/botrpc/onebot"
)

// Bot is the call handle of one connected bot. It is safe for concurrent use;
// any number of calls may be outstanding at once.
type Bot struct {
	conn *Conn
}

// ID returns the bot id
func (b *Bot) ID() int64 { return b.conn.botID }

// Conn returns the connection the handle calls through
func (b *Bot) Conn() *Conn { return b.conn }

// Call sends data as a request frame and waits for the frame carrying the same
// echo. It returns ErrConnClosed if the connection goes away first, or the
// context error if ctx ends first.
func (b *Bot) Call(ctx context.Context, data onebot.Payload) (*onebot.Frame, error) {
	return b.conn.call(ctx, data)
}

// Do is Call returning only the response payload. A response without payload
// yields ErrNoResult.
func (b *Bot) Do(ctx context.Context, data onebot.Payload) (onebot.Payload, error) {
	f, err := b.conn.call(ctx, data)
	if err != nil {
		return nil, err
	}
	if f.Data == nil {
		return nil, ErrNoResult
	}
	return f.Data, nil
}

// EventHandler receives inbound events. HandleEvent runs on its own goroutine
// and may call back into bot.
type EventHandler interface {
	HandleEvent(ctx context.Context, bot *Bot, event onebot.Payload)
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc func(ctx context.Context, bot *Bot, event onebot.Payload)

func (f EventHandlerFunc) HandleEvent(ctx context.Context, bot *Bot, event onebot.Payload) {
	f(ctx, bot, event)
}

// newEcho returns a random correlation token: a v4 uuid as 32 hex characters.
func newEcho() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate echo: %w", err)
	}
	return hex.EncodeToString(id[:]), nil
}
