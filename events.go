// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"

	evbus "github.com/asaskevich/EventBus"

	"github.com/luxfi/botrpc/onebot"
)

// TopicAll receives every event regardless of type
const TopicAll = "onebot.event"

// EventTopic is the topic events of type t are published on, e.g.
// "onebot.event.TPrivateMessageEvent".
func EventTopic(t onebot.FrameType) string {
	return TopicAll + "." + t.String()
}

// EventBus fans events out to topic subscribers. It implements EventHandler,
// so it can be installed with WithEventHandler.
//
// Subscribers are functions taking (context.Context, *Bot, P) where P is
// onebot.Payload, or the concrete event type when subscribing to the topic
// of a single type.
type EventBus struct {
	bus evbus.Bus
}

func NewEventBus() *EventBus {
	return &EventBus{bus: evbus.New()}
}

// Subscribe runs fn synchronously on the publishing goroutine
func (b *EventBus) Subscribe(topic string, fn any) error {
	return b.bus.Subscribe(topic, fn)
}

// SubscribeAsync runs fn on its own goroutine. Transactional subscribers see
// their events one at a time, in publishing order.
func (b *EventBus) SubscribeAsync(topic string, fn any, transactional bool) error {
	return b.bus.SubscribeAsync(topic, fn, transactional)
}

func (b *EventBus) Unsubscribe(topic string, fn any) error {
	return b.bus.Unsubscribe(topic, fn)
}

// WaitAsync blocks until every async subscriber has returned
func (b *EventBus) WaitAsync() {
	b.bus.WaitAsync()
}

func (b *EventBus) HandleEvent(ctx context.Context, bot *Bot, event onebot.Payload) {
	if event == nil {
		return
	}
	if topic := EventTopic(onebot.FrameTypeOf(event)); b.bus.HasCallback(topic) {
		b.bus.Publish(topic, ctx, bot, event)
	}
	if b.bus.HasCallback(TopicAll) {
		b.bus.Publish(TopicAll, ctx, bot, event)
	}
}
