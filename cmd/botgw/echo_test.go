// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/luxfi/botrpc"
	"github.com/luxfi/botrpc/internal/mockbot"
	"github.com/luxfi/botrpc/onebot"
)

func TestEchoRepliesAndListsGroups(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	local, remote := net.Pipe()
	peer := mockbot.New(10001, botrpc.NewStreamTransport(remote), nil)
	go peer.Serve(ctx)

	c, err := botrpc.NewConn(10001, botrpc.NewStreamTransport(local))
	require.NoError(t, err)
	go c.Serve(ctx)
	defer c.Close()

	core, logs := observer.New(zap.DebugLevel)
	h := &echoHandler{log: zap.New(core)}
	h.onPrivateMessage(ctx, c.Bot(), &onebot.PrivateMessageEvent{UserID: 123, RawMessage: "hi"})

	require.Equal(t, 1, logs.FilterMessage("echoed").Len())
	groups := logs.FilterMessage("group").All()
	require.Len(t, groups, 1)
	assert.Equal(t, int64(100), groups[0].ContextMap()["group_id"])
	assert.Equal(t, "mockbot group", groups[0].ContextMap()["group_name"])
	assert.Equal(t, int64(2), peer.Handled())
}

func TestEchoIgnoresEmptyMessages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := &echoHandler{log: zap.New(core), recallAfter: time.Second}
	h.onPrivateMessage(context.Background(), nil, &onebot.PrivateMessageEvent{UserID: 123})
	assert.Zero(t, logs.Len())
}
