// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package botrpc multiplexes OneBot traffic over a single bot connection:
// outbound API calls, their out-of-order responses and unsolicited events.
//
// # Transport Selection
//
// A bot reaches the gateway over one of the registered transports:
//
//	ws    # binary WebSocket messages at /ws/cq/ (default)
//	tcp   # 8 byte bot id hello, then [4 byte length][frame]
//	grpc  # bidirectional stream /onebot.Gateway/Connect
//
// Every transport message carries exactly one protobuf encoded frame (see
// package onebot). The bot id travels out of band, in the X-Self-ID header or
// its equivalent; zero is rejected.
//
// # Usage
//
// Gateway side:
//
//	bus := botrpc.NewEventBus()
//	bus.Subscribe(botrpc.EventTopic(onebot.TPrivateMessageEvent),
//	    func(ctx context.Context, bot *botrpc.Bot, ev *onebot.PrivateMessageEvent) {
//	        bot.SendPrivateText(ctx, ev.UserID, ev.RawMessage)
//	    })
//
//	gw := botrpc.NewGateway(
//	    botrpc.WithGatewayLogger(log),
//	    botrpc.WithConnOptions(botrpc.WithEventHandler(bus), botrpc.WithCallTimeout(30*time.Second)),
//	)
//	defer gw.Close()
//	http.ListenAndServe(":8081", gw.Handler())
//
// Calling a connected bot:
//
//	bot, ok := gw.Registry().Bot(10001)
//	resp, err := bot.SendPrivateMsg(ctx, 123, onebot.Chain(onebot.Text("hi")), false)
//
// A call registers its echo before the request is queued, waits for the frame
// echoing it back and fails with ErrConnClosed if the connection ends first.
// A response of an unexpected type yields ErrNoResult.
//
// # Architecture
//
//   - conn.go: Conn, the writer and reader loops of one connection
//   - pending.go: the echo to completion slot table
//   - client.go, api.go: the Bot call handle and its typed methods
//   - codec.go: Codec interface for frame encoding
//   - transport.go, dial.go: Transport registry and Dial
//   - ws.go, stream.go, grpc.go: transports
//   - gateway.go, registry.go, control.go: accepting bots and the JSON-RPC control plane
//   - json.go: control plane client
//   - events.go: topic based event fan-out
package botrpc
