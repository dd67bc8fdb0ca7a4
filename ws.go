// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// HeaderSelfID carries the bot id during the connection handshake
const HeaderSelfID = "X-Self-ID"

const wsWriteWait = 10 * time.Second

// WSTransport carries one frame per binary WebSocket message. Text messages
// are ignored.
type WSTransport struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	closeErr  error
}

// NewWSTransport wraps an upgraded or dialed WebSocket connection
func NewWSTransport(conn *websocket.Conn) *WSTransport {
	return &WSTransport{conn: conn}
}

// DialWS connects to the gateway WebSocket endpoint at url as bot botID.
func DialWS(ctx context.Context, url string, botID int64) (Transport, error) {
	header := http.Header{}
	header.Set(HeaderSelfID, strconv.FormatInt(botID, 10))
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("ws dial: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("ws dial: %w", err)
	}
	return NewWSTransport(conn), nil
}

func (t *WSTransport) Send(ctx context.Context, data []byte) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(wsWriteWait)
	}
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (t *WSTransport) Recv(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := t.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if typ == websocket.BinaryMessage {
			return data, nil
		}
	}
}

// Close sends a close message when possible and closes the connection.
func (t *WSTransport) Close() error {
	t.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = t.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}
