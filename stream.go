// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxStreamFrame bounds a single frame on a stream transport
const maxStreamFrame = 64 * 1024 * 1024

const (
	streamWriteWait    = 30 * time.Second
	streamHelloTimeout = 10 * time.Second
)

var ErrFrameTooLarge = errors.New("botrpc: frame too large")

// StreamTransport frames messages over a byte stream as
// [4 byte big-endian length][frame].
type StreamTransport struct {
	conn    net.Conn
	header  [4]byte
	writeMu sync.Mutex
}

// NewStreamTransport wraps an established stream connection
func NewStreamTransport(conn net.Conn) *StreamTransport {
	return &StreamTransport{conn: conn}
}

// DialTCP connects to a gateway stream listener as bot botID. The first eight
// bytes on the wire are the big-endian bot id.
func DialTCP(ctx context.Context, addr string, botID int64) (Transport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcp dial: %w", err)
	}
	if err := writeHello(conn, botID); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tcp hello: %w", err)
	}
	return NewStreamTransport(conn), nil
}

func writeHello(conn net.Conn, botID int64) error {
	var hello [8]byte
	binary.BigEndian.PutUint64(hello[:], uint64(botID))
	conn.SetWriteDeadline(time.Now().Add(streamHelloTimeout))
	defer conn.SetWriteDeadline(time.Time{})
	_, err := conn.Write(hello[:])
	return err
}

func readHello(conn net.Conn) (int64, error) {
	var hello [8]byte
	conn.SetReadDeadline(time.Now().Add(streamHelloTimeout))
	defer conn.SetReadDeadline(time.Time{})
	if _, err := io.ReadFull(conn, hello[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(hello[:])), nil
}

func (t *StreamTransport) Send(ctx context.Context, data []byte) error {
	if len(data) > maxStreamFrame {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}
	buf := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(data)))
	copy(buf[4:], data)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(streamWriteWait)
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	t.conn.SetWriteDeadline(deadline)
	_, err := t.conn.Write(buf)
	return err
}

func (t *StreamTransport) Recv(ctx context.Context) ([]byte, error) {
	if _, err := io.ReadFull(t.conn, t.header[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(t.header[:])
	if n > maxStreamFrame {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}
	msg := make([]byte, n)
	if _, err := io.ReadFull(t.conn, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (t *StreamTransport) Close() error {
	return t.conn.Close()
}

// ServeTCP accepts stream connections on ln until ctx ends or the gateway is
// closed. Each connection starts with the 8 byte bot id hello.
func (g *Gateway) ServeTCP(ctx context.Context, ln net.Listener) error {
	go func() {
		select {
		case <-ctx.Done():
		case <-g.ctx.Done():
		}
		ln.Close()
	}()
	g.log.Info("stream listener started", zap.Stringer("addr", ln.Addr()))
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-g.ctx.Done():
				return nil
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		go g.handleStream(conn)
	}
}

func (g *Gateway) handleStream(conn net.Conn) {
	botID, err := readHello(conn)
	if err != nil || botID <= 0 {
		g.log.Warn("rejecting stream connection",
			zap.Stringer("remote_addr", conn.RemoteAddr()),
			zap.Int64("bot_id", botID),
			zap.Error(err),
		)
		conn.Close()
		return
	}
	g.attach(botID, NewStreamTransport(conn), TransportTCP)
}
