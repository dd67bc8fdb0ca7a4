// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"io"
	"slices"
	"sync"
)

// Transport is an ordered, reliable duplex message stream. Send is only ever
// called from one goroutine at a time, as is Recv. Close must unblock both.
type Transport interface {
	io.Closer
	Send(ctx context.Context, data []byte) error
	Recv(ctx context.Context) ([]byte, error)
}

// Transport types
const (
	TransportWS   = "ws"   // WebSocket, binary messages (default)
	TransportTCP  = "tcp"  // length-prefixed frames over TCP
	TransportGRPC = "grpc" // gRPC bidirectional stream
)

// DefaultTransport is the transport used by OneBot implementations out of the box
const DefaultTransport = TransportWS

// dialFunc connects to a gateway at addr as bot botID.
type dialFunc func(ctx context.Context, addr string, botID int64) (Transport, error)

var (
	transportsMu sync.RWMutex
	transports   = map[string]dialFunc{
		TransportWS:  DialWS,
		TransportTCP: DialTCP,
	}
)

// registerTransport registers a new transport dialer
func registerTransport(name string, dial dialFunc) {
	transportsMu.Lock()
	defer transportsMu.Unlock()
	transports[name] = dial
}

// AvailableTransports returns the sorted list of available transport types
func AvailableTransports() []string {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	result := make([]string, 0, len(transports))
	for name := range transports {
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}

// HasTransport checks if a transport is available
func HasTransport(name string) bool {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	_, ok := transports[name]
	return ok
}
