// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	grpcServiceName = "onebot.Gateway"
	grpcConnectPath = "/" + grpcServiceName + "/Connect"
	grpcSelfIDKey   = "x-self-id"
)

func init() {
	registerTransport(TransportGRPC, DialGRPC)
}

// rawCodec passes encoded frames through gRPC untouched
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	switch b := v.(type) {
	case *[]byte:
		return *b, nil
	case []byte:
		return b, nil
	default:
		return nil, fmt.Errorf("raw codec: unexpected %T", v)
	}
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	b, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("raw codec: unexpected %T", v)
	}
	*b = append((*b)[:0], data...)
	return nil
}

func (rawCodec) Name() string { return "onebot-raw" }

var gatewayStreamDesc = grpc.StreamDesc{
	StreamName:    "Connect",
	ServerStreams: true,
	ClientStreams: true,
}

// DialGRPC opens the Connect stream of a gateway at target as bot botID.
func DialGRPC(ctx context.Context, target string, botID int64) (Transport, error) {
	return DialGRPCWith(ctx, target, botID, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// DialGRPCWith is DialGRPC with explicit dial options.
func DialGRPCWith(ctx context.Context, target string, botID int64, opts ...grpc.DialOption) (Transport, error) {
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial: %w", err)
	}
	// the stream outlives ctx, which only bounds establishing it
	streamCtx, cancel := context.WithCancel(context.Background())
	streamCtx = metadata.AppendToOutgoingContext(streamCtx, grpcSelfIDKey, strconv.FormatInt(botID, 10))

	type result struct {
		stream grpc.ClientStream
		err    error
	}
	done := make(chan result, 1)
	go func() {
		s, err := cc.NewStream(streamCtx, &gatewayStreamDesc, grpcConnectPath, grpc.ForceCodec(rawCodec{}))
		done <- result{s, err}
	}()
	select {
	case r := <-done:
		if r.err != nil {
			cancel()
			cc.Close()
			return nil, fmt.Errorf("grpc connect: %w", r.err)
		}
		return &grpcClientTransport{cc: cc, stream: r.stream, cancel: cancel}, nil
	case <-ctx.Done():
		cancel()
		cc.Close()
		return nil, ctx.Err()
	}
}

type grpcClientTransport struct {
	cc        *grpc.ClientConn
	stream    grpc.ClientStream
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (t *grpcClientTransport) Send(_ context.Context, data []byte) error {
	return t.stream.SendMsg(&data)
}

func (t *grpcClientTransport) Recv(context.Context) ([]byte, error) {
	var data []byte
	if err := t.stream.RecvMsg(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func (t *grpcClientTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.stream.CloseSend()
		t.cancel()
		err = t.cc.Close()
	})
	return err
}

// grpcServerTransport adapts the server side of a Connect stream. A stream
// handler cannot interrupt its own RecvMsg, so a pump goroutine feeds Recv and
// Close only has to stop waiting on it. The handler returns after the
// connection is done, so SendMsg is never called on a finished stream.
type grpcServerTransport struct {
	stream    grpc.ServerStream
	recvc     chan grpcRecv
	closing   chan struct{}
	closeOnce sync.Once
}

type grpcRecv struct {
	data []byte
	err  error
}

func newGRPCServerTransport(stream grpc.ServerStream) *grpcServerTransport {
	t := &grpcServerTransport{
		stream:  stream,
		recvc:   make(chan grpcRecv),
		closing: make(chan struct{}),
	}
	go t.pump()
	return t
}

func (t *grpcServerTransport) pump() {
	for {
		var data []byte
		err := t.stream.RecvMsg(&data)
		select {
		case t.recvc <- grpcRecv{data: data, err: err}:
		case <-t.closing:
			return
		}
		if err != nil {
			return
		}
	}
}

func (t *grpcServerTransport) Send(_ context.Context, data []byte) error {
	select {
	case <-t.closing:
		return net.ErrClosed
	default:
	}
	return t.stream.SendMsg(&data)
}

func (t *grpcServerTransport) Recv(ctx context.Context) ([]byte, error) {
	select {
	case r := <-t.recvc:
		return r.data, r.err
	case <-t.closing:
		return nil, net.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *grpcServerTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closing) })
	return nil
}

// GRPCServer returns a gRPC server exposing the Connect stream. Bots identify
// themselves with x-self-id metadata.
func (g *Gateway) GRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ForceServerCodec(rawCodec{}))
	s := grpc.NewServer(opts...)
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: grpcServiceName,
		HandlerType: (*any)(nil),
		Streams: []grpc.StreamDesc{{
			StreamName:    gatewayStreamDesc.StreamName,
			ServerStreams: true,
			ClientStreams: true,
			Handler: func(_ any, stream grpc.ServerStream) error {
				return g.connectGRPC(stream)
			},
		}},
	}, g)
	return s
}

func (g *Gateway) connectGRPC(stream grpc.ServerStream) error {
	var raw string
	if md, ok := metadata.FromIncomingContext(stream.Context()); ok {
		if v := md.Get(grpcSelfIDKey); len(v) > 0 {
			raw = v[0]
		}
	}
	botID, ok := parseSelfID(raw)
	if !ok {
		g.log.Warn("rejecting grpc stream without valid bot id", zap.String("self_id", raw))
		return status.Errorf(codes.InvalidArgument, "invalid %s", grpcSelfIDKey)
	}

	if err := g.attach(botID, newGRPCServerTransport(stream), TransportGRPC); errors.Is(err, errGatewayClosed) {
		return status.Error(codes.Unavailable, err.Error())
	}
	return nil
}
