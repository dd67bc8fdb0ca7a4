// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransient(t *testing.T) {
	reset := &net.OpError{Op: "read", Net: "tcp", Err: os.NewSyscallError("read", syscall.ECONNRESET)}
	refused := &url.Error{Op: "Post", URL: "http://gw/rpc", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}}

	assert.True(t, transient(reset))
	assert.True(t, transient(refused))
	assert.True(t, transient(fmt.Errorf("post: %w", syscall.EPIPE)))
	assert.True(t, transient(fmt.Errorf("%w: status 503", errRetryableStatus)))
	assert.False(t, transient(nil))
	assert.False(t, transient(errors.New("connection reset by a string")))
	assert.False(t, transient(context.Canceled))
}

func TestCallControlRetriesUnavailable(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"jsonrpc":"2.0","result":{"bots":[7]},"id":1}`)
	}))
	defer srv.Close()

	uri, err := url.Parse(srv.URL)
	require.NoError(t, err)
	var reply ListReply
	require.NoError(t, CallControl(context.Background(), uri, "Bot.List", &ListArgs{}, &reply))
	assert.Equal(t, []int64{7}, reply.Bots)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCallControlDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	uri, err := url.Parse(srv.URL)
	require.NoError(t, err)
	err = CallControl(context.Background(), uri, "Bot.List", &ListArgs{}, &ListReply{}, WithControlClient(srv.Client()))
	require.ErrorContains(t, err, "status 400")
	assert.Equal(t, int32(1), hits.Load())
}
