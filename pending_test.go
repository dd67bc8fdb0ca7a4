// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/botrpc/onebot"
)

func TestPendingResolveOnce(t *testing.T) {
	p := newPendingTable()
	slot, err := p.register("a")
	require.NoError(t, err)
	assert.Equal(t, 1, p.len())

	first := &onebot.Frame{Echo: "a", Data: &onebot.SendPrivateMsgResp{MessageID: 1}}
	second := &onebot.Frame{Echo: "a", Data: &onebot.SendPrivateMsgResp{MessageID: 2}}
	assert.True(t, p.resolve("a", first))
	assert.False(t, p.resolve("a", second))
	assert.Equal(t, 0, p.len())

	res := <-slot
	require.NoError(t, res.err)
	assert.Same(t, first, res.frame)
}

func TestPendingUnknownEcho(t *testing.T) {
	p := newPendingTable()
	assert.False(t, p.resolve("missing", &onebot.Frame{}))
	assert.False(t, p.reject("missing", errors.New("boom")))
	p.cancel("missing")
}

func TestPendingDuplicateRegistration(t *testing.T) {
	p := newPendingTable()
	_, err := p.register("a")
	require.NoError(t, err)
	_, err = p.register("a")
	require.ErrorIs(t, err, ErrDuplicateEcho)
}

func TestPendingReject(t *testing.T) {
	p := newPendingTable()
	slot, err := p.register("a")
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.True(t, p.reject("a", boom))
	res := <-slot
	assert.ErrorIs(t, res.err, boom)
	assert.Nil(t, res.frame)
}

func TestPendingCancel(t *testing.T) {
	p := newPendingTable()
	_, err := p.register("a")
	require.NoError(t, err)
	p.cancel("a")
	assert.Equal(t, 0, p.len())
	assert.False(t, p.resolve("a", &onebot.Frame{}))
}

func TestPendingFailAll(t *testing.T) {
	p := newPendingTable()
	slots := make([]<-chan callResult, 3)
	for i := range slots {
		var err error
		slots[i], err = p.register(fmt.Sprint(i))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, p.failAll(ErrConnClosed))
	for _, slot := range slots {
		_, ok := <-slot
		assert.False(t, ok)
	}
	assert.ErrorIs(t, p.failure(), ErrConnClosed)

	_, err := p.register("late")
	require.ErrorIs(t, err, ErrConnClosed)
	assert.Equal(t, 0, p.failAll(errors.New("again")))
	assert.ErrorIs(t, p.failure(), ErrConnClosed)
}

func TestPendingConcurrent(t *testing.T) {
	p := newPendingTable()
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		echo := fmt.Sprint(i)
		slot, err := p.register(echo)
		require.NoError(t, err)
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.resolve(echo, &onebot.Frame{Echo: echo})
		}()
		go func() {
			defer wg.Done()
			res := <-slot
			assert.Equal(t, echo, res.frame.Echo)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, p.len())
}
