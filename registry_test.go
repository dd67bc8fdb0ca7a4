// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdleConn(t *testing.T, botID int64) *Conn {
	t.Helper()
	local, _ := newPipe()
	c, err := NewConn(botID, local)
	require.NoError(t, err)
	return c
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	first := newIdleConn(t, 1)
	second := newIdleConn(t, 1)

	assert.Nil(t, r.Put(first))
	assert.Same(t, first, r.Put(second))

	select {
	case <-first.Done():
	default:
		t.Fatal("replaced connection not closed")
	}

	// the replaced connection leaving must not evict its successor
	assert.False(t, r.Remove(first))
	got, ok := r.Get(1)
	require.True(t, ok)
	assert.Same(t, second, got)

	assert.True(t, r.Remove(second))
	_, ok = r.Get(1)
	assert.False(t, ok)
}

func TestRegistryIDs(t *testing.T) {
	r := NewRegistry()
	for _, id := range []int64{30, 10, 20} {
		r.Put(newIdleConn(t, id))
	}
	assert.Equal(t, []int64{10, 20, 30}, r.IDs())
	assert.Equal(t, 3, r.Len())

	bot, ok := r.Bot(20)
	require.True(t, ok)
	assert.Equal(t, int64(20), bot.ID())
	_, ok = r.Bot(40)
	assert.False(t, ok)

	r.CloseAll()
	for _, id := range r.IDs() {
		c, _ := r.Get(id)
		select {
		case <-c.Done():
		default:
			t.Fatalf("connection %d not closed", id)
		}
	}
}
