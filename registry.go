// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"slices"
	"sync"
)

// Registry tracks the live connection of every bot, keyed by bot id.
type Registry struct {
	mu    sync.RWMutex
	conns map[int64]*Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[int64]*Conn)}
}

// Put stores c under its bot id. A connection already stored for that id is
// closed and returned.
func (r *Registry) Put(c *Conn) *Conn {
	r.mu.Lock()
	old := r.conns[c.ID()]
	r.conns[c.ID()] = c
	r.mu.Unlock()

	if old != nil && old != c {
		old.Close()
		return old
	}
	return nil
}

// Remove deletes c, but only while it is still the stored connection for its
// bot id: a connection that was replaced never evicts its successor.
func (r *Registry) Remove(c *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[c.ID()] != c {
		return false
	}
	delete(r.conns, c.ID())
	return true
}

func (r *Registry) Get(botID int64) (*Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[botID]
	return c, ok
}

// Bot returns the call handle of a connected bot
func (r *Registry) Bot(botID int64) (*Bot, bool) {
	c, ok := r.Get(botID)
	if !ok {
		return nil, false
	}
	return c.Bot(), true
}

// IDs returns the connected bot ids in ascending order
func (r *Registry) IDs() []int64 {
	r.mu.RLock()
	ids := make([]int64, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll closes every stored connection. Entries leave the registry as
// their connections finish serving.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	conns := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()
	for _, c := range conns {
		c.Close()
	}
}
