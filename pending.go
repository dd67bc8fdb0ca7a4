// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"sync"

	"github.com/luxfi/botrpc/onebot"
)

// callResult is what a completion slot delivers: the response frame, or the
// error that ended this one call.
type callResult struct {
	frame *onebot.Frame
	err   error
}

// pendingTable maps echo -> completion slot of an outstanding call. Each slot
// has capacity 1 and is written at most once: an entry leaves the map under
// the lock before its slot is written or closed. The lock is never held
// across a blocking operation.
type pendingTable struct {
	mu     sync.Mutex
	slots  map[string]chan callResult
	closed bool
	err    error
}

func newPendingTable() *pendingTable {
	return &pendingTable{slots: make(map[string]chan callResult)}
}

// register creates the slot for echo. It fails once the table is closed and
// refuses an echo that is already outstanding.
func (t *pendingTable) register(echo string) (<-chan callResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, t.err
	}
	if _, ok := t.slots[echo]; ok {
		return nil, ErrDuplicateEcho
	}
	slot := make(chan callResult, 1)
	t.slots[echo] = slot
	return slot, nil
}

// resolve fulfils and removes the slot for echo. Unknown or already resolved
// echoes are a no-op and report false.
func (t *pendingTable) resolve(echo string, f *onebot.Frame) bool {
	return t.complete(echo, callResult{frame: f})
}

// reject fails the single call waiting on echo.
func (t *pendingTable) reject(echo string, err error) bool {
	return t.complete(echo, callResult{err: err})
}

func (t *pendingTable) complete(echo string, res callResult) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.slots[echo]
	if !ok {
		return false
	}
	delete(t.slots, echo)
	slot <- res
	return true
}

// cancel drops the slot for echo without fulfilling it.
func (t *pendingTable) cancel(echo string) {
	t.mu.Lock()
	delete(t.slots, echo)
	t.mu.Unlock()
}

// failAll closes the table: every outstanding slot is closed so its waiter
// observes err, and later registrations fail with err. It returns the number
// of calls failed.
func (t *pendingTable) failAll(err error) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		t.err = err
	}
	n := len(t.slots)
	for echo, slot := range t.slots {
		delete(t.slots, echo)
		close(slot)
	}
	return n
}

// failure returns the error the table was closed with.
func (t *pendingTable) failure() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *pendingTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}
