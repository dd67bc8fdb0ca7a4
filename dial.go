// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"fmt"
)

// Dial connects to a gateway as bot botID over the named transport. It is the
// bot side of the protocol and is used by the mock bot and tests.
func Dial(ctx context.Context, transport, addr string, botID int64) (Transport, error) {
	if botID <= 0 {
		return nil, ErrInvalidBotID
	}
	transportsMu.RLock()
	dial, ok := transports[transport]
	transportsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown transport: %s", transport)
	}
	return dial(ctx, addr, botID)
}
