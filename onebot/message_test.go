// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package onebot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	assert.Equal(t, &Message{Type: "text", Data: map[string]string{"text": "hi"}}, Text("hi"))
	assert.Equal(t, &Message{Type: "at", Data: map[string]string{"qq": "123"}}, At(123))
	assert.Equal(t, &Message{Type: "face", Data: map[string]string{"id": "14"}}, Face(14))
	assert.Equal(t, "image", Image("a.png").Type)
	assert.Equal(t, "42", Reply(42).Data["id"])
}

func TestChain(t *testing.T) {
	head := Chain(At(1), Text(" hello"))
	chain := Chain(Reply(3), head, nil, (*Message)(nil), Face(2))

	assert.Len(t, chain, 4)
	assert.Equal(t, "reply", chain[0].Type)
	assert.Equal(t, "at", chain[1].Type)
	assert.Equal(t, "face", chain[3].Type)
	assert.Equal(t, " hello", PlainText(chain))
}
