// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"github.com/luxfi/botrpc/onebot"
)

// Codec encodes and decodes frames. One transport message carries exactly one
// encoded frame.
type Codec interface {
	Encode(f *onebot.Frame) ([]byte, error)
	Decode(data []byte) (*onebot.Frame, error)
}

// ProtoCodec is the protobuf wire codec used by OneBot implementations
type ProtoCodec struct{}

func (ProtoCodec) Encode(f *onebot.Frame) ([]byte, error) {
	return onebot.Marshal(f)
}

func (ProtoCodec) Decode(data []byte) (*onebot.Frame, error) {
	return onebot.Unmarshal(data)
}

// defaultCodec is used when no codec is specified
var defaultCodec Codec = ProtoCodec{}
