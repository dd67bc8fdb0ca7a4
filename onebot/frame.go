// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package onebot defines the OneBot frame envelope, the closed set of event,
// request and response payloads it carries, and their protobuf wire encoding.
package onebot

import (
	"fmt"
	"reflect"
)

// FrameType is the wire discriminant of a frame. It routes decoding and logging,
// never correlation.
type FrameType int32

// TUnknown is carried by frames whose payload has no known discriminant.
const TUnknown FrameType = 0

// Event discriminants
const (
	TPrivateMessageEvent FrameType = iota + 1
	TGroupMessageEvent
	TGroupUploadNoticeEvent
	TGroupAdminNoticeEvent
	TGroupDecreaseNoticeEvent
	TGroupIncreaseNoticeEvent
	TGroupBanNoticeEvent
	TFriendAddNoticeEvent
	TGroupRecallNoticeEvent
	TFriendRecallNoticeEvent
	TFriendRequestEvent
	TGroupRequestEvent
)

// Request discriminants. Each response discriminant is its request's plus responseOffset.
const (
	TSendPrivateMsgReq FrameType = iota + 101
	TSendGroupMsgReq
	TSendMsgReq
	TDeleteMsgReq
	TGetMsgReq
	TGetForwardMsgReq
	TSendLikeReq
	TSetGroupKickReq
	TSetGroupBanReq
	TSetGroupAnonymousBanReq
	TSetGroupWholeBanReq
	TSetGroupAdminReq
	TSetGroupAnonymousReq
	TSetGroupCardReq
	TSetGroupNameReq
	TSetGroupLeaveReq
	TSetGroupSpecialTitleReq
	TSetFriendAddRequestReq
	TSetGroupAddRequestReq
	TGetLoginInfoReq
	TGetStrangerInfoReq
	TGetFriendListReq
	TGetGroupInfoReq
	TGetGroupListReq
	TGetGroupMemberInfoReq
	TGetGroupMemberListReq
	TGetGroupHonorInfoReq
	TGetCookiesReq
	TGetCsrfTokenReq
	TGetCredentialsReq
	TGetRecordReq
	TGetImageReq
	TCanSendImageReq
	TCanSendRecordReq
	TGetStatusReq
	TGetVersionInfoReq
	TSetRestartReq
	TCleanCacheReq
)

// Response discriminants
const (
	TSendPrivateMsgResp FrameType = iota + 201
	TSendGroupMsgResp
	TSendMsgResp
	TDeleteMsgResp
	TGetMsgResp
	TGetForwardMsgResp
	TSendLikeResp
	TSetGroupKickResp
	TSetGroupBanResp
	TSetGroupAnonymousBanResp
	TSetGroupWholeBanResp
	TSetGroupAdminResp
	TSetGroupAnonymousResp
	TSetGroupCardResp
	TSetGroupNameResp
	TSetGroupLeaveResp
	TSetGroupSpecialTitleResp
	TSetFriendAddRequestResp
	TSetGroupAddRequestResp
	TGetLoginInfoResp
	TGetStrangerInfoResp
	TGetFriendListResp
	TGetGroupInfoResp
	TGetGroupListResp
	TGetGroupMemberInfoResp
	TGetGroupMemberListResp
	TGetGroupHonorInfoResp
	TGetCookiesResp
	TGetCsrfTokenResp
	TGetCredentialsResp
	TGetRecordResp
	TGetImageResp
	TCanSendImageResp
	TCanSendRecordResp
	TGetStatusResp
	TGetVersionInfoResp
	TSetRestartResp
	TCleanCacheResp
)

const responseOffset = 100

// String returns the wire enum name, e.g. "TSendPrivateMsgReq".
func (t FrameType) String() string {
	if t == TUnknown {
		return "Tunknown"
	}
	if e, ok := schemaByType[t]; ok {
		return "T" + e.goType.Elem().Name()
	}
	return fmt.Sprintf("FrameType(%d)", int32(t))
}

// IsRequest reports whether t is a request discriminant.
func (t FrameType) IsRequest() bool { return t >= TSendPrivateMsgReq && t <= TCleanCacheReq }

// IsResponse reports whether t is a response discriminant.
func (t FrameType) IsResponse() bool { return t >= TSendPrivateMsgResp && t <= TCleanCacheResp }

// IsEvent reports whether t is an event discriminant.
func (t FrameType) IsEvent() bool { return t >= TPrivateMessageEvent && t <= TGroupRequestEvent }

// Frame is the envelope exchanged with a bot. One transport message carries
// exactly one encoded Frame.
type Frame struct {
	// BotID identifies the logical bot (session) the frame belongs to.
	BotID int64 `pb:"1"`
	// Type is the payload discriminant.
	Type FrameType `pb:"2"`
	// Echo correlates a request with its response. Events leave it empty.
	Echo string `pb:"3"`
	// OK is the outcome flag of a response.
	OK bool `pb:"4"`
	// Extra carries auxiliary diagnostic fields; never interpreted here.
	Extra map[string]string `pb:"5"`
	// Data is nil for frames without (or with an unsupported) payload.
	Data Payload `pb:"-"`
}

// Payload is the closed union of everything a frame can carry. Variants are
// the pointer types declared in this package.
type Payload interface {
	isPayload()
}

// FrameTypeOf derives the discriminant of a payload variant. It is total: any
// payload without a schema entry, including nil, maps to TUnknown.
func FrameTypeOf(p Payload) FrameType {
	if p == nil {
		return TUnknown
	}
	switch e, ok := schemaByGoType[reflect.TypeOf(p)]; {
	case ok:
		return e.frameType
	default:
		return TUnknown
	}
}

// IsEvent reports whether p is one of the event variants. Everything else
// arriving from a bot is treated as an API response.
func IsEvent(p Payload) bool {
	return FrameTypeOf(p).IsEvent()
}

// ResponseFor returns a zero value of the response variant paired with the
// request p, or nil if p is not a request.
func ResponseFor(p Payload) Payload {
	t := FrameTypeOf(p)
	if !t.IsRequest() {
		return nil
	}
	e, ok := schemaByType[t+responseOffset]
	if !ok {
		return nil
	}
	return reflect.New(e.goType.Elem()).Interface().(Payload)
}
