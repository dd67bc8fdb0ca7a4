// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package onebot

import (
	"reflect"

	"google.golang.org/protobuf/encoding/protowire"
)

type schemaEntry struct {
	frameType FrameType
	field     protowire.Number
	goType    reflect.Type
}

// schema binds every payload variant to its discriminant and to its field
// number inside the frame's payload oneof. A variant missing here cannot be
// encoded and derives TUnknown.
var schema = []schemaEntry{
	{TPrivateMessageEvent, 11, reflect.TypeFor[*PrivateMessageEvent]()},
	{TGroupMessageEvent, 12, reflect.TypeFor[*GroupMessageEvent]()},
	{TGroupUploadNoticeEvent, 13, reflect.TypeFor[*GroupUploadNoticeEvent]()},
	{TGroupAdminNoticeEvent, 14, reflect.TypeFor[*GroupAdminNoticeEvent]()},
	{TGroupDecreaseNoticeEvent, 15, reflect.TypeFor[*GroupDecreaseNoticeEvent]()},
	{TGroupIncreaseNoticeEvent, 16, reflect.TypeFor[*GroupIncreaseNoticeEvent]()},
	{TGroupBanNoticeEvent, 17, reflect.TypeFor[*GroupBanNoticeEvent]()},
	{TFriendAddNoticeEvent, 18, reflect.TypeFor[*FriendAddNoticeEvent]()},
	{TGroupRecallNoticeEvent, 19, reflect.TypeFor[*GroupRecallNoticeEvent]()},
	{TFriendRecallNoticeEvent, 20, reflect.TypeFor[*FriendRecallNoticeEvent]()},
	{TFriendRequestEvent, 21, reflect.TypeFor[*FriendRequestEvent]()},
	{TGroupRequestEvent, 22, reflect.TypeFor[*GroupRequestEvent]()},

	{TSendPrivateMsgReq, 101, reflect.TypeFor[*SendPrivateMsgReq]()},
	{TSendGroupMsgReq, 102, reflect.TypeFor[*SendGroupMsgReq]()},
	{TSendMsgReq, 103, reflect.TypeFor[*SendMsgReq]()},
	{TDeleteMsgReq, 104, reflect.TypeFor[*DeleteMsgReq]()},
	{TGetMsgReq, 105, reflect.TypeFor[*GetMsgReq]()},
	{TGetForwardMsgReq, 106, reflect.TypeFor[*GetForwardMsgReq]()},
	{TSendLikeReq, 107, reflect.TypeFor[*SendLikeReq]()},
	{TSetGroupKickReq, 108, reflect.TypeFor[*SetGroupKickReq]()},
	{TSetGroupBanReq, 109, reflect.TypeFor[*SetGroupBanReq]()},
	{TSetGroupAnonymousBanReq, 110, reflect.TypeFor[*SetGroupAnonymousBanReq]()},
	{TSetGroupWholeBanReq, 111, reflect.TypeFor[*SetGroupWholeBanReq]()},
	{TSetGroupAdminReq, 112, reflect.TypeFor[*SetGroupAdminReq]()},
	{TSetGroupAnonymousReq, 113, reflect.TypeFor[*SetGroupAnonymousReq]()},
	{TSetGroupCardReq, 114, reflect.TypeFor[*SetGroupCardReq]()},
	{TSetGroupNameReq, 115, reflect.TypeFor[*SetGroupNameReq]()},
	{TSetGroupLeaveReq, 116, reflect.TypeFor[*SetGroupLeaveReq]()},
	{TSetGroupSpecialTitleReq, 117, reflect.TypeFor[*SetGroupSpecialTitleReq]()},
	{TSetFriendAddRequestReq, 118, reflect.TypeFor[*SetFriendAddRequestReq]()},
	{TSetGroupAddRequestReq, 119, reflect.TypeFor[*SetGroupAddRequestReq]()},
	{TGetLoginInfoReq, 120, reflect.TypeFor[*GetLoginInfoReq]()},
	{TGetStrangerInfoReq, 121, reflect.TypeFor[*GetStrangerInfoReq]()},
	{TGetFriendListReq, 122, reflect.TypeFor[*GetFriendListReq]()},
	{TGetGroupInfoReq, 123, reflect.TypeFor[*GetGroupInfoReq]()},
	{TGetGroupListReq, 124, reflect.TypeFor[*GetGroupListReq]()},
	{TGetGroupMemberInfoReq, 125, reflect.TypeFor[*GetGroupMemberInfoReq]()},
	{TGetGroupMemberListReq, 126, reflect.TypeFor[*GetGroupMemberListReq]()},
	{TGetGroupHonorInfoReq, 127, reflect.TypeFor[*GetGroupHonorInfoReq]()},
	{TGetCookiesReq, 128, reflect.TypeFor[*GetCookiesReq]()},
	{TGetCsrfTokenReq, 129, reflect.TypeFor[*GetCsrfTokenReq]()},
	{TGetCredentialsReq, 130, reflect.TypeFor[*GetCredentialsReq]()},
	{TGetRecordReq, 131, reflect.TypeFor[*GetRecordReq]()},
	{TGetImageReq, 132, reflect.TypeFor[*GetImageReq]()},
	{TCanSendImageReq, 133, reflect.TypeFor[*CanSendImageReq]()},
	{TCanSendRecordReq, 134, reflect.TypeFor[*CanSendRecordReq]()},
	{TGetStatusReq, 135, reflect.TypeFor[*GetStatusReq]()},
	{TGetVersionInfoReq, 136, reflect.TypeFor[*GetVersionInfoReq]()},
	{TSetRestartReq, 137, reflect.TypeFor[*SetRestartReq]()},
	{TCleanCacheReq, 138, reflect.TypeFor[*CleanCacheReq]()},

	{TSendPrivateMsgResp, 201, reflect.TypeFor[*SendPrivateMsgResp]()},
	{TSendGroupMsgResp, 202, reflect.TypeFor[*SendGroupMsgResp]()},
	{TSendMsgResp, 203, reflect.TypeFor[*SendMsgResp]()},
	{TDeleteMsgResp, 204, reflect.TypeFor[*DeleteMsgResp]()},
	{TGetMsgResp, 205, reflect.TypeFor[*GetMsgResp]()},
	{TGetForwardMsgResp, 206, reflect.TypeFor[*GetForwardMsgResp]()},
	{TSendLikeResp, 207, reflect.TypeFor[*SendLikeResp]()},
	{TSetGroupKickResp, 208, reflect.TypeFor[*SetGroupKickResp]()},
	{TSetGroupBanResp, 209, reflect.TypeFor[*SetGroupBanResp]()},
	{TSetGroupAnonymousBanResp, 210, reflect.TypeFor[*SetGroupAnonymousBanResp]()},
	{TSetGroupWholeBanResp, 211, reflect.TypeFor[*SetGroupWholeBanResp]()},
	{TSetGroupAdminResp, 212, reflect.TypeFor[*SetGroupAdminResp]()},
	{TSetGroupAnonymousResp, 213, reflect.TypeFor[*SetGroupAnonymousResp]()},
	{TSetGroupCardResp, 214, reflect.TypeFor[*SetGroupCardResp]()},
	{TSetGroupNameResp, 215, reflect.TypeFor[*SetGroupNameResp]()},
	{TSetGroupLeaveResp, 216, reflect.TypeFor[*SetGroupLeaveResp]()},
	{TSetGroupSpecialTitleResp, 217, reflect.TypeFor[*SetGroupSpecialTitleResp]()},
	{TSetFriendAddRequestResp, 218, reflect.TypeFor[*SetFriendAddRequestResp]()},
	{TSetGroupAddRequestResp, 219, reflect.TypeFor[*SetGroupAddRequestResp]()},
	{TGetLoginInfoResp, 220, reflect.TypeFor[*GetLoginInfoResp]()},
	{TGetStrangerInfoResp, 221, reflect.TypeFor[*GetStrangerInfoResp]()},
	{TGetFriendListResp, 222, reflect.TypeFor[*GetFriendListResp]()},
	{TGetGroupInfoResp, 223, reflect.TypeFor[*GetGroupInfoResp]()},
	{TGetGroupListResp, 224, reflect.TypeFor[*GetGroupListResp]()},
	{TGetGroupMemberInfoResp, 225, reflect.TypeFor[*GetGroupMemberInfoResp]()},
	{TGetGroupMemberListResp, 226, reflect.TypeFor[*GetGroupMemberListResp]()},
	{TGetGroupHonorInfoResp, 227, reflect.TypeFor[*GetGroupHonorInfoResp]()},
	{TGetCookiesResp, 228, reflect.TypeFor[*GetCookiesResp]()},
	{TGetCsrfTokenResp, 229, reflect.TypeFor[*GetCsrfTokenResp]()},
	{TGetCredentialsResp, 230, reflect.TypeFor[*GetCredentialsResp]()},
	{TGetRecordResp, 231, reflect.TypeFor[*GetRecordResp]()},
	{TGetImageResp, 232, reflect.TypeFor[*GetImageResp]()},
	{TCanSendImageResp, 233, reflect.TypeFor[*CanSendImageResp]()},
	{TCanSendRecordResp, 234, reflect.TypeFor[*CanSendRecordResp]()},
	{TGetStatusResp, 235, reflect.TypeFor[*GetStatusResp]()},
	{TGetVersionInfoResp, 236, reflect.TypeFor[*GetVersionInfoResp]()},
	{TSetRestartResp, 237, reflect.TypeFor[*SetRestartResp]()},
	{TCleanCacheResp, 238, reflect.TypeFor[*CleanCacheResp]()},
}

var (
	schemaByType   = make(map[FrameType]schemaEntry, len(schema))
	schemaByGoType = make(map[reflect.Type]schemaEntry, len(schema))
	schemaByField  = make(map[protowire.Number]schemaEntry, len(schema))
)

func init() {
	for _, e := range schema {
		schemaByType[e.frameType] = e
		schemaByGoType[e.goType] = e
		schemaByField[e.field] = e
	}
}
