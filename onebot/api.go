// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package onebot

// Requests

type SendPrivateMsgReq struct {
	UserID     int64      `pb:"1"`
	Message    []*Message `pb:"2"`
	AutoEscape bool       `pb:"3"`
}

type SendGroupMsgReq struct {
	GroupID    int64      `pb:"1"`
	Message    []*Message `pb:"2"`
	AutoEscape bool       `pb:"3"`
}

type SendMsgReq struct {
	MessageType string     `pb:"1"`
	UserID      int64      `pb:"2"`
	GroupID     int64      `pb:"3"`
	Message     []*Message `pb:"4"`
	AutoEscape  bool       `pb:"5"`
}

type DeleteMsgReq struct {
	MessageID int32 `pb:"1"`
}

type GetMsgReq struct {
	MessageID int32 `pb:"1"`
}

type GetForwardMsgReq struct {
	ID string `pb:"1"`
}

type SendLikeReq struct {
	UserID int64 `pb:"1"`
	Times  int32 `pb:"2"`
}

type SetGroupKickReq struct {
	GroupID          int64 `pb:"1"`
	UserID           int64 `pb:"2"`
	RejectAddRequest bool  `pb:"3"`
}

type SetGroupBanReq struct {
	GroupID  int64 `pb:"1"`
	UserID   int64 `pb:"2"`
	Duration int32 `pb:"3"`
}

type SetGroupAnonymousBanReq struct {
	GroupID  int64  `pb:"1"`
	Flag     string `pb:"2"`
	Duration int32  `pb:"3"`
}

type SetGroupWholeBanReq struct {
	GroupID int64 `pb:"1"`
	Enable  bool  `pb:"2"`
}

type SetGroupAdminReq struct {
	GroupID int64 `pb:"1"`
	UserID  int64 `pb:"2"`
	Enable  bool  `pb:"3"`
}

type SetGroupAnonymousReq struct {
	GroupID int64 `pb:"1"`
	Enable  bool  `pb:"2"`
}

type SetGroupCardReq struct {
	GroupID int64  `pb:"1"`
	UserID  int64  `pb:"2"`
	Card    string `pb:"3"`
}

type SetGroupNameReq struct {
	GroupID   int64  `pb:"1"`
	GroupName string `pb:"2"`
}

type SetGroupLeaveReq struct {
	GroupID   int64 `pb:"1"`
	IsDismiss bool  `pb:"2"`
}

type SetGroupSpecialTitleReq struct {
	GroupID      int64  `pb:"1"`
	UserID       int64  `pb:"2"`
	SpecialTitle string `pb:"3"`
	Duration     int64  `pb:"4"`
}

type SetFriendAddRequestReq struct {
	Flag    string `pb:"1"`
	Approve bool   `pb:"2"`
	Remark  string `pb:"3"`
}

type SetGroupAddRequestReq struct {
	Flag    string `pb:"1"`
	SubType string `pb:"2"`
	Type    string `pb:"3"`
	Approve bool   `pb:"4"`
	Reason  string `pb:"5"`
}

type GetLoginInfoReq struct{}

type GetStrangerInfoReq struct {
	UserID  int64 `pb:"1"`
	NoCache bool  `pb:"2"`
}

type GetFriendListReq struct{}

type GetGroupInfoReq struct {
	GroupID int64 `pb:"1"`
	NoCache bool  `pb:"2"`
}

type GetGroupListReq struct{}

type GetGroupMemberInfoReq struct {
	GroupID int64 `pb:"1"`
	UserID  int64 `pb:"2"`
	NoCache bool  `pb:"3"`
}

type GetGroupMemberListReq struct {
	GroupID int64 `pb:"1"`
}

type GetGroupHonorInfoReq struct {
	GroupID int64  `pb:"1"`
	Type    string `pb:"2"`
}

type GetCookiesReq struct {
	Domain string `pb:"1"`
}

type GetCsrfTokenReq struct{}

type GetCredentialsReq struct {
	Domain string `pb:"1"`
}

type GetRecordReq struct {
	File      string `pb:"1"`
	OutFormat string `pb:"2"`
}

type GetImageReq struct {
	File string `pb:"1"`
}

type CanSendImageReq struct{}

type CanSendRecordReq struct{}

type GetStatusReq struct{}

type GetVersionInfoReq struct{}

type SetRestartReq struct {
	Delay int32 `pb:"1"`
}

type CleanCacheReq struct{}

// Responses

type SendPrivateMsgResp struct {
	MessageID int32 `pb:"1"`
}

type SendGroupMsgResp struct {
	MessageID int32 `pb:"1"`
}

type SendMsgResp struct {
	MessageID int32 `pb:"1"`
}

type DeleteMsgResp struct{}

type GetMsgResp struct {
	Time        int32      `pb:"1"`
	MessageType string     `pb:"2"`
	MessageID   int32      `pb:"3"`
	RealID      int32      `pb:"4"`
	Sender      *Sender    `pb:"5"`
	Message     []*Message `pb:"6"`
	RawMessage  string     `pb:"7"`
}

type GetForwardMsgResp struct {
	Message []*Message `pb:"1"`
}

type SendLikeResp struct{}

type SetGroupKickResp struct{}

type SetGroupBanResp struct{}

type SetGroupAnonymousBanResp struct{}

type SetGroupWholeBanResp struct{}

type SetGroupAdminResp struct{}

type SetGroupAnonymousResp struct{}

type SetGroupCardResp struct{}

type SetGroupNameResp struct{}

type SetGroupLeaveResp struct{}

type SetGroupSpecialTitleResp struct{}

type SetFriendAddRequestResp struct{}

type SetGroupAddRequestResp struct{}

type GetLoginInfoResp struct {
	UserID   int64  `pb:"1"`
	Nickname string `pb:"2"`
}

type GetStrangerInfoResp struct {
	UserID   int64  `pb:"1"`
	Nickname string `pb:"2"`
	Sex      string `pb:"3"`
	Age      int32  `pb:"4"`
}

// Friend is an entry of GetFriendListResp.
type Friend struct {
	UserID   int64  `pb:"1"`
	Nickname string `pb:"2"`
	Remark   string `pb:"3"`
}

type GetFriendListResp struct {
	Friend []*Friend `pb:"1"`
}

type GetGroupInfoResp struct {
	GroupID        int64  `pb:"1"`
	GroupName      string `pb:"2"`
	MemberCount    int32  `pb:"3"`
	MaxMemberCount int32  `pb:"4"`
}

// Group is an entry of GetGroupListResp.
type Group struct {
	GroupID        int64  `pb:"1"`
	GroupName      string `pb:"2"`
	MemberCount    int32  `pb:"3"`
	MaxMemberCount int32  `pb:"4"`
}

type GetGroupListResp struct {
	Group []*Group `pb:"1"`
}

// GroupMember is the member record returned by the member info calls. List
// results may omit fields such as Area and Title.
type GroupMember struct {
	GroupID         int64  `pb:"1"`
	UserID          int64  `pb:"2"`
	Nickname        string `pb:"3"`
	Card            string `pb:"4"`
	Sex             string `pb:"5"`
	Age             int32  `pb:"6"`
	Area            string `pb:"7"`
	JoinTime        int32  `pb:"8"`
	LastSentTime    int32  `pb:"9"`
	Level           string `pb:"10"`
	Role            string `pb:"11"`
	Unfriendly      bool   `pb:"12"`
	Title           string `pb:"13"`
	TitleExpireTime int64  `pb:"14"`
	CardChangeable  bool   `pb:"15"`
}

type GetGroupMemberInfoResp struct {
	Member *GroupMember `pb:"1"`
}

type GetGroupMemberListResp struct {
	GroupMember []*GroupMember `pb:"1"`
}

// Honor is one entry of a group honor list.
type Honor struct {
	UserID      int64  `pb:"1"`
	Nickname    string `pb:"2"`
	Avatar      string `pb:"3"`
	Description string `pb:"4"`
	DayCount    int32  `pb:"5"`
}

type GetGroupHonorInfoResp struct {
	GroupID          int64    `pb:"1"`
	CurrentTalkative *Honor   `pb:"2"`
	TalkativeList    []*Honor `pb:"3"`
	PerformerList    []*Honor `pb:"4"`
	LegendList       []*Honor `pb:"5"`
	StrongNewbieList []*Honor `pb:"6"`
	EmotionList      []*Honor `pb:"7"`
}

type GetCookiesResp struct {
	Cookies string `pb:"1"`
}

type GetCsrfTokenResp struct {
	Token int32 `pb:"1"`
}

type GetCredentialsResp struct {
	Cookies   string `pb:"1"`
	CsrfToken int32  `pb:"2"`
}

type GetRecordResp struct {
	File string `pb:"1"`
}

type GetImageResp struct {
	File string `pb:"1"`
}

type CanSendImageResp struct {
	Yes bool `pb:"1"`
}

type CanSendRecordResp struct {
	Yes bool `pb:"1"`
}

type GetStatusResp struct {
	Online bool `pb:"1"`
	Good   bool `pb:"2"`
}

type GetVersionInfoResp struct {
	AppName         string `pb:"1"`
	AppVersion      string `pb:"2"`
	ProtocolVersion string `pb:"3"`
}

type SetRestartResp struct{}

type CleanCacheResp struct{}

func (*SendPrivateMsgReq) isPayload()       {}
func (*SendGroupMsgReq) isPayload()         {}
func (*SendMsgReq) isPayload()              {}
func (*DeleteMsgReq) isPayload()            {}
func (*GetMsgReq) isPayload()               {}
func (*GetForwardMsgReq) isPayload()        {}
func (*SendLikeReq) isPayload()             {}
func (*SetGroupKickReq) isPayload()         {}
func (*SetGroupBanReq) isPayload()          {}
func (*SetGroupAnonymousBanReq) isPayload() {}
func (*SetGroupWholeBanReq) isPayload()     {}
func (*SetGroupAdminReq) isPayload()        {}
func (*SetGroupAnonymousReq) isPayload()    {}
func (*SetGroupCardReq) isPayload()         {}
func (*SetGroupNameReq) isPayload()         {}
func (*SetGroupLeaveReq) isPayload()        {}
func (*SetGroupSpecialTitleReq) isPayload() {}
func (*SetFriendAddRequestReq) isPayload()  {}
func (*SetGroupAddRequestReq) isPayload()   {}
func (*GetLoginInfoReq) isPayload()         {}
func (*GetStrangerInfoReq) isPayload()      {}
func (*GetFriendListReq) isPayload()        {}
func (*GetGroupInfoReq) isPayload()         {}
func (*GetGroupListReq) isPayload()         {}
func (*GetGroupMemberInfoReq) isPayload()   {}
func (*GetGroupMemberListReq) isPayload()   {}
func (*GetGroupHonorInfoReq) isPayload()    {}
func (*GetCookiesReq) isPayload()           {}
func (*GetCsrfTokenReq) isPayload()         {}
func (*GetCredentialsReq) isPayload()       {}
func (*GetRecordReq) isPayload()            {}
func (*GetImageReq) isPayload()             {}
func (*CanSendImageReq) isPayload()         {}
func (*CanSendRecordReq) isPayload()        {}
func (*GetStatusReq) isPayload()            {}
func (*GetVersionInfoReq) isPayload()       {}
func (*SetRestartReq) isPayload()           {}
func (*CleanCacheReq) isPayload()           {}

func (*SendPrivateMsgResp) isPayload()       {}
func (*SendGroupMsgResp) isPayload()         {}
func (*SendMsgResp) isPayload()              {}
func (*DeleteMsgResp) isPayload()            {}
func (*GetMsgResp) isPayload()               {}
func (*GetForwardMsgResp) isPayload()        {}
func (*SendLikeResp) isPayload()             {}
func (*SetGroupKickResp) isPayload()         {}
func (*SetGroupBanResp) isPayload()          {}
func (*SetGroupAnonymousBanResp) isPayload() {}
func (*SetGroupWholeBanResp) isPayload()     {}
func (*SetGroupAdminResp) isPayload()        {}
func (*SetGroupAnonymousResp) isPayload()    {}
func (*SetGroupCardResp) isPayload()         {}
func (*SetGroupNameResp) isPayload()         {}
func (*SetGroupLeaveResp) isPayload()        {}
func (*SetGroupSpecialTitleResp) isPayload() {}
func (*SetFriendAddRequestResp) isPayload()  {}
func (*SetGroupAddRequestResp) isPayload()   {}
func (*GetLoginInfoResp) isPayload()         {}
func (*GetStrangerInfoResp) isPayload()      {}
func (*GetFriendListResp) isPayload()        {}
func (*GetGroupInfoResp) isPayload()         {}
func (*GetGroupListResp) isPayload()         {}
func (*GetGroupMemberInfoResp) isPayload()   {}
func (*GetGroupMemberListResp) isPayload()   {}
func (*GetGroupHonorInfoResp) isPayload()    {}
func (*GetCookiesResp) isPayload()           {}
func (*GetCsrfTokenResp) isPayload()         {}
func (*GetCredentialsResp) isPayload()       {}
func (*GetRecordResp) isPayload()            {}
func (*GetImageResp) isPayload()             {}
func (*CanSendImageResp) isPayload()         {}
func (*CanSendRecordResp) isPayload()        {}
func (*GetStatusResp) isPayload()            {}
func (*GetVersionInfoResp) isPayload()       {}
func (*SetRestartResp) isPayload()           {}
func (*CleanCacheResp) isPayload()           {}
