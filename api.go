// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"

	"github.com/luxfi/botrpc/onebot"
)

// call issues req and narrows the response payload to R. Any other payload,
// or none, yields ErrNoResult.
func call[R onebot.Payload](ctx context.Context, b *Bot, req onebot.Payload) (R, error) {
	var zero R
	data, err := b.Do(ctx, req)
	if err != nil {
		return zero, err
	}
	resp, ok := data.(R)
	if !ok {
		return zero, ErrNoResult
	}
	return resp, nil
}

// SendPrivateText sends a plain text private message and returns its message id.
func (b *Bot) SendPrivateText(ctx context.Context, userID int64, text string) (int32, error) {
	resp, err := b.SendPrivateMsg(ctx, userID, onebot.Chain(onebot.Text(text)), false)
	if err != nil {
		return 0, err
	}
	return resp.MessageID, nil
}

// SendGroupText sends a plain text group message and returns its message id.
func (b *Bot) SendGroupText(ctx context.Context, groupID int64, text string) (int32, error) {
	resp, err := b.SendGroupMsg(ctx, groupID, onebot.Chain(onebot.Text(text)), false)
	if err != nil {
		return 0, err
	}
	return resp.MessageID, nil
}

// SendPrivateMsg sends message to a friend or stranger.
func (b *Bot) SendPrivateMsg(ctx context.Context, userID int64, message []*onebot.Message, autoEscape bool) (*onebot.SendPrivateMsgResp, error) {
	return call[*onebot.SendPrivateMsgResp](ctx, b, &onebot.SendPrivateMsgReq{UserID: userID, Message: message, AutoEscape: autoEscape})
}

func (b *Bot) SendGroupMsg(ctx context.Context, groupID int64, message []*onebot.Message, autoEscape bool) (*onebot.SendGroupMsgResp, error) {
	return call[*onebot.SendGroupMsgResp](ctx, b, &onebot.SendGroupMsgReq{GroupID: groupID, Message: message, AutoEscape: autoEscape})
}

// SendMsg sends to a user or a group depending on messageType ("private" or "group").
func (b *Bot) SendMsg(ctx context.Context, messageType string, userID int64, groupID int64, message []*onebot.Message, autoEscape bool) (*onebot.SendMsgResp, error) {
	return call[*onebot.SendMsgResp](ctx, b, &onebot.SendMsgReq{MessageType: messageType, UserID: userID, GroupID: groupID, Message: message, AutoEscape: autoEscape})
}

// DeleteMsg recalls a message sent earlier.
func (b *Bot) DeleteMsg(ctx context.Context, messageID int32) (*onebot.DeleteMsgResp, error) {
	return call[*onebot.DeleteMsgResp](ctx, b, &onebot.DeleteMsgReq{MessageID: messageID})
}

func (b *Bot) GetMsg(ctx context.Context, messageID int32) (*onebot.GetMsgResp, error) {
	return call[*onebot.GetMsgResp](ctx, b, &onebot.GetMsgReq{MessageID: messageID})
}

func (b *Bot) GetForwardMsg(ctx context.Context, id string) (*onebot.GetForwardMsgResp, error) {
	return call[*onebot.GetForwardMsgResp](ctx, b, &onebot.GetForwardMsgReq{ID: id})
}

func (b *Bot) SendLike(ctx context.Context, userID int64, times int32) (*onebot.SendLikeResp, error) {
	return call[*onebot.SendLikeResp](ctx, b, &onebot.SendLikeReq{UserID: userID, Times: times})
}

// SetGroupKick removes a member from a group.
func (b *Bot) SetGroupKick(ctx context.Context, groupID int64, userID int64, rejectAddRequest bool) (*onebot.SetGroupKickResp, error) {
	return call[*onebot.SetGroupKickResp](ctx, b, &onebot.SetGroupKickReq{GroupID: groupID, UserID: userID, RejectAddRequest: rejectAddRequest})
}

// SetGroupBan mutes a member for duration seconds; zero lifts the ban.
func (b *Bot) SetGroupBan(ctx context.Context, groupID int64, userID int64, duration int32) (*onebot.SetGroupBanResp, error) {
	return call[*onebot.SetGroupBanResp](ctx, b, &onebot.SetGroupBanReq{GroupID: groupID, UserID: userID, Duration: duration})
}

func (b *Bot) SetGroupAnonymousBan(ctx context.Context, groupID int64, flag string, duration int32) (*onebot.SetGroupAnonymousBanResp, error) {
	return call[*onebot.SetGroupAnonymousBanResp](ctx, b, &onebot.SetGroupAnonymousBanReq{GroupID: groupID, Flag: flag, Duration: duration})
}

func (b *Bot) SetGroupWholeBan(ctx context.Context, groupID int64, enable bool) (*onebot.SetGroupWholeBanResp, error) {
	return call[*onebot.SetGroupWholeBanResp](ctx, b, &onebot.SetGroupWholeBanReq{GroupID: groupID, Enable: enable})
}

func (b *Bot) SetGroupAdmin(ctx context.Context, groupID int64, userID int64, enable bool) (*onebot.SetGroupAdminResp, error) {
	return call[*onebot.SetGroupAdminResp](ctx, b, &onebot.SetGroupAdminReq{GroupID: groupID, UserID: userID, Enable: enable})
}

func (b *Bot) SetGroupAnonymous(ctx context.Context, groupID int64, enable bool) (*onebot.SetGroupAnonymousResp, error) {
	return call[*onebot.SetGroupAnonymousResp](ctx, b, &onebot.SetGroupAnonymousReq{GroupID: groupID, Enable: enable})
}

func (b *Bot) SetGroupCard(ctx context.Context, groupID int64, userID int64, card string) (*onebot.SetGroupCardResp, error) {
	return call[*onebot.SetGroupCardResp](ctx, b, &onebot.SetGroupCardReq{GroupID: groupID, UserID: userID, Card: card})
}

func (b *Bot) SetGroupName(ctx context.Context, groupID int64, groupName string) (*onebot.SetGroupNameResp, error) {
	return call[*onebot.SetGroupNameResp](ctx, b, &onebot.SetGroupNameReq{GroupID: groupID, GroupName: groupName})
}

func (b *Bot) SetGroupLeave(ctx context.Context, groupID int64, isDismiss bool) (*onebot.SetGroupLeaveResp, error) {
	return call[*onebot.SetGroupLeaveResp](ctx, b, &onebot.SetGroupLeaveReq{GroupID: groupID, IsDismiss: isDismiss})
}

func (b *Bot) SetGroupSpecialTitle(ctx context.Context, groupID int64, userID int64, specialTitle string, duration int64) (*onebot.SetGroupSpecialTitleResp, error) {
	return call[*onebot.SetGroupSpecialTitleResp](ctx, b, &onebot.SetGroupSpecialTitleReq{GroupID: groupID, UserID: userID, SpecialTitle: specialTitle, Duration: duration})
}

func (b *Bot) SetFriendAddRequest(ctx context.Context, flag string, approve bool, remark string) (*onebot.SetFriendAddRequestResp, error) {
	return call[*onebot.SetFriendAddRequestResp](ctx, b, &onebot.SetFriendAddRequestReq{Flag: flag, Approve: approve, Remark: remark})
}

func (b *Bot) SetGroupAddRequest(ctx context.Context, flag string, subType string, typ string, approve bool, reason string) (*onebot.SetGroupAddRequestResp, error) {
	return call[*onebot.SetGroupAddRequestResp](ctx, b, &onebot.SetGroupAddRequestReq{Flag: flag, SubType: subType, Type: typ, Approve: approve, Reason: reason})
}

func (b *Bot) GetLoginInfo(ctx context.Context) (*onebot.GetLoginInfoResp, error) {
	return call[*onebot.GetLoginInfoResp](ctx, b, &onebot.GetLoginInfoReq{})
}

func (b *Bot) GetStrangerInfo(ctx context.Context, userID int64, noCache bool) (*onebot.GetStrangerInfoResp, error) {
	return call[*onebot.GetStrangerInfoResp](ctx, b, &onebot.GetStrangerInfoReq{UserID: userID, NoCache: noCache})
}

func (b *Bot) GetFriendList(ctx context.Context) (*onebot.GetFriendListResp, error) {
	return call[*onebot.GetFriendListResp](ctx, b, &onebot.GetFriendListReq{})
}

func (b *Bot) GetGroupInfo(ctx context.Context, groupID int64, noCache bool) (*onebot.GetGroupInfoResp, error) {
	return call[*onebot.GetGroupInfoResp](ctx, b, &onebot.GetGroupInfoReq{GroupID: groupID, NoCache: noCache})
}

func (b *Bot) GetGroupList(ctx context.Context) (*onebot.GetGroupListResp, error) {
	return call[*onebot.GetGroupListResp](ctx, b, &onebot.GetGroupListReq{})
}

// GetGroupMemberInfo fetches one member of a group.
func (b *Bot) GetGroupMemberInfo(ctx context.Context, groupID int64, userID int64, noCache bool) (*onebot.GetGroupMemberInfoResp, error) {
	return call[*onebot.GetGroupMemberInfoResp](ctx, b, &onebot.GetGroupMemberInfoReq{GroupID: groupID, UserID: userID, NoCache: noCache})
}

// GetGroupMemberList fetches every member of a group.
func (b *Bot) GetGroupMemberList(ctx context.Context, groupID int64) (*onebot.GetGroupMemberListResp, error) {
	return call[*onebot.GetGroupMemberListResp](ctx, b, &onebot.GetGroupMemberListReq{GroupID: groupID})
}

// GetGroupHonorInfo fetches honor lists; typ is one of talkative, performer,
// legend, strong_newbie, emotion or all.
func (b *Bot) GetGroupHonorInfo(ctx context.Context, groupID int64, typ string) (*onebot.GetGroupHonorInfoResp, error) {
	return call[*onebot.GetGroupHonorInfoResp](ctx, b, &onebot.GetGroupHonorInfoReq{GroupID: groupID, Type: typ})
}

func (b *Bot) GetCookies(ctx context.Context, domain string) (*onebot.GetCookiesResp, error) {
	return call[*onebot.GetCookiesResp](ctx, b, &onebot.GetCookiesReq{Domain: domain})
}

func (b *Bot) GetCsrfToken(ctx context.Context) (*onebot.GetCsrfTokenResp, error) {
	return call[*onebot.GetCsrfTokenResp](ctx, b, &onebot.GetCsrfTokenReq{})
}

func (b *Bot) GetCredentials(ctx context.Context, domain string) (*onebot.GetCredentialsResp, error) {
	return call[*onebot.GetCredentialsResp](ctx, b, &onebot.GetCredentialsReq{Domain: domain})
}

func (b *Bot) GetRecord(ctx context.Context, file string, outFormat string) (*onebot.GetRecordResp, error) {
	return call[*onebot.GetRecordResp](ctx, b, &onebot.GetRecordReq{File: file, OutFormat: outFormat})
}

func (b *Bot) GetImage(ctx context.Context, file string) (*onebot.GetImageResp, error) {
	return call[*onebot.GetImageResp](ctx, b, &onebot.GetImageReq{File: file})
}

func (b *Bot) CanSendImage(ctx context.Context) (*onebot.CanSendImageResp, error) {
	return call[*onebot.CanSendImageResp](ctx, b, &onebot.CanSendImageReq{})
}

func (b *Bot) CanSendRecord(ctx context.Context) (*onebot.CanSendRecordResp, error) {
	return call[*onebot.CanSendRecordResp](ctx, b, &onebot.CanSendRecordReq{})
}

func (b *Bot) GetStatus(ctx context.Context) (*onebot.GetStatusResp, error) {
	return call[*onebot.GetStatusResp](ctx, b, &onebot.GetStatusReq{})
}

func (b *Bot) GetVersionInfo(ctx context.Context) (*onebot.GetVersionInfoResp, error) {
	return call[*onebot.GetVersionInfoResp](ctx, b, &onebot.GetVersionInfoReq{})
}

// SetRestart restarts the bot implementation after delay milliseconds.
func (b *Bot) SetRestart(ctx context.Context, delay int32) (*onebot.SetRestartResp, error) {
	return call[*onebot.SetRestartResp](ctx, b, &onebot.SetRestartReq{Delay: delay})
}

func (b *Bot) CleanCache(ctx context.Context) (*onebot.CleanCacheResp, error) {
	return call[*onebot.CleanCacheResp](ctx, b, &onebot.CleanCacheReq{})
}
