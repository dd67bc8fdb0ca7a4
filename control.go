// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"fmt"
	"net/http"

	"github.com/luxfi/botrpc/onebot"
)

// ControlService is the JSON-RPC 2.0 control plane served on /rpc under the
// service name "Bot". Every method but List addresses one connected bot.
type ControlService struct {
	registry *Registry
}

// BotArgs addresses a connected bot
type BotArgs struct {
	BotID int64 `json:"bot_id"`
}

type ListArgs struct{}

type ListReply struct {
	Bots []int64 `json:"bots"`
}

type SendPrivateMsgArgs struct {
	BotID      int64  `json:"bot_id"`
	UserID     int64  `json:"user_id"`
	Text       string `json:"text"`
	AutoEscape bool   `json:"auto_escape"`
}

type SendGroupMsgArgs struct {
	BotID      int64  `json:"bot_id"`
	GroupID    int64  `json:"group_id"`
	Text       string `json:"text"`
	AutoEscape bool   `json:"auto_escape"`
}

type MessageReply struct {
	MessageID int32 `json:"message_id"`
}

type DeleteMsgArgs struct {
	BotID     int64 `json:"bot_id"`
	MessageID int32 `json:"message_id"`
}

type GroupMemberArgs struct {
	BotID   int64 `json:"bot_id"`
	GroupID int64 `json:"group_id"`
	UserID  int64 `json:"user_id"`
	NoCache bool  `json:"no_cache"`
}

type SetGroupKickArgs struct {
	BotID            int64 `json:"bot_id"`
	GroupID          int64 `json:"group_id"`
	UserID           int64 `json:"user_id"`
	RejectAddRequest bool  `json:"reject_add_request"`
}

// EmptyReply is returned by methods without a result
type EmptyReply struct{}

type LoginInfoReply struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
}

type GroupListReply struct {
	Groups []*onebot.Group `json:"groups"`
}

type GroupMemberReply struct {
	Member *onebot.GroupMember `json:"member"`
}

func (s *ControlService) bot(id int64) (*Bot, error) {
	b, ok := s.registry.Bot(id)
	if !ok {
		return nil, fmt.Errorf("bot %d is not connected", id)
	}
	return b, nil
}

// List returns the ids of connected bots
func (s *ControlService) List(_ *http.Request, _ *ListArgs, reply *ListReply) error {
	reply.Bots = s.registry.IDs()
	return nil
}

func (s *ControlService) SendPrivateMsg(r *http.Request, args *SendPrivateMsgArgs, reply *MessageReply) error {
	b, err := s.bot(args.BotID)
	if err != nil {
		return err
	}
	resp, err := b.SendPrivateMsg(r.Context(), args.UserID, onebot.Chain(onebot.Text(args.Text)), args.AutoEscape)
	if err != nil {
		return err
	}
	reply.MessageID = resp.MessageID
	return nil
}

func (s *ControlService) SendGroupMsg(r *http.Request, args *SendGroupMsgArgs, reply *MessageReply) error {
	b, err := s.bot(args.BotID)
	if err != nil {
		return err
	}
	resp, err := b.SendGroupMsg(r.Context(), args.GroupID, onebot.Chain(onebot.Text(args.Text)), args.AutoEscape)
	if err != nil {
		return err
	}
	reply.MessageID = resp.MessageID
	return nil
}

func (s *ControlService) DeleteMsg(r *http.Request, args *DeleteMsgArgs, _ *EmptyReply) error {
	b, err := s.bot(args.BotID)
	if err != nil {
		return err
	}
	_, err = b.DeleteMsg(r.Context(), args.MessageID)
	return err
}

func (s *ControlService) GetLoginInfo(r *http.Request, args *BotArgs, reply *LoginInfoReply) error {
	b, err := s.bot(args.BotID)
	if err != nil {
		return err
	}
	resp, err := b.GetLoginInfo(r.Context())
	if err != nil {
		return err
	}
	reply.UserID = resp.UserID
	reply.Nickname = resp.Nickname
	return nil
}

func (s *ControlService) GetGroupList(r *http.Request, args *BotArgs, reply *GroupListReply) error {
	b, err := s.bot(args.BotID)
	if err != nil {
		return err
	}
	resp, err := b.GetGroupList(r.Context())
	if err != nil {
		return err
	}
	reply.Groups = resp.Group
	return nil
}

func (s *ControlService) GetGroupMemberInfo(r *http.Request, args *GroupMemberArgs, reply *GroupMemberReply) error {
	b, err := s.bot(args.BotID)
	if err != nil {
		return err
	}
	resp, err := b.GetGroupMemberInfo(r.Context(), args.GroupID, args.UserID, args.NoCache)
	if err != nil {
		return err
	}
	reply.Member = resp.Member
	return nil
}

func (s *ControlService) SetGroupKick(r *http.Request, args *SetGroupKickArgs, _ *EmptyReply) error {
	b, err := s.bot(args.BotID)
	if err != nil {
		return err
	}
	_, err = b.SetGroupKick(r.Context(), args.GroupID, args.UserID, args.RejectAddRequest)
	return err
}
