// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package onebot

// Sender describes the author of a message event.
type Sender struct {
	UserID   int64  `pb:"1"`
	Nickname string `pb:"2"`
	Sex      string `pb:"3"`
	Age      int32  `pb:"4"`
	Card     string `pb:"5"`
	Area     string `pb:"6"`
	Level    string `pb:"7"`
	Role     string `pb:"8"`
	Title    string `pb:"9"`
}

// Anonymous describes an anonymous group sender.
type Anonymous struct {
	ID   int64  `pb:"1"`
	Name string `pb:"2"`
	Flag string `pb:"3"`
}

// File describes an uploaded group file.
type File struct {
	ID    string `pb:"1"`
	Name  string `pb:"2"`
	Size  int64  `pb:"3"`
	Busid int64  `pb:"4"`
	URL   string `pb:"5"`
}

type PrivateMessageEvent struct {
	Time        int64             `pb:"1"`
	SelfID      int64             `pb:"2"`
	PostType    string            `pb:"3"`
	MessageType string            `pb:"4"`
	SubType     string            `pb:"5"`
	MessageID   int32             `pb:"6"`
	UserID      int64             `pb:"7"`
	Message     []*Message        `pb:"8"`
	RawMessage  string            `pb:"9"`
	Font        int32             `pb:"10"`
	Sender      *Sender           `pb:"11"`
	Extra       map[string]string `pb:"255"`
}

type GroupMessageEvent struct {
	Time        int64             `pb:"1"`
	SelfID      int64             `pb:"2"`
	PostType    string            `pb:"3"`
	MessageType string            `pb:"4"`
	SubType     string            `pb:"5"`
	MessageID   int32             `pb:"6"`
	GroupID     int64             `pb:"7"`
	UserID      int64             `pb:"8"`
	Anonymous   *Anonymous        `pb:"9"`
	Message     []*Message        `pb:"10"`
	RawMessage  string            `pb:"11"`
	Font        int32             `pb:"12"`
	Sender      *Sender           `pb:"13"`
	Extra       map[string]string `pb:"255"`
}

type GroupUploadNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	GroupID    int64  `pb:"5"`
	UserID     int64  `pb:"6"`
	File       *File  `pb:"7"`
}

type GroupAdminNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	SubType    string `pb:"5"`
	GroupID    int64  `pb:"6"`
	UserID     int64  `pb:"7"`
}

type GroupDecreaseNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	SubType    string `pb:"5"`
	GroupID    int64  `pb:"6"`
	OperatorID int64  `pb:"7"`
	UserID     int64  `pb:"8"`
}

type GroupIncreaseNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	SubType    string `pb:"5"`
	GroupID    int64  `pb:"6"`
	OperatorID int64  `pb:"7"`
	UserID     int64  `pb:"8"`
}

type GroupBanNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	SubType    string `pb:"5"`
	GroupID    int64  `pb:"6"`
	OperatorID int64  `pb:"7"`
	UserID     int64  `pb:"8"`
	Duration   int64  `pb:"9"`
}

type FriendAddNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	UserID     int64  `pb:"5"`
}

type GroupRecallNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	GroupID    int64  `pb:"5"`
	UserID     int64  `pb:"6"`
	OperatorID int64  `pb:"7"`
	MessageID  int32  `pb:"8"`
}

type FriendRecallNoticeEvent struct {
	Time       int64  `pb:"1"`
	SelfID     int64  `pb:"2"`
	PostType   string `pb:"3"`
	NoticeType string `pb:"4"`
	UserID     int64  `pb:"5"`
	MessageID  int32  `pb:"6"`
}

type FriendRequestEvent struct {
	Time        int64  `pb:"1"`
	SelfID      int64  `pb:"2"`
	PostType    string `pb:"3"`
	RequestType string `pb:"4"`
	UserID      int64  `pb:"5"`
	Comment     string `pb:"6"`
	Flag        string `pb:"7"`
}

type GroupRequestEvent struct {
	Time        int64  `pb:"1"`
	SelfID      int64  `pb:"2"`
	PostType    string `pb:"3"`
	RequestType string `pb:"4"`
	SubType     string `pb:"5"`
	GroupID     int64  `pb:"6"`
	UserID      int64  `pb:"7"`
	Comment     string `pb:"8"`
	Flag        string `pb:"9"`
}

func (*PrivateMessageEvent) isPayload()      {}
func (*GroupMessageEvent) isPayload()        {}
func (*GroupUploadNoticeEvent) isPayload()   {}
func (*GroupAdminNoticeEvent) isPayload()    {}
func (*GroupDecreaseNoticeEvent) isPayload() {}
func (*GroupIncreaseNoticeEvent) isPayload() {}
func (*GroupBanNoticeEvent) isPayload()      {}
func (*FriendAddNoticeEvent) isPayload()     {}
func (*GroupRecallNoticeEvent) isPayload()   {}
func (*FriendRecallNoticeEvent) isPayload()  {}
func (*FriendRequestEvent) isPayload()       {}
func (*GroupRequestEvent) isPayload()        {}
