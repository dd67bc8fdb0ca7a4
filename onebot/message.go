// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package onebot

import (
	"strconv"
	"strings"
)

// Message is one segment of a message chain, e.g. {Type: "text", Data: {"text": "hi"}}.
type Message struct {
	Type string            `pb:"1"`
	Data map[string]string `pb:"2"`
}

// Text builds a plain text segment.
func Text(text string) *Message {
	return &Message{Type: "text", Data: map[string]string{"text": text}}
}

// At builds a mention of qq.
func At(qq int64) *Message {
	return &Message{Type: "at", Data: map[string]string{"qq": strconv.FormatInt(qq, 10)}}
}

// Face builds a built-in emoticon segment.
func Face(id int32) *Message {
	return &Message{Type: "face", Data: map[string]string{"id": strconv.FormatInt(int64(id), 10)}}
}

// Image builds an image segment from a file name, path or URL.
func Image(file string) *Message {
	return &Message{Type: "image", Data: map[string]string{"file": file}}
}

// Reply builds a quote of messageID.
func Reply(messageID int32) *Message {
	return &Message{Type: "reply", Data: map[string]string{"id": strconv.FormatInt(int64(messageID), 10)}}
}

// Chain concatenates segments and chains into a single chain. Nil segments are skipped.
func Chain(parts ...any) []*Message {
	var out []*Message
	for _, p := range parts {
		switch v := p.(type) {
		case *Message:
			if v != nil {
				out = append(out, v)
			}
		case []*Message:
			for _, m := range v {
				if m != nil {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

// PlainText joins the text segments of a chain.
func PlainText(chain []*Message) string {
	var sb strings.Builder
	for _, m := range chain {
		if m != nil && m.Type == "text" {
			sb.WriteString(m.Data["text"])
		}
	}
	return sb.String()
}
