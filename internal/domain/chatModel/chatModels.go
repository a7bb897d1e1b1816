package chatModel

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type ConversationTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

type WindowState string

const (
	WindowOpen   WindowState = "OPEN"
	WindowClosed WindowState = "CLOSED"
)

type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type MessageKind string

const (
	MessageUser   MessageKind = "user"
	MessageModel  MessageKind = "model"
	MessageNotice MessageKind = "notice"
)

// Message is one rendered entry of a chat window. Notices never reach the session.
type Message struct {
	Kind      MessageKind `json:"kind"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

type SessionStore interface {
	Get(id string) []ConversationTurn
	Save(id string, history []ConversationTurn)
	Clear(id string)
}

// PrefStore is a flat string key/value preference backend.
type PrefStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
