package model

import (
	"encoding/json"
	"time"
)

// Conversation is an opaque persisted chat thread. The core never reads
// business meaning out of Messages; it is stored and returned as-is.
type Conversation struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Title     string          `json:"title" db:"title"`
	Messages  json.RawMessage `json:"messages" db:"messages"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// ConversationUpsertRequest creates or updates a conversation
type ConversationUpsertRequest struct {
	Title    string          `json:"title"`
	Messages json.RawMessage `json:"messages"`
}

// Setting is a per-user key/value pair with no semantics of its own
type Setting struct {
	UserID    string    `json:"-" db:"user_id"`
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
