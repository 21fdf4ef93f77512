// internal/models/conversation.go
package models

import (
	"time"
)

// MessageRole tells which side of the chat wrote a message.
type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleAI   MessageRole = "ai"
)

// Message is one chat turn.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

// ChatContext is a snapshot of the file the conversation was opened
// over. It records name and type at creation time; later edits or
// renames of the file do not rewrite old conversations.
type ChatContext struct {
	FileID string   `json:"fileId,omitempty"`
	Name   string   `json:"name"`
	Type   FileType `json:"type"`
}

// Conversation is one chat thread with the consultant.
type Conversation struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Context   *ChatContext `json:"context,omitempty"`
	Messages  []Message    `json:"messages"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"last_updated"`
}

// Clone returns a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Messages = append([]Message(nil), c.Messages...)
	if c.Context != nil {
		ctx := *c.Context
		clone.Context = &ctx
	}
	return &clone
}
