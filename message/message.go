package message

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Role represents the role of the message sender
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message represents a single message exchanged with an LLM provider
type Message struct {
	ID        string         `json:"id"`
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

var counter atomic.Int64

// NewMessage creates a new message with the given role and content
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        fmt.Sprintf("msg_%d", counter.Add(1)),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Text returns the textual content of the message.
func (m *Message) Text() string {
	if m == nil {
		return ""
	}
	return m.Content
}

// Clone creates a copy of the message.
func Clone(msg *Message) *Message {
	if msg == nil {
		return nil
	}
	cloned := *msg
	if msg.Metadata != nil {
		cloned.Metadata = make(map[string]any, len(msg.Metadata))
		for k, v := range msg.Metadata {
			cloned.Metadata[k] = v
		}
	}
	return &cloned
}
