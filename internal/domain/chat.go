package domain

import "time"

// ChatRole distinguishes who authored a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the assistant conversation, persisted per user.
type ChatMessage struct {
	ID        string
	UserID    string
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}
