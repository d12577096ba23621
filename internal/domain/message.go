package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageAuthor identifies who wrote a conversation message.
type MessageAuthor string

const (
	AuthorAgent MessageAuthor = "agent"
	AuthorBot   MessageAuthor = "bot"
)

// Message is one entry in a session's append-only conversation log.
// Ordering for context reconstruction is by CreatedAt ascending.
type Message struct {
	ID        uuid.UUID     `json:"id"`
	SessionID uuid.UUID     `json:"session_id"`
	Author    MessageAuthor `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// ListBySession returns up to limit of the most recent messages for a
	// session, oldest first.
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]Message, error)
}
