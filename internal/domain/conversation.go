package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation validation errors
var (
	ErrConversationUserIDEmpty = validationError("conversation user ID cannot be empty")
	ErrMessageContentEmpty     = validationError("message content cannot be empty")
	ErrMessageRoleInvalid      = validationError("message role must be user or assistant")
	ErrMessageTooLong          = validationError("message content is too long")
)

// MaxMessageLength bounds a single message.
const MaxMessageLength = 8000

// Conversation is a tutoring chat, optionally focused on one deck.
type Conversation struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	DeckID    *uuid.UUID `json:"deck_id,omitempty"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewConversation starts a conversation. A blank title defaults to "New conversation".
func NewConversation(userID uuid.UUID, deckID *uuid.UUID, title string, now time.Time) (*Conversation, error) {
	if userID == uuid.Nil {
		return nil, ErrConversationUserIDEmpty
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "New conversation"
	}
	return &Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		DeckID:    deckID,
		Title:     title,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// Message is one turn of a conversation.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMessage creates a message in conversationID.
func NewMessage(conversationID uuid.UUID, role Role, content string, now time.Time) (*Message, error) {
	msg := &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        strings.TrimSpace(content),
		CreatedAt:      now.UTC(),
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return ErrMessageRoleInvalid
	}
	if m.Content == "" {
		return ErrMessageContentEmpty
	}
	if len(m.Content) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}
