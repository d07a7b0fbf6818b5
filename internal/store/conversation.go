package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
)

// ConversationStore defines the interface for tutor conversation persistence.
type ConversationStore interface {
	Create(ctx context.Context, conv *domain.Conversation) error

	// GetByID returns ErrConversationNotFound when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	// ListByUser returns conversations, most recently updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)

	// Delete removes a conversation and its messages.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMessage appends a message and bumps the conversation's UpdatedAt.
	// Returns ErrConversationNotFound when the conversation does not exist.
	AddMessage(ctx context.Context, msg *domain.Message) error

	// ListMessages returns up to limit of the most recent messages in
	// chronological order. A limit of zero or less returns all messages.
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)

	// WithTx returns a ConversationStore bound to tx.
	WithTx(tx *sql.Tx) ConversationStore
}
