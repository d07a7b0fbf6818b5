package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
)

// DeckStore defines the interface for deck data persistence. It performs no
// ownership checks; services compare Deck.UserID with the caller.
type DeckStore interface {
	// Create inserts a validated deck.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID returns ErrDeckNotFound when the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser returns the user's decks ordered by creation time, newest
	// first. It returns an empty slice, never nil.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// Update persists the deck name.
	// Returns ErrDeckNotFound when the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes the deck. Its cards are removed with it by the
	// ON DELETE CASCADE constraint on cards.deck_id.
	// Returns ErrDeckNotFound when the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DeckStore bound to tx.
	WithTx(tx *sql.Tx) DeckStore
}
