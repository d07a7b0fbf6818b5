package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
)

// CardStore defines the interface for card data persistence.
//
// Scheduling fields are written only through UpdateSchedule, which is
// conditional on the version the caller read. Text edits go through
// UpdateText and never touch the schedule.
type CardStore interface {
	// Create inserts a validated card.
	// Returns ErrDeckNotFound when the deck does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID returns ErrCardNotFound when the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetForUpdate reads a card for a read-modify-write of its schedule.
	// Implementations that support row locks take one for the lifetime of
	// the enclosing transaction; call it through WithTx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDeck returns a deck's cards ordered by creation time, oldest
	// first. It returns an empty slice, never nil.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// ListByUser returns the cards of every deck the user owns.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// UpdateText persists Front, Back and UpdatedAt.
	// Returns ErrCardNotFound when the card does not exist.
	UpdateText(ctx context.Context, card *domain.Card) error

	// UpdateSchedule writes all scheduling fields of card in one statement
	// provided the stored version still equals expectedVersion, and sets
	// card.Version to the new version.
	// Returns ErrConcurrentUpdate when the version moved on and
	// ErrCardNotFound when the card no longer exists.
	UpdateSchedule(ctx context.Context, card *domain.Card, expectedVersion int) error

	// Delete removes a card.
	// Returns ErrCardNotFound when the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a CardStore bound to tx.
	WithTx(tx *sql.Tx) CardStore
}
