package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a user whose HashedPassword is already set.
	// Returns ErrEmailExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound when no user has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail looks up a user by lower-cased email.
	// Returns ErrUserNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
