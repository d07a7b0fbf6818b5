package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Deck validation errors
var (
	ErrDeckIDEmpty     = validationError("deck ID cannot be empty")
	ErrDeckUserIDEmpty = validationError("deck user ID cannot be empty")
	ErrDeckNameEmpty   = validationError("deck name cannot be empty")
	ErrDeckNameTooLong = validationError("deck name must be at most 200 characters")
)

// MaxDeckNameLength bounds deck names, in characters.
const MaxDeckNameLength = 200

// Deck is a named collection of cards owned by a user.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDeck creates a deck owned by userID.
func NewDeck(userID uuid.UUID, name string, now time.Time) (*Deck, error) {
	deck := &Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}
	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}
	if utf8.RuneCountInString(d.Name) > MaxDeckNameLength {
		return ErrDeckNameTooLong
	}
	return nil
}

// Rename changes the deck name, leaving the deck unchanged on error.
func (d *Deck) Rename(name string, now time.Time) error {
	orig := d.Name
	d.Name = strings.TrimSpace(name)
	if err := d.Validate(); err != nil {
		d.Name = orig
		return err
	}
	d.UpdatedAt = now.UTC()
	return nil
}

// OwnedBy reports whether userID owns the deck.
func (d *Deck) OwnedBy(userID uuid.UUID) bool {
	return d.UserID == userID
}
