package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = validationError("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = validationError("card deck ID cannot be empty")

	// ErrCardFrontEmpty is returned when the front text is blank.
	ErrCardFrontEmpty = validationError("card front cannot be empty")

	// ErrCardBackEmpty is returned when the back text is blank.
	ErrCardBackEmpty = validationError("card back cannot be empty")

	// ErrCardTextTooLong is returned when either side exceeds MaxCardTextLength.
	ErrCardTextTooLong = validationError("card text is too long")

	// ErrCardScheduleInvalid is returned when scheduling fields break their bounds.
	ErrCardScheduleInvalid = validationError("card scheduling state is invalid")
)

const (
	// InitialEaseFactor is the ease factor every new card starts with.
	InitialEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor never drops below.
	MinEaseFactor = 1.3

	// MaxCardTextLength bounds the front and back text.
	MaxCardTextLength = 10000

	// DateLayout is the wire and storage format of scheduling dates.
	DateLayout = "2006-01-02"
)

// Card is a single flashcard together with its spaced-repetition state.
//
// NextReviewAt has day granularity: it always holds midnight UTC of the
// calendar date on which the card becomes due. That date is taken in the
// scheduler's location, while LastReviewedAt is an instant stored in UTC;
// compare the two by converting LastReviewedAt to the scheduler's location
// first. West of UTC a failed review can carry a NextReviewAt one day before
// the UTC date of LastReviewedAt. Version is bumped by the store on every
// schedule write and guards against lost updates.
type Card struct {
	ID             uuid.UUID  `json:"id"`
	DeckID         uuid.UUID  `json:"deck_id"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	EaseFactor     float64    `json:"ease_factor"`
	Interval       int        `json:"interval"`
	ReviewCount    int        `json:"review_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   time.Time  `json:"next_review_at"`
	Version        int        `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCard creates a new, never-reviewed card in the given deck. The card is
// due on the calendar date of now.
func NewCard(deckID uuid.UUID, front, back string, now time.Time) (*Card, error) {
	card := &Card{
		ID:           uuid.New(),
		DeckID:       deckID,
		Front:        strings.TrimSpace(front),
		Back:         strings.TrimSpace(back),
		EaseFactor:   InitialEaseFactor,
		Interval:     0,
		ReviewCount:  0,
		NextReviewAt: Date(now),
		Version:      1,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}
	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}
	if strings.TrimSpace(c.Front) == "" {
		return ErrCardFrontEmpty
	}
	if strings.TrimSpace(c.Back) == "" {
		return ErrCardBackEmpty
	}
	if len(c.Front) > MaxCardTextLength || len(c.Back) > MaxCardTextLength {
		return ErrCardTextTooLong
	}
	if c.EaseFactor < MinEaseFactor || c.Interval < 0 || c.ReviewCount < 0 {
		return ErrCardScheduleInvalid
	}
	return nil
}

// UpdateText replaces the front and back text, leaving the schedule untouched.
// The card is left unchanged when the new text is invalid.
func (c *Card) UpdateText(front, back string, now time.Time) error {
	origFront, origBack := c.Front, c.Back
	c.Front = strings.TrimSpace(front)
	c.Back = strings.TrimSpace(back)

	if err := c.Validate(); err != nil {
		c.Front, c.Back = origFront, origBack
		return err
	}

	c.UpdatedAt = now.UTC()
	return nil
}

// IsNew reports whether the card has never been reviewed.
func (c *Card) IsNew() bool {
	return c.ReviewCount == 0
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	cp := *c
	if c.LastReviewedAt != nil {
		t := *c.LastReviewedAt
		cp.LastReviewedAt = &t
	}
	return &cp
}

// Date truncates t to its calendar date, expressed as midnight UTC.
// The date is taken from t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
