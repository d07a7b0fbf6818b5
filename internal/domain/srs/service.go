package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// ErrNilCard is returned when ApplyReview is handed a nil card.
var ErrNilCard = errors.New("card cannot be nil")

// Service defines the interface for scheduling operations.
type Service interface {
	// ApplyReview computes the card state after a review of the given
	// quality at time now. The input card is never modified; on error no
	// new state is produced. ErrInvalidQuality is the only validation
	// failure for a non-nil card.
	ApplyReview(card *domain.Card, quality Quality, now time.Time) (*domain.Card, error)

	// Today returns the scheduling date of now: the calendar day in the
	// service's location, as midnight UTC.
	Today(now time.Time) time.Time

	// Params returns the parameters the service was built with.
	Params() *Params
}

type defaultService struct {
	params   *Params
	location *time.Location
}

var _ Service = (*defaultService)(nil)

// NewDefaultService creates a scheduler with default parameters that
// computes dates in UTC.
func NewDefaultService() Service {
	return NewService(NewDefaultParams(), time.UTC)
}

// NewService creates a scheduler with the given parameters and timezone.
// A nil params or location falls back to the defaults.
func NewService(params *Params, location *time.Location) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	if location == nil {
		location = time.UTC
	}
	return &defaultService{params: params, location: location}
}

func (s *defaultService) ApplyReview(card *domain.Card, quality Quality, now time.Time) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}
	if !quality.Valid() {
		return nil, ErrInvalidQuality
	}

	return calculateNextCard(card, quality, now, s.Today(now), s.params), nil
}

func (s *defaultService) Today(now time.Time) time.Time {
	return domain.Date(now.In(s.location))
}

func (s *defaultService) Params() *Params {
	return s.params
}
