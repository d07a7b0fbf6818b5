package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// CardService manages the content of cards. Scheduling fields are only ever
// changed by a review.
type CardService interface {
	CreateCard(ctx context.Context, userID, deckID uuid.UUID, front, back string) (*domain.Card, error)
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)
	ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, front, back string) (*domain.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type cardServiceImpl struct {
	cards  store.CardStore
	decks  DeckService
	clock  srs.Clock
	logger *slog.Logger
}

var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a CardService. Ownership checks go through decks.
func NewCardService(cards store.CardStore, decks DeckService, clock srs.Clock, logger *slog.Logger) (CardService, error) {
	if cards == nil || decks == nil {
		return nil, wrap("card", "init", ErrInvalidInput)
	}
	if clock == nil {
		clock = srs.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cardServiceImpl{
		cards:  cards,
		decks:  decks,
		clock:  clock,
		logger: logger.With(slog.String("component", "card_service")),
	}, nil
}

// CreateCard implements CardService.
func (s *cardServiceImpl) CreateCard(ctx context.Context, userID, deckID uuid.UUID, front, back string) (*domain.Card, error) {
	if _, err := s.decks.GetDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}
	card, err := domain.NewCard(deckID, front, back, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.cards.Create(ctx, card); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, wrap("card", "create", err)
	}
	return card, nil
}

// GetCard implements CardService. A card in another user's deck is
// reported as store.ErrCardNotFound.
func (s *cardServiceImpl) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.decks.GetDeck(ctx, userID, card.DeckID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// ListCards implements CardService.
func (s *cardServiceImpl) ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
	if _, err := s.decks.GetDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, wrap("card", "list", err)
	}
	return cards, nil
}

// UpdateCard implements CardService.
func (s *cardServiceImpl) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, front, back string) (*domain.Card, error) {
	card, err := s.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if err := card.UpdateText(front, back, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.cards.UpdateText(ctx, card); err != nil {
		return nil, wrap("card", "update", err)
	}
	return card, nil
}

// DeleteCard implements CardService.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if _, err := s.GetCard(ctx, userID, cardID); err != nil {
		return err
	}
	if err := s.cards.Delete(ctx, cardID); err != nil {
		return wrap("card", "delete", err)
	}
	return nil
}
