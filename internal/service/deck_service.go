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

// DeckService manages a user's decks. Every method scopes access to the
// owner; a deck owned by someone else is reported as store.ErrDeckNotFound.
type DeckService interface {
	CreateDeck(ctx context.Context, userID uuid.UUID, name string) (*domain.Deck, error)
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)
	RenameDeck(ctx context.Context, userID, deckID uuid.UUID, name string) (*domain.Deck, error)
	// DeleteDeck removes the deck and, by cascade, its cards.
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error
}

type deckServiceImpl struct {
	decks  store.DeckStore
	clock  srs.Clock
	logger *slog.Logger
}

var _ DeckService = (*deckServiceImpl)(nil)

// NewDeckService creates a DeckService.
func NewDeckService(decks store.DeckStore, clock srs.Clock, logger *slog.Logger) (DeckService, error) {
	if decks == nil {
		return nil, wrap("deck", "init", ErrInvalidInput)
	}
	if clock == nil {
		clock = srs.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &deckServiceImpl{
		decks:  decks,
		clock:  clock,
		logger: logger.With(slog.String("component", "deck_service")),
	}, nil
}

// CreateDeck implements DeckService.
func (s *deckServiceImpl) CreateDeck(ctx context.Context, userID uuid.UUID, name string) (*domain.Deck, error) {
	deck, err := domain.NewDeck(userID, name, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.decks.Create(ctx, deck); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, wrap("deck", "create", err)
	}
	return deck, nil
}

// GetDeck implements DeckService.
func (s *deckServiceImpl) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if !deck.OwnedBy(userID) {
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

// RenameDeck implements DeckService.
func (s *deckServiceImpl) RenameDeck(ctx context.Context, userID, deckID uuid.UUID, name string) (*domain.Deck, error) {
	deck, err := s.GetDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	if err := deck.Rename(name, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.decks.Update(ctx, deck); err != nil {
		return nil, wrap("deck", "rename", err)
	}
	return deck, nil
}

// DeleteDeck implements DeckService.
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	if _, err := s.GetDeck(ctx, userID, deckID); err != nil {
		return err
	}
	if err := s.decks.Delete(ctx, deckID); err != nil {
		return wrap("deck", "delete", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("deleted deck",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()))
	return nil
}
