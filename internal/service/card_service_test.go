package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/mocks"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardFixture struct {
	svc   service.CardService
	cards *mocks.MockCardStore
	owner uuid.UUID
	deck  *domain.Deck
	card  *domain.Card
}

func newCardFixture(t *testing.T) *cardFixture {
	t.Helper()
	owner := uuid.New()
	deck, err := domain.NewDeck(owner, "Music theory", now)
	require.NoError(t, err)
	card, err := domain.NewCard(deck.ID, "Interval C to G?", "Perfect fifth", now)
	require.NoError(t, err)

	decks := mocks.NewMockDeckStore(deck)
	cards := mocks.NewMockCardStore(card)
	cards.Decks = decks

	deckSvc := newDeckService(t, decks)
	svc, err := service.NewCardService(cards, deckSvc, srs.FixedClock(now.Add(time.Hour)), nil)
	require.NoError(t, err)
	return &cardFixture{svc: svc, cards: cards, owner: owner, deck: deck, card: card}
}

func TestCardService_CreateCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newCardFixture(t)

	card, err := f.svc.CreateCard(ctx, f.owner, f.deck.ID, "Interval C to E?", "Major third")
	require.NoError(t, err)
	assert.Equal(t, domain.InitialEaseFactor, card.EaseFactor)
	assert.Zero(t, card.Interval)
	assert.Zero(t, card.ReviewCount)
	assert.Equal(t, domain.Date(now), card.NextReviewAt)

	_, err = f.svc.CreateCard(ctx, f.owner, f.deck.ID, "", "Major third")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.CreateCard(ctx, uuid.New(), f.deck.ID, "q", "a")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestCardService_GetCardHidesForeignCards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newCardFixture(t)

	got, err := f.svc.GetCard(ctx, f.owner, f.card.ID)
	require.NoError(t, err)
	assert.Equal(t, f.card.Front, got.Front)

	_, err = f.svc.GetCard(ctx, uuid.New(), f.card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	_, err = f.svc.GetCard(ctx, f.owner, uuid.New())
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestCardService_UpdateCardKeepsSchedule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newCardFixture(t)

	stored := f.cards.Cards[f.card.ID]
	stored.EaseFactor, stored.Interval, stored.ReviewCount = 2.2, 6, 2

	updated, err := f.svc.UpdateCard(ctx, f.owner, f.card.ID, "Interval C to G", "P5")
	require.NoError(t, err)
	assert.Equal(t, "P5", updated.Back)

	stored = f.cards.Cards[f.card.ID]
	assert.Equal(t, "P5", stored.Back)
	assert.Equal(t, 2.2, stored.EaseFactor)
	assert.Equal(t, 6, stored.Interval)
	assert.Equal(t, 2, stored.ReviewCount)

	_, err = f.svc.UpdateCard(ctx, f.owner, f.card.ID, "  ", "P5")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Interval C to G", f.cards.Cards[f.card.ID].Front)
}

func TestCardService_ListAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newCardFixture(t)

	cards, err := f.svc.ListCards(ctx, f.owner, f.deck.ID)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	_, err = f.svc.ListCards(ctx, uuid.New(), f.deck.ID)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	assert.ErrorIs(t, f.svc.DeleteCard(ctx, uuid.New(), f.card.ID), store.ErrCardNotFound)
	require.NoError(t, f.svc.DeleteCard(ctx, f.owner, f.card.ID))
	assert.NotContains(t, f.cards.Cards, f.card.ID)
}
