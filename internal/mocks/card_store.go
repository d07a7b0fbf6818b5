package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockCardStore implements store.CardStore for testing. The default
// implementation keeps cards in a map and applies the same version check as
// the real stores.
type MockCardStore struct {
	CreateFn         func(ctx context.Context, card *domain.Card) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	GetForUpdateFn   func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	ListByDeckFn     func(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)
	ListByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)
	UpdateTextFn     func(ctx context.Context, card *domain.Card) error
	UpdateScheduleFn func(ctx context.Context, card *domain.Card, expectedVersion int) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error

	Cards map[uuid.UUID]*domain.Card
	Order []uuid.UUID
	// Decks resolves card ownership for ListByUser.
	Decks *MockDeckStore

	UpdateScheduleCalls int
}

var _ store.CardStore = (*MockCardStore)(nil)

// NewMockCardStore creates a mock holding cards.
func NewMockCardStore(cards ...*domain.Card) *MockCardStore {
	m := &MockCardStore{Cards: make(map[uuid.UUID]*domain.Card)}
	for _, c := range cards {
		m.Cards[c.ID] = c
		m.Order = append(m.Order, c.ID)
	}
	return m
}

// Create implements store.CardStore.
func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	m.Cards[card.ID] = card
	m.Order = append(m.Order, card.ID)
	return nil
}

// GetByID implements store.CardStore. It returns a copy, as a database would.
func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if c, ok := m.Cards[id]; ok {
		return c.Clone(), nil
	}
	return nil, store.ErrCardNotFound
}

// GetForUpdate implements store.CardStore.
func (m *MockCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// ListByDeck implements store.CardStore.
func (m *MockCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	if m.ListByDeckFn != nil {
		return m.ListByDeckFn(ctx, deckID)
	}
	return m.filter(func(c *domain.Card) bool { return c.DeckID == deckID }), nil
}

// ListByUser implements store.CardStore.
func (m *MockCardStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return m.filter(func(c *domain.Card) bool {
		if m.Decks == nil {
			return false
		}
		d, ok := m.Decks.Decks[c.DeckID]
		return ok && d.UserID == userID
	}), nil
}

func (m *MockCardStore) filter(keep func(*domain.Card) bool) []*domain.Card {
	cards := []*domain.Card{}
	for _, id := range m.Order {
		if c, ok := m.Cards[id]; ok && keep(c) {
			cards = append(cards, c.Clone())
		}
	}
	return cards
}

// UpdateText implements store.CardStore.
func (m *MockCardStore) UpdateText(ctx context.Context, card *domain.Card) error {
	if m.UpdateTextFn != nil {
		return m.UpdateTextFn(ctx, card)
	}
	stored, ok := m.Cards[card.ID]
	if !ok {
		return store.ErrCardNotFound
	}
	stored.Front, stored.Back, stored.UpdatedAt = card.Front, card.Back, card.UpdatedAt
	return nil
}

// UpdateSchedule implements store.CardStore.
func (m *MockCardStore) UpdateSchedule(ctx context.Context, card *domain.Card, expectedVersion int) error {
	m.UpdateScheduleCalls++
	if m.UpdateScheduleFn != nil {
		return m.UpdateScheduleFn(ctx, card, expectedVersion)
	}
	stored, ok := m.Cards[card.ID]
	if !ok {
		return store.ErrCardNotFound
	}
	if stored.Version != expectedVersion {
		return store.ErrConcurrentUpdate
	}
	card.Version = expectedVersion + 1
	m.Cards[card.ID] = card.Clone()
	return nil
}

// Delete implements store.CardStore.
func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(m.Cards, id)
	return nil
}

// WithTx implements store.CardStore. The mock ignores transactions.
func (m *MockCardStore) WithTx(*sql.Tx) store.CardStore { return m }
