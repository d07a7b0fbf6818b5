package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockDeckStore implements store.DeckStore for testing.
type MockDeckStore struct {
	CreateFn     func(ctx context.Context, deck *domain.Deck) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)
	UpdateFn     func(ctx context.Context, deck *domain.Deck) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	Decks map[uuid.UUID]*domain.Deck
	// Order records insertion order for ListByUser.
	Order []uuid.UUID
}

var _ store.DeckStore = (*MockDeckStore)(nil)

// NewMockDeckStore creates a mock with an empty deck map.
func NewMockDeckStore(decks ...*domain.Deck) *MockDeckStore {
	m := &MockDeckStore{Decks: make(map[uuid.UUID]*domain.Deck)}
	for _, d := range decks {
		m.Decks[d.ID] = d
		m.Order = append(m.Order, d.ID)
	}
	return m
}

// Create implements store.DeckStore.
func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, deck)
	}
	m.Decks[deck.ID] = deck
	m.Order = append(m.Order, deck.ID)
	return nil
}

// GetByID implements store.DeckStore.
func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if d, ok := m.Decks[id]; ok {
		return d, nil
	}
	return nil, store.ErrDeckNotFound
}

// ListByUser implements store.DeckStore.
func (m *MockDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	decks := []*domain.Deck{}
	for _, id := range m.Order {
		if d, ok := m.Decks[id]; ok && d.UserID == userID {
			decks = append(decks, d)
		}
	}
	return decks, nil
}

// Update implements store.DeckStore.
func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, deck)
	}
	if _, ok := m.Decks[deck.ID]; !ok {
		return store.ErrDeckNotFound
	}
	m.Decks[deck.ID] = deck
	return nil
}

// Delete implements store.DeckStore.
func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Decks[id]; !ok {
		return store.ErrDeckNotFound
	}
	delete(m.Decks, id)
	return nil
}

// WithTx implements store.DeckStore. The mock ignores transactions.
func (m *MockDeckStore) WithTx(*sql.Tx) store.DeckStore { return m }
