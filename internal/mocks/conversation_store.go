package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockConversationStore implements store.ConversationStore for testing.
type MockConversationStore struct {
	CreateFn       func(ctx context.Context, conv *domain.Conversation) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	ListByUserFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	AddMessageFn   func(ctx context.Context, msg *domain.Message) error
	ListMessagesFn func(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)

	Conversations map[uuid.UUID]*domain.Conversation
	Messages      map[uuid.UUID][]*domain.Message
}

var _ store.ConversationStore = (*MockConversationStore)(nil)

// NewMockConversationStore creates an empty mock.
func NewMockConversationStore() *MockConversationStore {
	return &MockConversationStore{
		Conversations: make(map[uuid.UUID]*domain.Conversation),
		Messages:      make(map[uuid.UUID][]*domain.Message),
	}
}

// Create implements store.ConversationStore.
func (m *MockConversationStore) Create(ctx context.Context, conv *domain.Conversation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, conv)
	}
	m.Conversations[conv.ID] = conv
	return nil
}

// GetByID implements store.ConversationStore.
func (m *MockConversationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if c, ok := m.Conversations[id]; ok {
		return c, nil
	}
	return nil, store.ErrConversationNotFound
}

// ListByUser implements store.ConversationStore.
func (m *MockConversationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	convs := []*domain.Conversation{}
	for _, c := range m.Conversations {
		if c.UserID == userID {
			convs = append(convs, c)
		}
	}
	return convs, nil
}

// Delete implements store.ConversationStore.
func (m *MockConversationStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Conversations[id]; !ok {
		return store.ErrConversationNotFound
	}
	delete(m.Conversations, id)
	delete(m.Messages, id)
	return nil
}

// AddMessage implements store.ConversationStore.
func (m *MockConversationStore) AddMessage(ctx context.Context, msg *domain.Message) error {
	if m.AddMessageFn != nil {
		return m.AddMessageFn(ctx, msg)
	}
	if _, ok := m.Conversations[msg.ConversationID]; !ok {
		return store.ErrConversationNotFound
	}
	m.Messages[msg.ConversationID] = append(m.Messages[msg.ConversationID], msg)
	return nil
}

// ListMessages implements store.ConversationStore.
func (m *MockConversationStore) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error) {
	if m.ListMessagesFn != nil {
		return m.ListMessagesFn(ctx, conversationID, limit)
	}
	msgs := m.Messages[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]*domain.Message{}, msgs...), nil
}

// WithTx implements store.ConversationStore. The mock ignores transactions.
func (m *MockConversationStore) WithTx(*sql.Tx) store.ConversationStore { return m }
