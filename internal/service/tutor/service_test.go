package tutor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/mocks"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      tutor.Service
	convs    *mocks.MockConversationStore
	provider *mocks.MockTutorProvider
	owner    uuid.UUID
	deck     *domain.Deck
}

func newFixture(t *testing.T, provider tutor.Provider, cfg tutor.Config) *fixture {
	t.Helper()
	owner := uuid.New()
	deck, err := domain.NewDeck(owner, "Spanish", now)
	require.NoError(t, err)
	card, err := domain.NewCard(deck.ID, "hola", "hello", now)
	require.NoError(t, err)

	decks := mocks.NewMockDeckStore(deck)
	cards := mocks.NewMockCardStore(card)
	convs := mocks.NewMockConversationStore()

	svc := tutor.NewService(convs, decks, cards, provider, srs.NewDefaultService(), srs.FixedClock(now), cfg, nil)
	f := &fixture{svc: svc, convs: convs, owner: owner, deck: deck}
	if p, ok := provider.(*mocks.MockTutorProvider); ok {
		f.provider = p
	}
	return f
}

func TestCreateConversation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, nil, tutor.Config{})

	conv, err := f.svc.CreateConversation(ctx, f.owner, &f.deck.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "New conversation", conv.Title)
	require.NotNil(t, conv.DeckID)

	_, err = f.svc.CreateConversation(ctx, uuid.New(), &f.deck.ID, "Sneaky")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	list, err := f.svc.ListConversations(ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSendMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider := &mocks.MockTutorProvider{DefaultReply: "¡Hola! ¿Cómo estás?"}
	f := newFixture(t, provider, tutor.Config{MaxHistory: 3, MaxDeckCards: 100})

	conv, err := f.svc.CreateConversation(ctx, f.owner, &f.deck.ID, "Practice")
	require.NoError(t, err)

	for i := range 3 {
		_, err := f.svc.SendMessage(ctx, f.owner, conv.ID, fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}

	exchange, err := f.svc.SendMessage(ctx, f.owner, conv.ID, "hola")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, exchange.UserMessage.Role)
	assert.Equal(t, "hola", exchange.UserMessage.Content)
	assert.Equal(t, domain.RoleAssistant, exchange.AssistantMessage.Role)
	assert.Equal(t, "¡Hola! ¿Cómo estás?", exchange.AssistantMessage.Content)

	assert.Len(t, provider.LastHistory, 3)
	assert.Equal(t, "hola", provider.LastHistory[2].Content)
	assert.Contains(t, provider.LastPrompt, "- Front: hola | Back: hello [DUE FOR REVIEW]")

	thread, err := f.svc.GetConversation(ctx, f.owner, conv.ID)
	require.NoError(t, err)
	assert.Len(t, thread.Messages, 8)
}

func TestSendMessage_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil, tutor.Config{})
		conv, err := f.svc.CreateConversation(ctx, f.owner, nil, "")
		require.NoError(t, err)
		_, err = f.svc.SendMessage(ctx, f.owner, conv.ID, "hi")
		assert.ErrorIs(t, err, tutor.ErrTutorDisabled)
	})

	t.Run("provider failure keeps the user message", func(t *testing.T) {
		t.Parallel()
		provider := &mocks.MockTutorProvider{
			ReplyFn: func(context.Context, string, []*domain.Message) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}
		f := newFixture(t, provider, tutor.Config{})
		conv, err := f.svc.CreateConversation(ctx, f.owner, nil, "")
		require.NoError(t, err)

		_, err = f.svc.SendMessage(ctx, f.owner, conv.ID, "hi")
		assert.ErrorIs(t, err, tutor.ErrProviderFailure)
		require.Len(t, f.convs.Messages[conv.ID], 1)
		assert.Equal(t, domain.RoleUser, f.convs.Messages[conv.ID][0].Role)
	})

	t.Run("request timeout reaches the provider", func(t *testing.T) {
		t.Parallel()
		provider := &mocks.MockTutorProvider{
			ReplyFn: func(ctx context.Context, _ string, _ []*domain.Message) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		}
		f := newFixture(t, provider, tutor.Config{RequestTimeout: 10 * time.Millisecond})
		conv, err := f.svc.CreateConversation(ctx, f.owner, nil, "")
		require.NoError(t, err)

		_, err = f.svc.SendMessage(ctx, f.owner, conv.ID, "hi")
		assert.ErrorIs(t, err, tutor.ErrProviderFailure)
	})

	t.Run("foreign conversation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, &mocks.MockTutorProvider{}, tutor.Config{})
		conv, err := f.svc.CreateConversation(ctx, f.owner, nil, "")
		require.NoError(t, err)

		_, err = f.svc.SendMessage(ctx, uuid.New(), conv.ID, "hi")
		assert.ErrorIs(t, err, store.ErrConversationNotFound)
		_, err = f.svc.GetConversation(ctx, uuid.New(), conv.ID)
		assert.ErrorIs(t, err, store.ErrConversationNotFound)
		assert.ErrorIs(t, f.svc.DeleteConversation(ctx, uuid.New(), conv.ID), store.ErrConversationNotFound)
		assert.NoError(t, f.svc.DeleteConversation(ctx, f.owner, conv.ID))
	})

	t.Run("blank message", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, &mocks.MockTutorProvider{}, tutor.Config{})
		conv, err := f.svc.CreateConversation(ctx, f.owner, nil, "")
		require.NoError(t, err)
		_, err = f.svc.SendMessage(ctx, f.owner, conv.ID, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
