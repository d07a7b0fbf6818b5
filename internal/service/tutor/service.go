package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// Thread is a conversation with its messages, oldest first.
type Thread struct {
	Conversation *domain.Conversation
	Messages     []*domain.Message
}

// Exchange is one user turn and the tutor's answer.
type Exchange struct {
	UserMessage      *domain.Message
	AssistantMessage *domain.Message
}

// Service manages tutor conversations. Conversations owned by another user
// are reported as store.ErrConversationNotFound.
type Service interface {
	CreateConversation(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID, title string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)
	GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*Thread, error)
	DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error
	// SendMessage stores the user's message, asks the provider for a reply
	// and stores that too. The user's message is kept when the provider fails.
	SendMessage(ctx context.Context, userID, conversationID uuid.UUID, content string) (*Exchange, error)
}

// Config bounds the context sent to the provider.
type Config struct {
	// MaxHistory is the number of most recent messages sent; 0 sends all.
	MaxHistory int
	// MaxDeckCards is the number of deck cards listed in the system prompt.
	MaxDeckCards int
	// RequestTimeout bounds a single provider call; 0 means no extra bound.
	RequestTimeout time.Duration
}

type serviceImpl struct {
	convs     store.ConversationStore
	decks     store.DeckStore
	cards     store.CardStore
	provider  Provider
	scheduler srs.Service
	clock     srs.Clock
	cfg       Config
	logger    *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates a tutor service. A nil provider disables SendMessage.
func NewService(
	convs store.ConversationStore,
	decks store.DeckStore,
	cards store.CardStore,
	provider Provider,
	scheduler srs.Service,
	clock srs.Clock,
	cfg Config,
	logger *slog.Logger,
) Service {
	if convs == nil || decks == nil || cards == nil || scheduler == nil {
		panic("tutor service requires stores and scheduler")
	}
	if clock == nil {
		clock = srs.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &serviceImpl{
		convs:     convs,
		decks:     decks,
		cards:     cards,
		provider:  provider,
		scheduler: scheduler,
		clock:     clock,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "tutor_service")),
	}
}

// CreateConversation implements Service.
func (s *serviceImpl) CreateConversation(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID, title string) (*domain.Conversation, error) {
	if deckID != nil {
		deck, err := s.decks.GetByID(ctx, *deckID)
		if err != nil {
			return nil, err
		}
		if !deck.OwnedBy(userID) {
			return nil, store.ErrDeckNotFound
		}
	}

	conv, err := domain.NewConversation(userID, deckID, title, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.convs.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// ListConversations implements Service.
func (s *serviceImpl) ListConversations(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	return s.convs.ListByUser(ctx, userID)
}

func (s *serviceImpl) owned(ctx context.Context, userID, conversationID uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convs.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, store.ErrConversationNotFound
	}
	return conv, nil
}

// GetConversation implements Service.
func (s *serviceImpl) GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*Thread, error) {
	conv, err := s.owned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.convs.ListMessages(ctx, conv.ID, 0)
	if err != nil {
		return nil, err
	}
	return &Thread{Conversation: conv, Messages: msgs}, nil
}

// DeleteConversation implements Service.
func (s *serviceImpl) DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.convs.Delete(ctx, conversationID)
}

// SendMessage implements Service.
func (s *serviceImpl) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, content string) (*Exchange, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("conversation_id", conversationID.String()))

	if s.provider == nil {
		return nil, ErrTutorDisabled
	}

	conv, err := s.owned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg, err := domain.NewMessage(conv.ID, domain.RoleUser, content, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.convs.AddMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	history, err := s.convs.ListMessages(ctx, conv.ID, s.cfg.MaxHistory)
	if err != nil {
		return nil, err
	}
	system, err := s.systemPrompt(ctx, conv)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.provider.Reply(callCtx, system, history)
	if err != nil {
		log.Error("tutor provider failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	log.Debug("tutor replied",
		slog.Int("history", len(history)),
		slog.Duration("elapsed", time.Since(start)))

	assistantMsg, err := domain.NewMessage(conv.ID, domain.RoleAssistant, reply, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	if err := s.convs.AddMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}
	return &Exchange{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

func (s *serviceImpl) systemPrompt(ctx context.Context, conv *domain.Conversation) (string, error) {
	if conv.DeckID == nil {
		return BuildSystemPrompt(nil, nil, time.Time{}, 0)
	}

	deck, err := s.decks.GetByID(ctx, *conv.DeckID)
	if errors.Is(err, store.ErrDeckNotFound) {
		return BuildSystemPrompt(nil, nil, time.Time{}, 0)
	}
	if err != nil {
		return "", err
	}
	cards, err := s.cards.ListByDeck(ctx, deck.ID)
	if err != nil {
		return "", err
	}
	return BuildSystemPrompt(deck, cards, s.scheduler.Today(s.clock.Now()), s.cfg.MaxDeckCards)
}
