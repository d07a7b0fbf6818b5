package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/auth"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
	"github.com/phrazzld/scry-decks/internal/service/study"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
)

// ErrNotConfigured is returned by service mocks whose function field for
// the called method is nil.
var ErrNotConfigured = errors.New("mock method not configured")

// MockDeckService implements service.DeckService for testing.
type MockDeckService struct {
	CreateDeckFn func(ctx context.Context, userID uuid.UUID, name string) (*domain.Deck, error)
	GetDeckFn    func(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)
	RenameDeckFn func(ctx context.Context, userID, deckID uuid.UUID, name string) (*domain.Deck, error)
	DeleteDeckFn func(ctx context.Context, userID, deckID uuid.UUID) error
}

var _ service.DeckService = (*MockDeckService)(nil)

func (m *MockDeckService) CreateDeck(ctx context.Context, userID uuid.UUID, name string) (*domain.Deck, error) {
	if m.CreateDeckFn != nil {
		return m.CreateDeckFn(ctx, userID, name)
	}
	return nil, ErrNotConfigured
}

func (m *MockDeckService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	if m.GetDeckFn != nil {
		return m.GetDeckFn(ctx, userID, deckID)
	}
	return nil, ErrNotConfigured
}

func (m *MockDeckService) RenameDeck(ctx context.Context, userID, deckID uuid.UUID, name string) (*domain.Deck, error) {
	if m.RenameDeckFn != nil {
		return m.RenameDeckFn(ctx, userID, deckID, name)
	}
	return nil, ErrNotConfigured
}

func (m *MockDeckService) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	if m.DeleteDeckFn != nil {
		return m.DeleteDeckFn(ctx, userID, deckID)
	}
	return ErrNotConfigured
}

// MockCardService implements service.CardService for testing.
type MockCardService struct {
	CreateCardFn func(ctx context.Context, userID, deckID uuid.UUID, front, back string) (*domain.Card, error)
	GetCardFn    func(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)
	ListCardsFn  func(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error)
	UpdateCardFn func(ctx context.Context, userID, cardID uuid.UUID, front, back string) (*domain.Card, error)
	DeleteCardFn func(ctx context.Context, userID, cardID uuid.UUID) error
}

var _ service.CardService = (*MockCardService)(nil)

func (m *MockCardService) CreateCard(ctx context.Context, userID, deckID uuid.UUID, front, back string) (*domain.Card, error) {
	if m.CreateCardFn != nil {
		return m.CreateCardFn(ctx, userID, deckID, front, back)
	}
	return nil, ErrNotConfigured
}

func (m *MockCardService) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	if m.GetCardFn != nil {
		return m.GetCardFn(ctx, userID, cardID)
	}
	return nil, ErrNotConfigured
}

func (m *MockCardService) ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
	if m.ListCardsFn != nil {
		return m.ListCardsFn(ctx, userID, deckID)
	}
	return nil, ErrNotConfigured
}

func (m *MockCardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, front, back string) (*domain.Card, error) {
	if m.UpdateCardFn != nil {
		return m.UpdateCardFn(ctx, userID, cardID, front, back)
	}
	return nil, ErrNotConfigured
}

func (m *MockCardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if m.DeleteCardFn != nil {
		return m.DeleteCardFn(ctx, userID, cardID)
	}
	return ErrNotConfigured
}

// MockCardReviewService implements card_review.Service for testing.
type MockCardReviewService struct {
	SubmitReviewFn func(ctx context.Context, userID, cardID uuid.UUID, quality srs.Quality) (*card_review.ReviewResult, error)
}

var _ card_review.Service = (*MockCardReviewService)(nil)

func (m *MockCardReviewService) SubmitReview(ctx context.Context, userID, cardID uuid.UUID, quality srs.Quality) (*card_review.ReviewResult, error) {
	if m.SubmitReviewFn != nil {
		return m.SubmitReviewFn(ctx, userID, cardID, quality)
	}
	return nil, ErrNotConfigured
}

// MockStudyService implements study.Service for testing.
type MockStudyService struct {
	StudySessionFn  func(ctx context.Context, userID, deckID uuid.UUID, limit *int) (*study.Session, error)
	DueCardsFn      func(ctx context.Context, userID, deckID uuid.UUID, filter srs.DueFilter) ([]*domain.Card, error)
	ReviewQueueFn   func(ctx context.Context, userID uuid.UUID, limit *int) (*study.Queue, error)
	DeckOverviewsFn func(ctx context.Context, userID uuid.UUID) ([]*study.DeckOverview, error)
	DeckDetailFn    func(ctx context.Context, userID, deckID uuid.UUID) (*study.DeckDetail, error)
}

var _ study.Service = (*MockStudyService)(nil)

func (m *MockStudyService) StudySession(ctx context.Context, userID, deckID uuid.UUID, limit *int) (*study.Session, error) {
	if m.StudySessionFn != nil {
		return m.StudySessionFn(ctx, userID, deckID, limit)
	}
	return nil, ErrNotConfigured
}

func (m *MockStudyService) DueCards(ctx context.Context, userID, deckID uuid.UUID, filter srs.DueFilter) ([]*domain.Card, error) {
	if m.DueCardsFn != nil {
		return m.DueCardsFn(ctx, userID, deckID, filter)
	}
	return nil, ErrNotConfigured
}

func (m *MockStudyService) ReviewQueue(ctx context.Context, userID uuid.UUID, limit *int) (*study.Queue, error) {
	if m.ReviewQueueFn != nil {
		return m.ReviewQueueFn(ctx, userID, limit)
	}
	return nil, ErrNotConfigured
}

func (m *MockStudyService) DeckOverviews(ctx context.Context, userID uuid.UUID) ([]*study.DeckOverview, error) {
	if m.DeckOverviewsFn != nil {
		return m.DeckOverviewsFn(ctx, userID)
	}
	return nil, ErrNotConfigured
}

func (m *MockStudyService) DeckDetail(ctx context.Context, userID, deckID uuid.UUID) (*study.DeckDetail, error) {
	if m.DeckDetailFn != nil {
		return m.DeckDetailFn(ctx, userID, deckID)
	}
	return nil, ErrNotConfigured
}

// MockAuthService implements auth.Service for testing.
type MockAuthService struct {
	RegisterFn func(ctx context.Context, email, password string) (*auth.TokenPair, error)
	LoginFn    func(ctx context.Context, email, password string) (*auth.TokenPair, error)
	RefreshFn  func(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

var _ auth.Service = (*MockAuthService)(nil)

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password)
	}
	return nil, ErrNotConfigured
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return nil, ErrNotConfigured
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	return nil, ErrNotConfigured
}

// MockJWTService implements auth.JWTService for testing. Without
// ValidateTokenFn, ValidateToken accepts tokens of the form
// "valid-<uuid>" and rejects everything else with auth.ErrInvalidToken.
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, token string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
	Expiry                 time.Time
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return "valid-" + userID.String(), nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return parseMockToken(token, "valid-", auth.TokenTypeAccess)
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return "refresh-" + userID.String(), nil
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, token)
	}
	return parseMockToken(token, "refresh-", auth.TokenTypeRefresh)
}

func (m *MockJWTService) AccessTokenExpiry() time.Time {
	return m.Expiry
}

func parseMockToken(token, prefix, tokenType string) (*auth.Claims, error) {
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, auth.ErrInvalidToken
	}
	userID, err := uuid.Parse(token[len(prefix):])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID, TokenType: tokenType, Subject: userID.String()}, nil
}

// MockTutorService implements tutor.Service for testing.
type MockTutorService struct {
	CreateConversationFn func(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID, title string) (*domain.Conversation, error)
	ListConversationsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)
	GetConversationFn    func(ctx context.Context, userID, conversationID uuid.UUID) (*tutor.Thread, error)
	DeleteConversationFn func(ctx context.Context, userID, conversationID uuid.UUID) error
	SendMessageFn        func(ctx context.Context, userID, conversationID uuid.UUID, content string) (*tutor.Exchange, error)
}

var _ tutor.Service = (*MockTutorService)(nil)

func (m *MockTutorService) CreateConversation(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID, title string) (*domain.Conversation, error) {
	if m.CreateConversationFn != nil {
		return m.CreateConversationFn(ctx, userID, deckID, title)
	}
	return nil, ErrNotConfigured
}

func (m *MockTutorService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	if m.ListConversationsFn != nil {
		return m.ListConversationsFn(ctx, userID)
	}
	return nil, ErrNotConfigured
}

func (m *MockTutorService) GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*tutor.Thread, error) {
	if m.GetConversationFn != nil {
		return m.GetConversationFn(ctx, userID, conversationID)
	}
	return nil, ErrNotConfigured
}

func (m *MockTutorService) DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	if m.DeleteConversationFn != nil {
		return m.DeleteConversationFn(ctx, userID, conversationID)
	}
	return ErrNotConfigured
}

func (m *MockTutorService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, content string) (*tutor.Exchange, error) {
	if m.SendMessageFn != nil {
		return m.SendMessageFn(ctx, userID, conversationID, content)
	}
	return nil, ErrNotConfigured
}
