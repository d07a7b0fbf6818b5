package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/service/auth"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
	"github.com/phrazzld/scry-decks/internal/service/study"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
)

// Request bodies.

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type DeckRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type CardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

// ReviewRequest keeps quality raw so that any malformed rating, including
// "4.5" or a missing field, is rejected with 422 rather than a decoding error.
type ReviewRequest struct {
	Quality json.RawMessage `json:"quality"`
}

type ConversationRequest struct {
	DeckID *uuid.UUID `json:"deck_id,omitempty"`
	Title  string     `json:"title" validate:"max=200"`
}

type MessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// Responses.

type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// CardResponse is the wire form of a card. Scheduling dates are sent as
// YYYY-MM-DD.
type CardResponse struct {
	ID                uuid.UUID      `json:"id"`
	DeckID            uuid.UUID      `json:"deck_id"`
	Front             string         `json:"front"`
	Back              string         `json:"back"`
	EaseFactor        float64        `json:"ease_factor"`
	Interval          int            `json:"interval"`
	ReviewCount       int            `json:"review_count"`
	LastReviewedAt    *time.Time     `json:"last_reviewed_at"`
	NextReviewAt      string         `json:"next_review_at"`
	Status            srs.CardStatus `json:"status"`
	MasteryPercentage float64        `json:"mastery_percentage"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type DeckResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Stats     *srs.DeckSummary `json:"stats,omitempty"`
}

type DeckDetailResponse struct {
	DeckResponse
	Cards []CardResponse `json:"cards"`
}

type DeckListResponse struct {
	Decks []DeckResponse `json:"decks"`
}

type StudySessionResponse struct {
	Deck     DeckResponse   `json:"deck"`
	CardsDue int            `json:"cards_due"`
	Cards    []CardResponse `json:"cards"`
}

type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

type ReviewQueueResponse struct {
	Cards    []CardResponse `json:"cards"`
	TotalDue int            `json:"total_due"`
}

type ReviewResponse struct {
	Card         CardResponse `json:"card"`
	Interval     int          `json:"interval"`
	EaseFactor   float64      `json:"ease_factor"`
	NextReviewAt string       `json:"next_review_at"`
	ReviewCount  int          `json:"review_count"`
	Message      string       `json:"message"`
}

type ConversationResponse struct {
	ID        uuid.UUID  `json:"id"`
	DeckID    *uuid.UUID `json:"deck_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type MessageResponse struct {
	ID        uuid.UUID   `json:"id"`
	Role      domain.Role `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

type ThreadResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}

type ExchangeResponse struct {
	UserMessage      MessageResponse `json:"user_message"`
	AssistantMessage MessageResponse `json:"assistant_message"`
}

// Converters.

func authToResponse(pair *auth.TokenPair) AuthResponse {
	return AuthResponse{
		UserID:       pair.User.ID,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}

func cardToResponse(card *domain.Card, params *srs.Params) CardResponse {
	return CardResponse{
		ID:                card.ID,
		DeckID:            card.DeckID,
		Front:             card.Front,
		Back:              card.Back,
		EaseFactor:        card.EaseFactor,
		Interval:          card.Interval,
		ReviewCount:       card.ReviewCount,
		LastReviewedAt:    card.LastReviewedAt,
		NextReviewAt:      card.NextReviewAt.Format(domain.DateLayout),
		Status:            srs.Status(card, params),
		MasteryPercentage: srs.Mastery(card, params),
		CreatedAt:         card.CreatedAt,
		UpdatedAt:         card.UpdatedAt,
	}
}

func cardsToResponse(cards []*domain.Card, params *srs.Params) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToResponse(c, params))
	}
	return out
}

func deckToResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:        deck.ID,
		Name:      deck.Name,
		CreatedAt: deck.CreatedAt,
		UpdatedAt: deck.UpdatedAt,
	}
}

func overviewToResponse(o *study.DeckOverview) DeckResponse {
	resp := deckToResponse(o.Deck)
	summary := o.Summary
	resp.Stats = &summary
	return resp
}

func reviewToResponse(result *card_review.ReviewResult, params *srs.Params) ReviewResponse {
	card := cardToResponse(result.Card, params)
	return ReviewResponse{
		Card:         card,
		Interval:     card.Interval,
		EaseFactor:   card.EaseFactor,
		NextReviewAt: card.NextReviewAt,
		ReviewCount:  card.ReviewCount,
		Message:      result.Message,
	}
}

func conversationToResponse(c *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        c.ID,
		DeckID:    c.DeckID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func messageToResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func threadToResponse(t *tutor.Thread) ThreadResponse {
	msgs := make([]MessageResponse, 0, len(t.Messages))
	for _, m := range t.Messages {
		msgs = append(msgs, messageToResponse(m))
	}
	return ThreadResponse{
		Conversation: conversationToResponse(t.Conversation),
		Messages:     msgs,
	}
}
