// Package study assembles study sessions, due lists and deck statistics from
// stored cards. Selection and metrics are delegated to the srs package; this
// package only loads data and enforces ownership.
package study

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// Session is a study session for one deck.
type Session struct {
	Deck *domain.Deck
	// Cards are the sampled due cards in random order.
	Cards []*domain.Card
	// TotalDue counts every due card in the deck.
	TotalDue int
}

// Queue is a review queue across all of a user's decks.
type Queue struct {
	Cards    []*domain.Card
	TotalDue int
}

// DeckOverview pairs a deck with its scheduling summary.
type DeckOverview struct {
	Deck    *domain.Deck
	Summary srs.DeckSummary
}

// DeckDetail is a deck with its summary and every card.
type DeckDetail struct {
	DeckOverview
	Cards []*domain.Card
}

// Service is the read side of studying.
type Service interface {
	// StudySession samples up to *limit due cards from the deck. A nil limit
	// uses the configured default. Returns store.ErrDeckNotFound when the deck
	// is missing or owned by another user.
	StudySession(ctx context.Context, userID, deckID uuid.UUID, limit *int) (*Session, error)

	// DueCards lists the deck's cards matching filter, ordered by review date.
	DueCards(ctx context.Context, userID, deckID uuid.UUID, filter srs.DueFilter) ([]*domain.Card, error)

	// ReviewQueue samples due cards across all of the user's decks.
	ReviewQueue(ctx context.Context, userID uuid.UUID, limit *int) (*Queue, error)

	// DeckOverviews summarizes each of the user's decks.
	DeckOverviews(ctx context.Context, userID uuid.UUID) ([]*DeckOverview, error)

	// DeckDetail returns one owned deck with its summary and cards.
	DeckDetail(ctx context.Context, userID, deckID uuid.UUID) (*DeckDetail, error)
}

// Option configures the service.
type Option func(*serviceImpl)

// WithRandSource sets the constructor for each call's random source.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(s *serviceImpl) { s.newRand = newRand }
}

// WithDefaultLimit sets the session size used when no limit is given.
func WithDefaultLimit(limit int) Option {
	return func(s *serviceImpl) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

type serviceImpl struct {
	decks        store.DeckStore
	cards        store.CardStore
	scheduler    srs.Service
	clock        srs.Clock
	newRand      func() *rand.Rand
	defaultLimit int
	logger       *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates a study service.
func NewService(
	decks store.DeckStore,
	cards store.CardStore,
	scheduler srs.Service,
	clock srs.Clock,
	logger *slog.Logger,
	opts ...Option,
) Service {
	if decks == nil || cards == nil || scheduler == nil {
		panic("study service requires deck store, card store and scheduler")
	}
	if clock == nil {
		clock = srs.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		decks:        decks,
		cards:        cards,
		scheduler:    scheduler,
		clock:        clock,
		newRand:      func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
		defaultLimit: srs.DefaultStudyLimit,
		logger:       logger.With(slog.String("component", "study_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) ownedDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if !deck.OwnedBy(userID) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("deck access by non-owner",
			slog.String("user_id", userID.String()),
			slog.String("deck_id", deckID.String()))
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

func (s *serviceImpl) limitOrDefault(limit *int) int {
	if limit == nil {
		return s.defaultLimit
	}
	return *limit
}

// StudySession implements Service.
func (s *serviceImpl) StudySession(ctx context.Context, userID, deckID uuid.UUID, limit *int) (*Session, error) {
	deck, err := s.ownedDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByDeck(ctx, deck.ID)
	if err != nil {
		return nil, err
	}

	today := s.scheduler.Today(s.clock.Now())
	sel := srs.SelectDue(cards, today, s.limitOrDefault(limit), s.newRand())

	logger.FromContextOrDefault(ctx, s.logger).Debug("built study session",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("selected", len(sel.Cards)),
		slog.Int("total_due", sel.TotalDue))

	return &Session{Deck: deck, Cards: sel.Cards, TotalDue: sel.TotalDue}, nil
}

// DueCards implements Service.
func (s *serviceImpl) DueCards(ctx context.Context, userID, deckID uuid.UUID, filter srs.DueFilter) ([]*domain.Card, error) {
	filter, err := srs.ParseDueFilter(string(filter))
	if err != nil {
		return nil, err
	}
	deck, err := s.ownedDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByDeck(ctx, deck.ID)
	if err != nil {
		return nil, err
	}
	return srs.FilterCards(cards, s.scheduler.Today(s.clock.Now()), filter.Predicate()), nil
}

// ReviewQueue implements Service.
func (s *serviceImpl) ReviewQueue(ctx context.Context, userID uuid.UUID, limit *int) (*Queue, error) {
	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.scheduler.Today(s.clock.Now())
	sel := srs.SelectDue(cards, today, s.limitOrDefault(limit), s.newRand())
	return &Queue{Cards: sel.Cards, TotalDue: sel.TotalDue}, nil
}

// DeckOverviews implements Service.
func (s *serviceImpl) DeckOverviews(ctx context.Context, userID uuid.UUID) ([]*DeckOverview, error) {
	decks, err := s.decks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byDeck := make(map[uuid.UUID][]*domain.Card, len(decks))
	for _, c := range cards {
		byDeck[c.DeckID] = append(byDeck[c.DeckID], c)
	}

	today := s.scheduler.Today(s.clock.Now())
	params := s.scheduler.Params()
	overviews := make([]*DeckOverview, 0, len(decks))
	for _, d := range decks {
		overviews = append(overviews, &DeckOverview{
			Deck:    d,
			Summary: srs.SummarizeDeck(byDeck[d.ID], today, params),
		})
	}
	return overviews, nil
}

// DeckDetail implements Service.
func (s *serviceImpl) DeckDetail(ctx context.Context, userID, deckID uuid.UUID) (*DeckDetail, error) {
	deck, err := s.ownedDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByDeck(ctx, deck.ID)
	if err != nil {
		return nil, err
	}
	today := s.scheduler.Today(s.clock.Now())
	return &DeckDetail{
		DeckOverview: DeckOverview{
			Deck:    deck,
			Summary: srs.SummarizeDeck(cards, today, s.scheduler.Params()),
		},
		Cards: cards,
	}, nil
}
