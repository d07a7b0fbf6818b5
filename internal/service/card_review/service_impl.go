package card_review

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	db        store.TxBeginner
	cards     store.CardStore
	decks     store.DeckStore
	scheduler srs.Service
	clock     srs.Clock
	logger    *slog.Logger
}

// NewService creates a review service. A nil clock uses the system clock.
func NewService(
	db store.TxBeginner,
	cards store.CardStore,
	decks store.DeckStore,
	scheduler srs.Service,
	clock srs.Clock,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if cards == nil {
		panic("cards cannot be nil")
	}
	if decks == nil {
		panic("decks cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if clock == nil {
		clock = srs.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:        db,
		cards:     cards,
		decks:     decks,
		scheduler: scheduler,
		clock:     clock,
		logger:    logger.With(slog.String("component", "card_review_service")),
	}
}

// SubmitReview implements Service.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	quality srs.Quality,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
	)

	if !quality.Valid() {
		log.Warn("rejected review with invalid quality", slog.Int("quality", int(quality)))
		return nil, srs.ErrInvalidQuality
	}

	var updated *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		card, err := cards.GetForUpdate(ctx, cardID)
		if err != nil {
			return err
		}

		deck, err := s.decks.WithTx(tx).GetByID(ctx, card.DeckID)
		if err != nil {
			return err
		}
		if !deck.OwnedBy(userID) {
			log.Warn("review attempted on card owned by another user",
				slog.String("owner_id", deck.UserID.String()))
			return store.ErrCardNotFound
		}

		next, err := s.scheduler.ApplyReview(card, quality, s.clock.Now())
		if err != nil {
			return err
		}

		if err := cards.UpdateSchedule(ctx, next, card.Version); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCardNotFound),
			errors.Is(err, store.ErrDeckNotFound):
			log.Debug("card not found for review")
			return nil, store.ErrCardNotFound
		case errors.Is(err, store.ErrConcurrentUpdate):
			log.Warn("review lost a concurrent update race")
			return nil, store.ErrConcurrentUpdate
		case errors.Is(err, srs.ErrInvalidQuality):
			return nil, err
		}
		log.Error("failed to submit review", slog.String("error", err.Error()))
		return nil, NewSubmitReviewError("failed to record review", err)
	}

	log.Debug("recorded review",
		slog.Int("quality", int(quality)),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Int("interval", updated.Interval),
		slog.Int("review_count", updated.ReviewCount),
		slog.String("next_review_at", updated.NextReviewAt.Format(domain.DateLayout)))

	return &ReviewResult{Card: updated, Quality: quality, Message: quality.Feedback()}, nil
}
