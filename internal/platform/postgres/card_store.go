package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

const cardColumns = `c.id, c.deck_id, c.front, c.back, c.ease_factor, c.interval_days,
	c.review_count, c.last_reviewed_at, c.next_review_at, c.version, c.created_at, c.updated_at`

// PostgresCardStore implements store.CardStore.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.CardStore = (*PostgresCardStore)(nil)

// NewPostgresCardStore creates a card store on db. A nil logger uses slog.Default().
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// WithTx implements store.CardStore.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var c domain.Card
	var lastReviewed sql.NullTime
	if err := row.Scan(
		&c.ID, &c.DeckID, &c.Front, &c.Back, &c.EaseFactor, &c.Interval,
		&c.ReviewCount, &lastReviewed, &c.NextReviewAt, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time.UTC()
		c.LastReviewedAt = &t
	}
	c.NextReviewAt = domain.Date(c.NextReviewAt)
	return &c, nil
}

// Create implements store.CardStore.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (id, deck_id, front, back, ease_factor, interval_days, review_count,
			last_reviewed_at, next_review_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		card.ID, card.DeckID, card.Front, card.Back, card.EaseFactor, card.Interval, card.ReviewCount,
		card.LastReviewedAt, card.NextReviewAt, card.Version, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrDeckNotFound
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "create", "insert failed", MapError(err))
	}
	return nil
}

// GetByID implements store.CardStore.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.getOne(ctx, `SELECT `+cardColumns+` FROM cards c WHERE c.id = $1`, id)
}

// GetForUpdate implements store.CardStore. The row stays locked until the
// enclosing transaction ends, so concurrent reviews of the card serialize.
func (s *PostgresCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.getOne(ctx, `SELECT `+cardColumns+` FROM cards c WHERE c.id = $1 FOR UPDATE`, id)
}

func (s *PostgresCardStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Card, error) {
	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, store.NewStoreError("card", "get", "query failed", MapError(err))
	}
	return card, nil
}

// ListByDeck implements store.CardStore.
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	return s.list(ctx, `SELECT `+cardColumns+` FROM cards c
		WHERE c.deck_id = $1 ORDER BY c.created_at, c.id`, deckID)
}

// ListByUser implements store.CardStore.
func (s *PostgresCardStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	return s.list(ctx, `SELECT `+cardColumns+` FROM cards c
		JOIN decks d ON d.id = c.deck_id
		WHERE d.user_id = $1 ORDER BY c.created_at, c.id`, userID)
}

func (s *PostgresCardStore) list(ctx context.Context, query string, arg uuid.UUID) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to query cards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("card", "list", "scan failed", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", "list", "row iteration failed", err)
	}
	return cards, nil
}

// UpdateText implements store.CardStore.
func (s *PostgresCardStore) UpdateText(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE cards SET front = $1, back = $2, updated_at = $3 WHERE id = $4`,
		card.Front, card.Back, card.UpdatedAt, card.ID)
	if err != nil {
		return store.NewStoreError("card", "update_text", "update failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrCardNotFound)
}

// UpdateSchedule implements store.CardStore.
func (s *PostgresCardStore) UpdateSchedule(ctx context.Context, card *domain.Card, expectedVersion int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return err
	}

	var newVersion int
	err := s.db.QueryRowContext(ctx, `
		UPDATE cards
		SET ease_factor = $1, interval_days = $2, review_count = $3,
			last_reviewed_at = $4, next_review_at = $5, updated_at = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version`,
		card.EaseFactor, card.Interval, card.ReviewCount,
		card.LastReviewedAt, card.NextReviewAt, card.UpdatedAt,
		card.ID, expectedVersion,
	).Scan(&newVersion)

	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if qerr := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM cards WHERE id = $1)`, card.ID).Scan(&exists); qerr != nil {
			return store.NewStoreError("card", "update_schedule", "existence check failed", MapError(qerr))
		}
		if !exists {
			return store.ErrCardNotFound
		}
		log.Warn("card schedule changed concurrently",
			slog.String("card_id", card.ID.String()),
			slog.Int("expected_version", expectedVersion))
		return store.ErrConcurrentUpdate
	}
	if err != nil {
		log.Error("failed to update card schedule",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "update_schedule", "update failed", MapError(err))
	}

	card.Version = newVersion
	return nil
}

// Delete implements store.CardStore.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("card", "delete", "delete failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrCardNotFound)
}
