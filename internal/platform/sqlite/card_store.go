package sqlite

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

// CardStore implements store.CardStore.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.CardStore = (*CardStore)(nil)

// NewCardStore creates a card store on db. A nil logger uses slog.Default().
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{db: db, logger: logger.With(slog.String("component", "card_store"))}
}

// WithTx implements store.CardStore.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{db: tx, logger: s.logger}
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var c domain.Card
	var lastReviewed sql.NullString
	var nextReview, created, updated string
	if err := row.Scan(
		&c.ID, &c.DeckID, &c.Front, &c.Back, &c.EaseFactor, &c.Interval,
		&c.ReviewCount, &lastReviewed, &nextReview, &c.Version, &created, &updated,
	); err != nil {
		return nil, err
	}

	var err error
	if lastReviewed.Valid {
		t, err := parseTime(lastReviewed.String)
		if err != nil {
			return nil, err
		}
		c.LastReviewedAt = &t
	}
	if c.NextReviewAt, err = parseDate(nextReview); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create implements store.CardStore.
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		card.ID, card.DeckID, card.Front, card.Back, card.EaseFactor, card.Interval, card.ReviewCount,
		formatNullTime(card.LastReviewedAt), formatDate(card.NextReviewAt), card.Version,
		formatTime(card.CreatedAt), formatTime(card.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
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
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, err := scanCard(s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards c WHERE c.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, store.NewStoreError("card", "get", "query failed", MapError(err))
	}
	return card, nil
}

// GetForUpdate implements store.CardStore. SQLite has no row locks; the
// single-connection pool serializes transactions and UpdateSchedule's
// version check catches anything else.
func (s *CardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.GetByID(ctx, id)
}

// ListByDeck implements store.CardStore.
func (s *CardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	return s.list(ctx, `SELECT `+cardColumns+` FROM cards c
		WHERE c.deck_id = ? ORDER BY c.created_at, c.id`, deckID)
}

// ListByUser implements store.CardStore.
func (s *CardStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	return s.list(ctx, `SELECT `+cardColumns+` FROM cards c
		JOIN decks d ON d.id = c.deck_id
		WHERE d.user_id = ? ORDER BY c.created_at, c.id`, userID)
}

func (s *CardStore) list(ctx context.Context, query string, arg uuid.UUID) ([]*domain.Card, error) {
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
func (s *CardStore) UpdateText(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE cards SET front = ?, back = ?, updated_at = ? WHERE id = ?`,
		card.Front, card.Back, formatTime(card.UpdatedAt), card.ID)
	if err != nil {
		return store.NewStoreError("card", "update_text", "update failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrCardNotFound)
}

// UpdateSchedule implements store.CardStore.
func (s *CardStore) UpdateSchedule(ctx context.Context, card *domain.Card, expectedVersion int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE cards
		SET ease_factor = ?, interval_days = ?, review_count = ?,
			last_reviewed_at = ?, next_review_at = ?, updated_at = ?,
			version = version + 1
		WHERE id = ? AND version = ?`,
		card.EaseFactor, card.Interval, card.ReviewCount,
		formatNullTime(card.LastReviewedAt), formatDate(card.NextReviewAt), formatTime(card.UpdatedAt),
		card.ID, expectedVersion,
	)
	if err != nil {
		log.Error("failed to update card schedule",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "update_schedule", "update failed", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("card", "update_schedule", "rows affected unavailable", err)
	}
	if n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE id = ?`, card.ID).Scan(&exists)
		if err != nil {
			return store.NewStoreError("card", "update_schedule", "existence check failed", MapError(err))
		}
		if exists == 0 {
			return store.ErrCardNotFound
		}
		log.Warn("card schedule changed concurrently",
			slog.String("card_id", card.ID.String()),
			slog.Int("expected_version", expectedVersion))
		return store.ErrConcurrentUpdate
	}

	card.Version = expectedVersion + 1
	return nil
}

// Delete implements store.CardStore.
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return store.NewStoreError("card", "delete", "delete failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrCardNotFound)
}
