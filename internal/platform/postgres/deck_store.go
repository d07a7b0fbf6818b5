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

// PostgresDeckStore implements store.DeckStore.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.DeckStore = (*PostgresDeckStore)(nil)

// NewPostgresDeckStore creates a deck store on db. A nil logger uses slog.Default().
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// WithTx implements store.DeckStore.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx, logger: s.logger}
}

// Create implements store.DeckStore.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decks (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		deck.ID, deck.UserID, deck.Name, deck.CreatedAt, deck.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "create", "insert failed", MapError(err))
	}

	log.Debug("deck created", slog.String("deck_id", deck.ID.String()))
	return nil
}

// GetByID implements store.DeckStore.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	var d domain.Deck
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM decks WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, store.NewStoreError("deck", "get", "query failed", MapError(err))
	}
	return &d, nil
}

// ListByUser implements store.DeckStore.
func (s *PostgresDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM decks WHERE user_id = $1
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, store.NewStoreError("deck", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	decks := []*domain.Deck{}
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, store.NewStoreError("deck", "list", "scan failed", err)
		}
		decks = append(decks, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "row iteration failed", err)
	}
	return decks, nil
}

// Update implements store.DeckStore.
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE decks SET name = $1, updated_at = $2 WHERE id = $3`,
		deck.Name, deck.UpdatedAt, deck.ID)
	if err != nil {
		return store.NewStoreError("deck", "update", "update failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrDeckNotFound)
}

// Delete implements store.DeckStore.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("deck", "delete", "delete failed", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrDeckNotFound); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}
