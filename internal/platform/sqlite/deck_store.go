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

// DeckStore implements store.DeckStore.
type DeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.DeckStore = (*DeckStore)(nil)

// NewDeckStore creates a deck store on db. A nil logger uses slog.Default().
func NewDeckStore(db store.DBTX, logger *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckStore{db: db, logger: logger.With(slog.String("component", "deck_store"))}
}

// WithTx implements store.DeckStore.
func (s *DeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &DeckStore{db: tx, logger: s.logger}
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var d domain.Deck
	var created, updated string
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if d.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create implements store.DeckStore.
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decks (id, user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		deck.ID, deck.UserID, deck.Name, formatTime(deck.CreatedAt), formatTime(deck.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "create", "insert failed", MapError(err))
	}
	return nil
}

// GetByID implements store.DeckStore.
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	deck, err := scanDeck(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM decks WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, store.NewStoreError("deck", "get", "query failed", MapError(err))
	}
	return deck, nil
}

// ListByUser implements store.DeckStore.
func (s *DeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM decks WHERE user_id = ?
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
		d, err := scanDeck(rows)
		if err != nil {
			return nil, store.NewStoreError("deck", "list", "scan failed", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "row iteration failed", err)
	}
	return decks, nil
}

// Update implements store.DeckStore.
func (s *DeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE decks SET name = ?, updated_at = ? WHERE id = ?`,
		deck.Name, formatTime(deck.UpdatedAt), deck.ID)
	if err != nil {
		return store.NewStoreError("deck", "update", "update failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrDeckNotFound)
}

// Delete implements store.DeckStore.
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return store.NewStoreError("deck", "delete", "delete failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrDeckNotFound)
}
