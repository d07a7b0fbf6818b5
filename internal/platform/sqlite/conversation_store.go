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

// ConversationStore implements store.ConversationStore.
type ConversationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ConversationStore = (*ConversationStore)(nil)

// NewConversationStore creates a conversation store on db.
func NewConversationStore(db store.DBTX, logger *slog.Logger) *ConversationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationStore{db: db, logger: logger.With(slog.String("component", "conversation_store"))}
}

// WithTx implements store.ConversationStore.
func (s *ConversationStore) WithTx(tx *sql.Tx) store.ConversationStore {
	return &ConversationStore{db: tx, logger: s.logger}
}

// Create implements store.ConversationStore.
func (s *ConversationStore) Create(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, deck_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		conv.ID, conv.UserID, conv.DeckID, conv.Title, formatTime(conv.CreatedAt), formatTime(conv.UpdatedAt))
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrDeckNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create conversation",
			slog.String("error", err.Error()))
		return store.NewStoreError("conversation", "create", "insert failed", MapError(err))
	}
	return nil
}

func scanConversation(row rowScanner) (*domain.Conversation, error) {
	var c domain.Conversation
	var deckID uuid.NullUUID
	var created, updated string
	if err := row.Scan(&c.ID, &c.UserID, &deckID, &c.Title, &created, &updated); err != nil {
		return nil, err
	}
	if deckID.Valid {
		id := deckID.UUID
		c.DeckID = &id
	}
	var err error
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID implements store.ConversationStore.
func (s *ConversationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	conv, err := scanConversation(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, deck_id, title, created_at, updated_at
		FROM conversations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrConversationNotFound
		}
		return nil, store.NewStoreError("conversation", "get", "query failed", MapError(err))
	}
	return conv, nil
}

// ListByUser implements store.ConversationStore.
func (s *ConversationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, deck_id, title, created_at, updated_at
		FROM conversations WHERE user_id = ?
		ORDER BY updated_at DESC, id`, userID)
	if err != nil {
		return nil, store.NewStoreError("conversation", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	convs := []*domain.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, store.NewStoreError("conversation", "list", "scan failed", err)
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// Delete implements store.ConversationStore.
func (s *ConversationStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return store.NewStoreError("conversation", "delete", "delete failed", MapError(err))
	}
	return checkRowsAffected(result, store.ErrConversationNotFound)
}

// AddMessage implements store.ConversationStore.
func (s *ConversationStore) AddMessage(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		formatTime(msg.CreatedAt), msg.ConversationID)
	if err != nil {
		return store.NewStoreError("message", "create", "touch conversation failed", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrConversationNotFound); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.ConversationID, string(msg.Role), msg.Content, formatTime(msg.CreatedAt))
	if err != nil {
		return store.NewStoreError("message", "create", "insert failed", MapError(err))
	}
	return nil
}

// ListMessages implements store.ConversationStore.
func (s *ConversationStore) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at FROM (
			SELECT id, conversation_id, role, content, created_at, rowid AS seq
			FROM messages WHERE conversation_id = ?
			ORDER BY created_at DESC, seq DESC
			LIMIT ?
		) ORDER BY created_at, seq`, conversationID, limit)
	if err != nil {
		return nil, store.NewStoreError("message", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	msgs := []*domain.Message{}
	for rows.Next() {
		var m domain.Message
		var role, created string
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &m.Content, &created); err != nil {
			return nil, store.NewStoreError("message", "list", "scan failed", err)
		}
		if m.CreatedAt, err = parseTime(created); err != nil {
			return nil, store.NewStoreError("message", "list", "decode failed", err)
		}
		m.Role = domain.Role(role)
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}
