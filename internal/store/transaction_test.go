package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/phrazzld/scry-decks/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBeginner struct{ err error }

func (f failingBeginner) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	return nil, f.err
}

const insertUser = `INSERT INTO users (id, email, hashed_password, created_at, updated_at)
	VALUES ('u1', 'tx@example.com', 'hash', 't', 't')`

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func TestRunInTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()
		db := testdb.OpenSQLite(t)
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insertUser)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countUsers(t, db))
	})

	t.Run("rolls back and returns fn error unchanged", func(t *testing.T) {
		t.Parallel()
		db := testdb.OpenSQLite(t)
		sentinel := errors.New("stop")
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, insertUser); err != nil {
				return err
			}
			return sentinel
		})
		assert.Same(t, sentinel, err)
		assert.Zero(t, countUsers(t, db))
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		t.Parallel()
		db := testdb.OpenSQLite(t)
		assert.PanicsWithValue(t, "boom", func() {
			_ = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, insertUser)
				panic("boom")
			})
		})
		assert.Zero(t, countUsers(t, db))
	})

	t.Run("begin failure", func(t *testing.T) {
		t.Parallel()
		err := store.RunInTransaction(ctx, failingBeginner{err: errors.New("pool closed")},
			func(context.Context, *sql.Tx) error { return nil })
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
	})
}
