package migrations_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/phrazzld/scry-decks/internal/platform/sqlite"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSource(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{migrations.DriverPostgres, migrations.DriverSQLite} {
		fsys, dialect, err := migrations.Source(driver)
		require.NoError(t, err, driver)
		assert.NotEmpty(t, dialect)

		_, err = fsys.Open("00001_users_decks_cards.sql")
		assert.NoError(t, err, driver)
	}

	_, _, err := migrations.Source("mysql")
	assert.Error(t, err)
}

func TestRun_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openMemory(t)
	log, buf := logger.NewCapture(slog.LevelInfo)

	require.NoError(t, migrations.Up(ctx, db, migrations.DriverSQLite, log))

	provider, err := migrations.NewProvider(db, migrations.DriverSQLite)
	require.NoError(t, err)
	version, err := provider.GetDBVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	applied := 0
	for _, e := range buf.Entries() {
		if e["msg"] == "migration applied" {
			applied++
		}
	}
	assert.Equal(t, 2, applied)

	require.NoError(t, migrations.Up(ctx, db, migrations.DriverSQLite, log), "up is idempotent")

	require.NoError(t, migrations.Run(ctx, db, migrations.DriverSQLite, "down", log))
	version, err = provider.GetDBVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, err = db.ExecContext(ctx, `SELECT 1 FROM messages`)
	assert.Error(t, err, "messages table dropped by down")

	assert.NoError(t, migrations.Run(ctx, db, migrations.DriverSQLite, "status", log))
	assert.NoError(t, migrations.Run(ctx, db, migrations.DriverSQLite, "version", log))
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()
	db := openMemory(t)

	err := migrations.Run(context.Background(), db, migrations.DriverSQLite, "sideways", nil)
	assert.ErrorIs(t, err, migrations.ErrUnknownCommand)
}

func TestRun_SchemaConstraints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, migrations.Up(ctx, db, migrations.DriverSQLite, nil))

	_, err := db.ExecContext(ctx, `
		INSERT INTO cards (id, deck_id, front, back, next_review_at, created_at, updated_at)
		VALUES ('c1', 'no-such-deck', 'q', 'a', '2024-01-01', 't', 't')`)
	assert.ErrorIs(t, sqlite.MapError(err), store.ErrInvalidEntity)
}
