package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/phrazzld/scry-decks/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

const setupTimeout = 30 * time.Second

// OpenSQLite returns a fresh in-memory SQLite database with all migrations
// applied. It is closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err, "open in-memory sqlite")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db, migrations.DriverSQLite, quietLogger()),
		"apply sqlite migrations")
	return db
}

// OpenPostgres connects to the configured Postgres test database and
// applies migrations. The test is skipped when no URL is configured.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping Postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "open %s", MaskDatabaseURL(dbURL))
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx), "ping %s", MaskDatabaseURL(dbURL))
	require.NoError(t, migrations.Up(ctx, db, migrations.DriverPostgres, quietLogger()),
		"apply postgres migrations")
	return db
}

func quietLogger() *slog.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}
