package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/phrazzld/scry-decks/internal/platform/sqlite"
	"github.com/phrazzld/scry-decks/internal/redact"
)

const pingTimeout = 5 * time.Second

// openDatabase opens and pings the configured database.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	switch cfg.Driver {
	case migrations.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %s", redact.Error(err))
		}
		log.Info("database connection established", slog.String("driver", cfg.Driver))
		return db, nil

	case migrations.DriverPostgres:
		db, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres database: %s", redact.Error(err))
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pinging postgres database: %s", redact.Error(err))
		}
		log.Info("database connection established",
			slog.String("driver", cfg.Driver),
			slog.Int("max_open_conns", cfg.MaxOpenConns))
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
