// Package migrations embeds the schema migrations for both storage
// backends and runs them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Supported drivers, matching config.DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnknownCommand is returned by Run for an unsupported command.
var ErrUnknownCommand = errors.New("unknown migration command")

// Source returns the migration files for driver.
func Source(driver string) (fs.FS, goose.Dialect, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}

	sub, err := fs.Sub(embedded, driver)
	if err != nil {
		return nil, "", fmt.Errorf("locating %s migrations: %w", driver, err)
	}
	return sub, dialect, nil
}

// NewProvider returns a goose provider for db's backend.
func NewProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	fsys, dialect, err := Source(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return provider, nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, driver string, log *slog.Logger) error {
	return Run(ctx, db, driver, "up", log)
}

// Run executes one of the commands "up", "down", "status" or "version".
func Run(ctx context.Context, db *sql.DB, driver, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("driver", driver))

	provider, err := NewProvider(db, driver)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		for _, r := range results {
			logResult(log, r)
		}
		if err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
		log.Info("migrations up to date", slog.Int("applied", len(results)))

	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			logResult(log, result)
		}
		if err != nil {
			return fmt.Errorf("rolling back migration: %w", err)
		}

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("reading migration status: %w", err)
		}
		for _, s := range statuses {
			log.Info("migration status",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)))
		}

	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		log.Info("schema version", slog.Int64("version", version))

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	return nil
}

func logResult(log *slog.Logger, r *goose.MigrationResult) {
	attrs := []any{
		slog.Int64("version", r.Source.Version),
		slog.String("direction", r.Direction),
		slog.Duration("duration", r.Duration),
	}
	if r.Error != nil {
		log.Error("migration failed", append(attrs, slog.String("error", r.Error.Error()))...)
		return
	}
	log.Info("migration applied", attrs...)
}
