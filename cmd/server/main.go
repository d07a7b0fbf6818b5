// Package main implements the scry-decks server: an HTTP API for flashcard
// decks scheduled with the SM-2 spaced repetition algorithm, plus an
// optional AI tutor.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "scry-decks: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration and either executes a migration
// command or serves HTTP until SIGINT or SIGTERM.
func run(args []string) error {
	fs := pflag.NewFlagSet("scry-decks", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	configFile := fs.String("config", "", "path to a config file")
	migrate := fs.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{ConfigFile: *configFile, Flags: fs})
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("closing database", slog.String("error", cerr.Error()))
		}
	}()

	if *migrate != "" {
		return migrations.Run(ctx, db, cfg.Database.Driver, *migrate, log)
	}

	if err := migrations.Up(ctx, db, cfg.Database.Driver, log); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	return app.serve(ctx)
}
