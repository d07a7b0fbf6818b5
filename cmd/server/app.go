package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/gemini"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/phrazzld/scry-decks/internal/platform/postgres"
	"github.com/phrazzld/scry-decks/internal/platform/sqlite"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/auth"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
	"github.com/phrazzld/scry-decks/internal/service/study"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
	"github.com/phrazzld/scry-decks/internal/store"
)

// stores groups the persistence layer for one driver.
type stores struct {
	users         store.UserStore
	decks         store.DeckStore
	cards         store.CardStore
	conversations store.ConversationStore
}

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	clock  srs.Clock

	params    *srs.Params
	scheduler srs.Service

	jwtService    auth.JWTService
	authService   auth.Service
	deckService   service.DeckService
	cardService   service.CardService
	reviewService card_review.Service
	studyService  study.Service
	tutorService  tutor.Service
}

// newApplication wires the application. The Gemini provider is only
// created when the tutor is enabled.
func newApplication(ctx context.Context, cfg *config.Config, db *sql.DB, log *slog.Logger) (*application, error) {
	var provider tutor.Provider
	if cfg.Tutor.Enabled {
		p, err := gemini.NewProvider(ctx, gemini.Config{
			APIKey:     cfg.Tutor.GeminiAPIKey,
			Model:      cfg.Tutor.ModelName,
			MaxRetries: cfg.Tutor.MaxRetries,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("creating tutor provider: %w", err)
		}
		provider = p
		log.Info("AI tutor enabled", slog.String("model", cfg.Tutor.ModelName))
	}
	return buildApplication(cfg, db, provider, srs.SystemClock{}, log)
}

// buildApplication constructs every store and service on top of db.
func buildApplication(
	cfg *config.Config,
	db *sql.DB,
	provider tutor.Provider,
	clock srs.Clock,
	log *slog.Logger,
) (*application, error) {
	loc, err := cfg.SRS.Location()
	if err != nil {
		return nil, fmt.Errorf("loading srs timezone: %w", err)
	}
	params, err := srs.NewParams(srs.ParamsConfig{MaturityThresholdDays: cfg.SRS.MaturityThresholdDays})
	if err != nil {
		return nil, fmt.Errorf("creating srs params: %w", err)
	}
	scheduler := srs.NewService(params, loc)

	st, err := newStores(cfg.Database.Driver, db, log)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("creating jwt service: %w", err)
	}
	authService := auth.NewService(st.users, jwtService, auth.NewBcryptHasher(cfg.Auth.BCryptCost), clock, log)

	deckService, err := service.NewDeckService(st.decks, clock, log)
	if err != nil {
		return nil, fmt.Errorf("creating deck service: %w", err)
	}
	cardService, err := service.NewCardService(st.cards, deckService, clock, log)
	if err != nil {
		return nil, fmt.Errorf("creating card service: %w", err)
	}

	tutorCfg := tutor.Config{
		MaxHistory:     cfg.Tutor.MaxHistory,
		MaxDeckCards:   cfg.Tutor.MaxDeckCards,
		RequestTimeout: time.Duration(cfg.Tutor.RequestTimeoutSeconds) * time.Second,
	}

	return &application{
		config:        cfg,
		logger:        log,
		db:            db,
		clock:         clock,
		params:        params,
		scheduler:     scheduler,
		jwtService:    jwtService,
		authService:   authService,
		deckService:   deckService,
		cardService:   cardService,
		reviewService: card_review.NewService(db, st.cards, st.decks, scheduler, clock, log),
		studyService: study.NewService(st.decks, st.cards, scheduler, clock, log,
			study.WithDefaultLimit(cfg.SRS.DefaultStudyLimit)),
		tutorService: tutor.NewService(st.conversations, st.decks, st.cards, provider, scheduler, clock, tutorCfg, log),
	}, nil
}

func newStores(driver string, db *sql.DB, log *slog.Logger) (*stores, error) {
	switch driver {
	case migrations.DriverPostgres:
		return &stores{
			users:         postgres.NewPostgresUserStore(db, log),
			decks:         postgres.NewPostgresDeckStore(db, log),
			cards:         postgres.NewPostgresCardStore(db, log),
			conversations: postgres.NewPostgresConversationStore(db, log),
		}, nil
	case migrations.DriverSQLite:
		return &stores{
			users:         sqlite.NewUserStore(db, log),
			decks:         sqlite.NewDeckStore(db, log),
			cards:         sqlite.NewCardStore(db, log),
			conversations: sqlite.NewConversationStore(db, log),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
