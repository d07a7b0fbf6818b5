package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// TokenPair is the result of a successful authentication.
type TokenPair struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Service registers and authenticates users.
type Service interface {
	// Register creates a user. Returns store.ErrEmailExists for a taken email
	// and a domain validation error for a bad email or password.
	Register(ctx context.Context, email, password string) (*TokenPair, error)
	// Login returns ErrInvalidCredentials for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh exchanges a valid refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type serviceImpl struct {
	users  store.UserStore
	tokens JWTService
	hasher PasswordHasher
	clock  srs.Clock
	logger *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates an authentication service.
func NewService(users store.UserStore, tokens JWTService, hasher PasswordHasher, clock srs.Clock, logger *slog.Logger) Service {
	if users == nil || tokens == nil || hasher == nil {
		panic("auth service requires user store, token service and hasher")
	}
	if clock == nil {
		clock = srs.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &serviceImpl{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		clock:  clock,
		logger: logger.With(slog.String("component", "auth_service")),
	}
}

// Register implements Service.
func (s *serviceImpl) Register(ctx context.Context, email, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password, s.clock.Now())
	if err != nil {
		return nil, err
	}
	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, store.ErrEmailExists) {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("registered user", slog.String("user_id", user.ID.String()))
	return s.issue(ctx, user)
}

// Login implements Service.
func (s *serviceImpl) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// Refresh implements Service.
func (s *serviceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *serviceImpl) issue(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    s.tokens.AccessTokenExpiry(),
	}, nil
}
