package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = validationError("user ID cannot be empty")
	ErrEmptyEmail          = validationError("email cannot be empty")
	ErrInvalidEmail        = validationError("invalid email format")
	ErrPasswordTooShort    = validationError("password must be at least 12 characters long")
	ErrPasswordTooLong     = validationError("password must be at most 72 characters long")
	ErrEmptyPassword       = validationError("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 12
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
)

var emailValidator = validator.New()

// User is a registered account. Decks and conversations are scoped to it.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, only set during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a user with a plaintext password. The caller hashes the
// password before the user is stored.
func NewUser(email, password string, now time.Time) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data. A user needs either a
// plaintext password of acceptable length or a stored hash.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if err := emailValidator.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	if u.Password == "" {
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
		return nil
	}

	switch n := len(u.Password); {
	case n < MinPasswordLength:
		return ErrPasswordTooShort
	case n > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
