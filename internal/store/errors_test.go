package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHierarchy(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrUserNotFound, ErrDeckNotFound, ErrCardNotFound, ErrConversationNotFound} {
		assert.True(t, IsNotFoundError(err), err.Error())
		assert.False(t, IsDuplicateError(err), err.Error())
	}
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.False(t, errors.Is(ErrCardNotFound, ErrDeckNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("%w: driver detail", ErrDuplicate)
	err := NewStoreError("deck", "create", "insert failed", cause)

	assert.Contains(t, err.Error(), "deck create: insert failed")
	assert.ErrorIs(t, err, ErrDuplicate)

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &se))
	assert.Equal(t, "deck", se.Entity)
}
