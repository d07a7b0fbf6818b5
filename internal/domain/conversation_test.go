package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversation(t *testing.T) {
	t.Parallel()

	conv, err := NewConversation(uuid.New(), nil, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "New conversation", conv.Title)
	assert.Nil(t, conv.DeckID)

	_, err = NewConversation(uuid.Nil, nil, "x", time.Now())
	assert.ErrorIs(t, err, ErrConversationUserIDEmpty)
}

func TestNewMessage(t *testing.T) {
	t.Parallel()

	convID := uuid.New()
	msg, err := NewMessage(convID, RoleUser, " hola ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "hola", msg.Content)

	_, err = NewMessage(convID, Role("system"), "x", time.Now())
	assert.ErrorIs(t, err, ErrMessageRoleInvalid)

	_, err = NewMessage(convID, RoleAssistant, "   ", time.Now())
	assert.ErrorIs(t, err, ErrMessageContentEmpty)
}
