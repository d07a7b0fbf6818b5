// Package tutor runs AI tutor conversations. A conversation can be bound to
// a deck, in which case the tutor is told which cards the learner is
// studying and which of them are due.
package tutor

import (
	"context"
	"errors"

	"github.com/phrazzld/scry-decks/internal/domain"
)

var (
	// ErrTutorDisabled is returned when no provider is configured.
	ErrTutorDisabled = errors.New("tutor is not enabled")

	// ErrProviderFailure wraps any error from the language model provider.
	ErrProviderFailure = errors.New("tutor provider failed")

	// ErrEmptyReply is returned by providers that produced no text.
	ErrEmptyReply = errors.New("tutor provider returned an empty reply")
)

// Provider produces the assistant's next message.
type Provider interface {
	// Reply answers the conversation history, oldest message first, under
	// the given system prompt.
	Reply(ctx context.Context, systemPrompt string, history []*domain.Message) (string, error)
}
