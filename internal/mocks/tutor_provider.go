package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
)

// MockTutorProvider implements tutor.Provider for testing.
type MockTutorProvider struct {
	ReplyFn func(ctx context.Context, systemPrompt string, history []*domain.Message) (string, error)

	mu           sync.Mutex
	LastPrompt   string
	LastHistory  []*domain.Message
	ReplyCalls   int
	DefaultReply string
}

var _ tutor.Provider = (*MockTutorProvider)(nil)

// Reply implements tutor.Provider, recording its arguments.
func (m *MockTutorProvider) Reply(ctx context.Context, systemPrompt string, history []*domain.Message) (string, error) {
	m.mu.Lock()
	m.LastPrompt = systemPrompt
	m.LastHistory = history
	m.ReplyCalls++
	m.mu.Unlock()

	if m.ReplyFn != nil {
		return m.ReplyFn(ctx, systemPrompt, history)
	}
	if m.DefaultReply != "" {
		return m.DefaultReply, nil
	}
	return "Ciao! Let's practice.", nil
}
