package gemini

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	mu        sync.Mutex
	calls     int
	responses []*genai.GenerateContentResponse
	errs      []error
	model     string
	contents  []*genai.Content
	config    *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.model, f.contents, f.config = model, contents, config
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return textResponse("fallback"), nil
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: genai.FinishReasonStop}},
	}
}

func testHistory(t *testing.T) []*domain.Message {
	t.Helper()
	conv := uuid.New()
	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	first, err := domain.NewMessage(conv, domain.RoleUser, "hola", now)
	require.NoError(t, err)
	second, err := domain.NewMessage(conv, domain.RoleAssistant, "¡Hola!", now)
	require.NoError(t, err)
	third, err := domain.NewMessage(conv, domain.RoleUser, "¿Qué significa perro?", now)
	require.NoError(t, err)
	return []*domain.Message{first, second, third}
}

func newTestProvider(t *testing.T, models contentGenerator, retries int) *Provider {
	t.Helper()
	p, err := newProvider(models, Config{
		Model:      "gemini-test",
		MaxRetries: retries,
		RetryDelay: time.Millisecond,
	}, nil)
	require.NoError(t, err)
	return p
}

func TestReply_SendsHistoryAndSystemPrompt(t *testing.T) {
	t.Parallel()
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("Perro ", "means dog.")}}
	p := newTestProvider(t, models, 0)

	reply, err := p.Reply(context.Background(), "be a tutor", testHistory(t))
	require.NoError(t, err)
	assert.Equal(t, "Perro means dog.", reply)

	assert.Equal(t, "gemini-test", models.model)
	require.Len(t, models.contents, 3)
	assert.Equal(t, "user", models.contents[0].Role)
	assert.Equal(t, "model", models.contents[1].Role)
	assert.Equal(t, "user", models.contents[2].Role)
	assert.Equal(t, "¿Qué significa perro?", models.contents[2].Parts[0].Text)
	require.NotNil(t, models.config.SystemInstruction)
	assert.Equal(t, "be a tutor", models.config.SystemInstruction.Parts[0].Text)
}

func TestReply_RetriesTransientErrors(t *testing.T) {
	t.Parallel()
	models := &fakeModels{
		errs:      []error{errors.New("503 unavailable"), errors.New("503 unavailable")},
		responses: []*genai.GenerateContentResponse{nil, nil, textResponse("ok")},
	}
	p := newTestProvider(t, models, 2)

	reply, err := p.Reply(context.Background(), "sys", testHistory(t))
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 3, models.calls)
}

func TestReply_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()
	boom := errors.New("503 unavailable")
	models := &fakeModels{errs: []error{boom, boom, boom}}
	p := newTestProvider(t, models, 1)

	_, err := p.Reply(context.Background(), "sys", testHistory(t))
	assert.ErrorIs(t, err, ErrTransientFailure)
	assert.Equal(t, 2, models.calls)
}

func TestReply_CancelledDuringBackoff(t *testing.T) {
	t.Parallel()
	models := &fakeModels{errs: []error{errors.New("unavailable")}}
	p, err := newProvider(models, Config{Model: "m", MaxRetries: 3, RetryDelay: time.Hour}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Reply(ctx, "sys", testHistory(t))
	assert.ErrorIs(t, err, ErrTransientFailure)
	assert.Equal(t, 1, models.calls)
}

func TestReply_PermanentFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want error
	}{
		{"no candidates", &genai.GenerateContentResponse{}, ErrInvalidResponse},
		{"blocked", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}, ErrContentBlocked},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, tutor.ErrEmptyReply},
		{"blank text", textResponse("  ", "\n"), tutor.ErrEmptyReply},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			models := &fakeModels{responses: []*genai.GenerateContentResponse{tc.resp}}
			p := newTestProvider(t, models, 3)
			_, err := p.Reply(context.Background(), "sys", testHistory(t))
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 1, models.calls)
		})
	}
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	t.Parallel()
	_, err := NewProvider(context.Background(), Config{Model: "m"}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = newProvider(&fakeModels{}, Config{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBackoffGrows(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, &fakeModels{}, 0)
	for attempt := range 4 {
		d := p.backoff(attempt)
		base := time.Millisecond << attempt
		assert.GreaterOrEqual(t, d, base/2)
		assert.Less(t, d, base)
	}
}
