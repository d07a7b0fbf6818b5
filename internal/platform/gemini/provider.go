package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
	"google.golang.org/genai"
)

// Config holds the provider settings.
type Config struct {
	APIKey     string
	Model      string
	MaxRetries int
	// RetryDelay is the base delay before the first retry. It doubles on
	// every further attempt.
	RetryDelay time.Duration
}

const defaultRetryDelay = 2 * time.Second

// contentGenerator is the subset of the genai models API the provider uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider answers tutor conversations with a Gemini model.
type Provider struct {
	models contentGenerator
	cfg    Config
	logger *slog.Logger
}

var _ tutor.Provider = (*Provider)(nil)

// NewProvider creates a Gemini API client for cfg.
func NewProvider(ctx context.Context, cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInvalidConfig, err)
	}
	return newProvider(client.Models, cfg, logger)
}

func newProvider(models contentGenerator, cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		models: models,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "gemini"), slog.String("model", cfg.Model)),
	}, nil
}

// Reply implements tutor.Provider.
func (p *Provider) Reply(ctx context.Context, systemPrompt string, history []*domain.Message) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)
	contents := toContents(history)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}

	for attempt := 0; ; attempt++ {
		resp, err := p.models.GenerateContent(ctx, p.cfg.Model, contents, config)
		if err == nil {
			return replyText(resp)
		}

		log.Warn("gemini call failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if attempt >= p.cfg.MaxRetries {
			return "", fmt.Errorf("%w: giving up after %d attempts: %v", ErrTransientFailure, attempt+1, err)
		}

		select {
		case <-time.After(p.backoff(attempt)):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}
}

// backoff returns base * 2^attempt scaled by a jitter factor in [0.5, 1).
func (p *Provider) backoff(attempt int) time.Duration {
	scale := math.Pow(2, float64(attempt)) * (0.5 + rand.Float64()*0.5)
	return time.Duration(float64(p.cfg.RetryDelay) * scale)
}

func toContents(history []*domain.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == domain.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}
	return contents
}

func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", tutor.ErrEmptyReply
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", tutor.ErrEmptyReply
	}
	return text, nil
}
