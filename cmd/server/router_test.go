package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-decks/internal/api"
	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/mocks"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
	"github.com/phrazzld/scry-decks/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "error",
			LogFormat:              "text",
			ReadTimeoutSeconds:     5,
			WriteTimeoutSeconds:    5,
			ShutdownTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{
			Driver:                 migrations.DriverSQLite,
			URL:                    ":memory:",
			MaxOpenConns:           1,
			ConnMaxLifetimeMinutes: 5,
		},
		Auth: config.AuthConfig{
			JWTSecret:                   "router-test-secret-that-is-long-enough",
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 1440,
			BCryptCost:                  4,
		},
		SRS: config.SRSConfig{
			Timezone:              "UTC",
			DefaultStudyLimit:     20,
			MaturityThresholdDays: 21,
		},
		Tutor: config.TutorConfig{MaxHistory: 20, MaxDeckCards: 100},
	}
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T, provider tutor.Provider) *testServer {
	t.Helper()

	db := testdb.OpenSQLite(t)
	log := logger.New(io.Discard, slog.LevelError, "text")
	app, err := buildApplication(testConfig(), db, provider, srs.SystemClock{}, log)
	require.NoError(t, err)
	return &testServer{t: t, handler: app.setupRouter()}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) register(email string) api.AuthResponse {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "correct-horse-battery",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[api.AuthResponse](s.t, rec)
	s.token = resp.Token
	return resp
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/decks", "/api/review", "/api/conversations"} {
		rec := s.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestStudyAndReviewFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.register("learner@example.com")

	rec := s.do(http.MethodPost, "/api/decks", map[string]string{"name": "  Italian  "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	deck := decode[map[string]api.DeckResponse](t, rec)["deck"]
	assert.Equal(t, "Italian", deck.Name)

	rec = s.do(http.MethodPost, "/api/decks/"+deck.ID.String()+"/cards",
		map[string]string{"front": "cane", "back": "dog"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	card := decode[api.CardResponse](t, rec)
	assert.Equal(t, 2.5, card.EaseFactor)
	assert.Equal(t, 0, card.Interval)

	rec = s.do(http.MethodGet, "/api/decks/"+deck.ID.String()+"/study", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	session := decode[api.StudySessionResponse](t, rec)
	assert.Equal(t, 1, session.CardsDue)
	require.Len(t, session.Cards, 1)
	assert.Equal(t, card.ID, session.Cards[0].ID)

	rec = s.do(http.MethodPost, "/api/cards/"+card.ID.String()+"/review", map[string]any{"quality": 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	review := decode[api.ReviewResponse](t, rec)
	assert.Equal(t, 1, review.Interval)
	assert.Equal(t, 1, review.ReviewCount)
	assert.InDelta(t, 2.5, review.EaseFactor, 1e-9)

	rec = s.do(http.MethodGet, "/api/decks/"+deck.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	detail := decode[map[string]api.DeckDetailResponse](t, rec)["deck"]
	require.NotNil(t, detail.Stats)
	assert.Equal(t, 1, detail.Stats.TotalCards)
	assert.Equal(t, 0, detail.Stats.DueCards)
	require.Len(t, detail.Cards, 1)

	rec = s.do(http.MethodGet, "/api/review", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0, decode[api.ReviewQueueResponse](t, rec).TotalDue)
}

func TestReviewRejectsInvalidQuality(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.register("quality@example.com")

	rec := s.do(http.MethodPost, "/api/decks", map[string]string{"name": "Spanish"})
	deck := decode[map[string]api.DeckResponse](t, rec)["deck"]
	rec = s.do(http.MethodPost, "/api/decks/"+deck.ID.String()+"/cards",
		map[string]string{"front": "perro", "back": "dog"})
	card := decode[api.CardResponse](t, rec)

	for _, quality := range []any{6, -1, 4.5, "four"} {
		rec = s.do(http.MethodPost, "/api/cards/"+card.ID.String()+"/review", map[string]any{"quality": quality})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "quality %v", quality)
	}

	rec = s.do(http.MethodGet, "/api/cards/"+card.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[api.CardResponse](t, rec).ReviewCount)
}

func TestDecksAreScopedToOwner(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.register("owner@example.com")

	rec := s.do(http.MethodPost, "/api/decks", map[string]string{"name": "Private"})
	deck := decode[map[string]api.DeckResponse](t, rec)["deck"]

	s.register("intruder@example.com")
	rec = s.do(http.MethodGet, "/api/decks/"+deck.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/decks/"+deck.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteDeckCascadesCards(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.register("cascade@example.com")

	rec := s.do(http.MethodPost, "/api/decks", map[string]string{"name": "Temp"})
	deck := decode[map[string]api.DeckResponse](t, rec)["deck"]
	rec = s.do(http.MethodPost, "/api/decks/"+deck.ID.String()+"/cards",
		map[string]string{"front": "a", "back": "b"})
	card := decode[api.CardResponse](t, rec)

	rec = s.do(http.MethodDelete, "/api/decks/"+deck.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/cards/"+card.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTutorConversation(t *testing.T) {
	t.Parallel()
	provider := &mocks.MockTutorProvider{}
	s := newTestServer(t, provider)
	s.register("tutee@example.com")

	rec := s.do(http.MethodPost, "/api/conversations", map[string]string{"title": "Practice"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	conv := decode[api.ConversationResponse](t, rec)

	rec = s.do(http.MethodPost, "/api/conversations/"+conv.ID.String()+"/messages",
		map[string]string{"content": "Ciao"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exchange := decode[api.ExchangeResponse](t, rec)
	assert.Equal(t, "Ciao", exchange.UserMessage.Content)
	assert.Equal(t, "Ciao! Let's practice.", exchange.AssistantMessage.Content)

	rec = s.do(http.MethodGet, "/api/conversations/"+conv.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[api.ThreadResponse](t, rec).Messages, 2)
}

func TestTutorDisabled(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.register("offline@example.com")

	rec := s.do(http.MethodPost, "/api/conversations", map[string]string{"title": "Practice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	conv := decode[api.ConversationResponse](t, rec)

	rec = s.do(http.MethodPost, "/api/conversations/"+conv.ID.String()+"/messages",
		map[string]string{"content": "Ciao"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
