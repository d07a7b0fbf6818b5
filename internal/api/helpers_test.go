package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

// newRequest builds a request as the router would hand it to a handler:
// chi URL params set and, unless userID is uuid.Nil, authenticated.
func newRequest(t *testing.T, method, target string, body any, userID uuid.UUID, params map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, target, reader)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if userID != uuid.Nil {
		ctx = shared.WithUserID(ctx, userID)
	}
	return r.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, w).Error
}

func testDeck(t *testing.T, owner uuid.UUID) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(owner, "Spanish", testNow)
	require.NoError(t, err)
	return deck
}

func testCard(t *testing.T, deckID uuid.UUID) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, "perro", "dog", testNow)
	require.NoError(t, err)
	return card
}
