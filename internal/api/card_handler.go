package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
	"github.com/phrazzld/scry-decks/internal/service/study"
)

// CardHandler handles card CRUD, due-card listings and reviews.
type CardHandler struct {
	cards   service.CardService
	reviews card_review.Service
	study   study.Service
	params  *srs.Params
	logger  *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(
	cards service.CardService,
	reviews card_review.Service,
	studySvc study.Service,
	params *srs.Params,
	logger *slog.Logger,
) *CardHandler {
	if cards == nil || reviews == nil || studySvc == nil {
		panic("card handler requires card, review and study services")
	}
	if params == nil {
		params = srs.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cards:   cards,
		reviews: reviews,
		study:   studySvc,
		params:  params,
		logger:  logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /api/decks/{deckID}/cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID")
	if !ok {
		return
	}

	cards, err := h.cards.ListCards(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CardListResponse{Cards: cardsToResponse(cards, h.params)})
}

// DueCards handles GET /api/decks/{deckID}/cards/due?filter=.
func (h *CardHandler) DueCards(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID")
	if !ok {
		return
	}

	filter := srs.DueFilter(r.URL.Query().Get("filter"))
	cards, err := h.study.DueCards(r.Context(), userID, deckID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list due cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CardListResponse{Cards: cardsToResponse(cards, h.params)})
}

// CreateCard handles POST /api/decks/{deckID}/cards.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID")
	if !ok {
		return
	}
	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cards.CreateCard(r.Context(), userID, deckID, req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card, h.params))
}

// GetCard handles GET /api/cards/{cardID}.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "cardID")
	if !ok {
		return
	}

	card, err := h.cards.GetCard(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card, h.params))
}

// UpdateCard handles PUT /api/cards/{cardID}. Only front and back change;
// the schedule is left alone.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "cardID")
	if !ok {
		return
	}
	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), userID, cardID, req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card, h.params))
}

// DeleteCard handles DELETE /api/cards/{cardID}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "cardID")
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitReview handles POST /api/cards/{cardID}/review.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "cardID")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	quality, err := srs.ParseQuality(strings.Trim(string(req.Quality), `"`))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.reviews.SubmitReview(r.Context(), userID, cardID, quality)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("review submitted",
		slog.String("card_id", cardID.String()),
		slog.Int("quality", int(quality)),
		slog.Int("interval", result.Card.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, reviewToResponse(result, h.params))
}

// ReviewQueue handles GET /api/review?limit=n, sampling due cards across all
// of the user's decks.
func (h *CardHandler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be an integer")
		return
	}

	queue, err := h.study.ReviewQueue(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load review queue")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewQueueResponse{
		Cards:    cardsToResponse(queue.Cards, h.params),
		TotalDue: queue.TotalDue,
	})
}
