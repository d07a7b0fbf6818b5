package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/study"
)

// DeckHandler handles deck CRUD, deck statistics and study sessions.
type DeckHandler struct {
	decks  service.DeckService
	study  study.Service
	params *srs.Params
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler. params drive the status and
// mastery fields of returned cards.
func NewDeckHandler(decks service.DeckService, studySvc study.Service, params *srs.Params, logger *slog.Logger) *DeckHandler {
	if decks == nil || studySvc == nil {
		panic("deck handler requires deck and study services")
	}
	if params == nil {
		params = srs.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		decks:  decks,
		study:  studySvc,
		params: params,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /api/decks.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	overviews, err := h.study.DeckOverviews(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}

	resp := DeckListResponse{Decks: make([]DeckResponse, 0, len(overviews))}
	for _, o := range overviews {
		resp.Decks = append(resp.Decks, overviewToResponse(o))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateDeck handles POST /api/decks.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req DeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.decks.CreateDeck(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("deck created",
		slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]DeckResponse{"deck": deckToResponse(deck)})
}

// GetDeck handles GET /api/decks/{deckID}, returning the deck with its
// statistics and cards.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID")
	if !ok {
		return
	}

	detail, err := h.study.DeckDetail(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}

	resp := DeckDetailResponse{
		DeckResponse: overviewToResponse(&detail.DeckOverview),
		Cards:        cardsToResponse(detail.Cards, h.params),
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]DeckDetailResponse{"deck": resp})
}

// RenameDeck handles PUT /api/decks/{deckID}.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID")
	if !ok {
		return
	}
	var req DeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.decks.RenameDeck(r.Context(), userID, deckID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]DeckResponse{"deck": deckToResponse(deck)})
}

// DeleteDeck handles DELETE /api/decks/{deckID}. The deck's cards go with it.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID")
	if !ok {
		return
	}

	if err := h.decks.DeleteDeck(r.Context(), userID, deckID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Study handles GET /api/decks/{deckID}/study?limit=n.
func (h *DeckHandler) Study(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID")
	if !ok {
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be an integer")
		return
	}

	session, err := h.study.StudySession(r.Context(), userID, deckID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start study session")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("study session started",
		slog.String("deck_id", deckID.String()),
		slog.Int("cards", len(session.Cards)),
		slog.Int("cards_due", session.TotalDue))
	shared.RespondWithJSON(w, r, http.StatusOK, StudySessionResponse{
		Deck:     deckToResponse(session.Deck),
		CardsDue: session.TotalDue,
		Cards:    cardsToResponse(session.Cards, h.params),
	})
}
