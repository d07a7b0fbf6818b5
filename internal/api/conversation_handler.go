package api

import (
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/service/tutor"
)

// ConversationHandler exposes the AI tutor.
type ConversationHandler struct {
	tutor tutor.Service
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(tutorSvc tutor.Service) *ConversationHandler {
	if tutorSvc == nil {
		panic("tutor service cannot be nil")
	}
	return &ConversationHandler{tutor: tutorSvc}
}

// ListConversations handles GET /api/conversations.
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	convs, err := h.tutor.ListConversations(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list conversations")
		return
	}
	resp := ConversationListResponse{Conversations: make([]ConversationResponse, 0, len(convs))}
	for _, c := range convs {
		resp.Conversations = append(resp.Conversations, conversationToResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateConversation handles POST /api/conversations.
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req ConversationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	conv, err := h.tutor.CreateConversation(r.Context(), userID, req.DeckID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create conversation")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, conversationToResponse(conv))
}

// GetConversation handles GET /api/conversations/{conversationID}.
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, convID, ok := handleUserIDAndPathUUID(w, r, "conversationID")
	if !ok {
		return
	}

	thread, err := h.tutor.GetConversation(r.Context(), userID, convID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get conversation")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, threadToResponse(thread))
}

// DeleteConversation handles DELETE /api/conversations/{conversationID}.
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, convID, ok := handleUserIDAndPathUUID(w, r, "conversationID")
	if !ok {
		return
	}

	if err := h.tutor.DeleteConversation(r.Context(), userID, convID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage handles POST /api/conversations/{conversationID}/messages.
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, convID, ok := handleUserIDAndPathUUID(w, r, "conversationID")
	if !ok {
		return
	}
	var req MessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	exchange, err := h.tutor.SendMessage(r.Context(), userID, convID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to send message")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ExchangeResponse{
		UserMessage:      messageToResponse(exchange.UserMessage),
		AssistantMessage: messageToResponse(exchange.AssistantMessage),
	})
}
