package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evansarr33/sav-simulateur/internal/api/middleware"
	"github.com/evansarr33/sav-simulateur/internal/api/response"
	"github.com/evansarr33/sav-simulateur/internal/service"
)

// ChatHandler handles simulated customer chat turns
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatTurnRequest struct {
	AgentMessage string `json:"agent_message" validate:"required"`
}

// Turn exchanges one agent message for a simulated customer reply
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	sessionID, err := sessionIDParam(r)
	if err != nil {
		response.BadRequest(w, "invalid session ID")
		return
	}

	var req chatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "agent_message is required")
		return
	}

	botMsg, err := h.chatService.Turn(r.Context(), sessionID, userID, req.AgentMessage)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{"bot_message": botMsg.Content})
}
