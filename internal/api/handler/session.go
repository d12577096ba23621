package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evansarr33/sav-simulateur/internal/api/middleware"
	"github.com/evansarr33/sav-simulateur/internal/api/response"
	"github.com/evansarr33/sav-simulateur/internal/service"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type startSessionRequest struct {
	ScenarioID int64 `json:"scenario_id" validate:"required,gt=0"`
}

// Start creates a new training session for the caller
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "scenario_id must be a positive integer")
		return
	}

	session, err := h.sessionService.Start(r.Context(), userID, req.ScenarioID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{"session_id": session.ID})
}

// History returns the conversation log for a session
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
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

	messages, err := h.sessionService.History(r.Context(), sessionID, userID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{"messages": messages})
}
