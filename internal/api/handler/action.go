package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evansarr33/sav-simulateur/internal/api/middleware"
	"github.com/evansarr33/sav-simulateur/internal/api/response"
	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/evansarr33/sav-simulateur/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// sessionIDParam parses the session ID from the URL.
func sessionIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "sessionID"))
}

// ActionHandler handles remediation action submissions
type ActionHandler struct {
	actionService *service.ActionService
}

// NewActionHandler creates a new action handler
func NewActionHandler(actionService *service.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

type submitActionRequest struct {
	ActionKind    string `json:"action_kind" validate:"required"`
	AmountCents   *int64 `json:"amount_cents"`
	Justification string `json:"justification"`
}

// Submit validates and records one remediation action
func (h *ActionHandler) Submit(w http.ResponseWriter, r *http.Request) {
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

	var req submitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "action_kind is required")
		return
	}

	result, err := h.actionService.Submit(r.Context(), userID, service.SubmitActionInput{
		SessionID:     sessionID,
		Kind:          domain.ActionKind(req.ActionKind),
		AmountCents:   req.AmountCents,
		Justification: req.Justification,
	})
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, result)
}
