package handler

import (
	"net/http"

	"github.com/evansarr33/sav-simulateur/internal/api/middleware"
	"github.com/evansarr33/sav-simulateur/internal/api/response"
	"github.com/evansarr33/sav-simulateur/internal/service"
)

// ScoreHandler handles session scoring and closure
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// ScoreAndClose computes the session score and closes the session
func (h *ScoreHandler) ScoreAndClose(w http.ResponseWriter, r *http.Request) {
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

	score, err := h.scoreService.ScoreAndClose(r.Context(), sessionID, userID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"total":     score.Total,
		"breakdown": score.Breakdown,
	})
}
