package handler

import (
	"net/http"

	"github.com/evansarr33/sav-simulateur/internal/api/middleware"
	"github.com/evansarr33/sav-simulateur/internal/api/response"
	"github.com/evansarr33/sav-simulateur/internal/service"
)

// AdminHandler handles trainer dashboard endpoints
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Summary returns aggregate KPIs and recent sessions (trainer role only)
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	summary, err := h.adminService.Summary(r.Context(), userID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, summary)
}
