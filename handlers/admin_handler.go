package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arrivaldo/code-challenge-backend/service"
)

type AdminHandler struct {
	Service *service.AccountService
}

// ListUsers handler
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: users})
}

// UpdateStatus handles PUT /api/admin/users/{id}/status. The body may
// carry {"isActive": bool}; with no body the flag is inverted.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	user, err := h.Service.SetUserActive(r.Context(), id, req.IsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User status updated successfully",
		Data:    user,
	})
}

// Delete handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}
