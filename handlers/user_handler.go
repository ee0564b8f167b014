package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arrivaldo/code-challenge-backend/models"
	"github.com/arrivaldo/code-challenge-backend/service"
)

type UserHandler struct {
	Service *service.AccountService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Balance  string `json:"balance"`
	Picture  string `json:"picture"`
	Age      int    `json:"age"`
	EyeColor string `json:"eyeColor"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsActive *bool  `json:"isActive"`
}

// Register handler
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	user, err := h.Service.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Balance:  req.Balance,
		Picture:  req.Picture,
		Age:      req.Age,
		EyeColor: req.EyeColor,
		Company:  req.Company,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login handler
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	res, err := h.Service.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	data := map[string]interface{}{"isAdmin": res.IsAdmin}
	if res.IsAdmin {
		data["user"] = res.Admin
	} else {
		data["user"] = res.User
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data:    data,
	})
}

type profileUpdateRequest struct {
	Email      string           `json:"email"`
	Balance    *string          `json:"balance"`
	Picture    *string          `json:"picture"`
	PictureKey *string          `json:"pictureKey"`
	Age        *int             `json:"age"`
	EyeColor   *string          `json:"eyeColor"`
	Name       *models.UserName `json:"name"`
	Company    *string          `json:"company"`
	Phone      *string          `json:"phone"`
	Address    *string          `json:"address"`
	IsActive   *bool            `json:"isActive"`
}

// Profile serves GET (lookup by email query) and PUT (partial update).
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		user, err := h.Service.GetProfile(r.Context(), r.URL.Query().Get("email"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: user})

	case http.MethodPut:
		var req profileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ApiResponse{
				Success: false,
				Message: "Invalid request payload: " + err.Error(),
			})
			return
		}

		user, err := h.Service.UpdateProfile(r.Context(), req.Email, service.ProfileUpdate{
			Balance:    req.Balance,
			Picture:    req.Picture,
			PictureKey: req.PictureKey,
			Age:        req.Age,
			EyeColor:   req.EyeColor,
			Name:       req.Name,
			Company:    req.Company,
			Phone:      req.Phone,
			Address:    req.Address,
			IsActive:   req.IsActive,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ApiResponse{
			Success: true,
			Message: "Profile updated successfully",
			Data:    user,
		})

	default:
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
	}
}
