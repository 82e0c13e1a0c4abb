package handlers

import (
	"net/http"

	"studiosite/internal/models"
	"studiosite/internal/repository"
)

type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Username  string  `json:"username" validate:"required,min=3,max=20"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully", AuthResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", AuthResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	// rotates the refresh token
	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "Token refreshed successfully", AuthResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}
