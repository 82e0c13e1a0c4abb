package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"studiosite/internal/repository"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
	Avatar    *string `json:"avatar" validate:"omitempty,url,max=500"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

const multipartOverhead = 1 << 20

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"user": user})
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), repository.UpdateProfileRequest{
		UserID:    identity.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "Profile updated successfully", map[string]interface{}{"user": user})
}

func (h *Handlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	maxSize := h.Cfg.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, fileTooLarge(maxSize), http.StatusRequestEntityTooLarge)
			return
		}
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// read at most maxSize+1 bytes
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		WriteError(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > maxSize {
		WriteError(w, fileTooLarge(maxSize), http.StatusRequestEntityTooLarge)
		return
	}

	user, err := h.UserService.UpdateAvatar(r.Context(), identity.UserID, data)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "Avatar updated successfully", map[string]interface{}{"user": user})
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "Password changed successfully", nil)
}

func fileTooLarge(maxSize int64) string {
	return fmt.Sprintf("File too large, maximum size is %d bytes", maxSize)
}
