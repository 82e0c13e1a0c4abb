package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"studiosite/internal/mailer"
	"studiosite/internal/repository"
	"studiosite/internal/service"
	"studiosite/internal/storage"
)

// Response is the envelope of every API response.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, Response{Success: false, Message: message})
}

func writeErrorDetails(w http.ResponseWriter, message string, statusCode int, details interface{}) {
	WriteJSON(w, statusCode, Response{Success: false, Message: message, Details: details})
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

type errorMapping struct {
	err     error
	status  int
	message string
}

// checked in order, service sentinels before the repository ones they may wrap
var errorMappings = []errorMapping{
	{service.ErrUserExists, http.StatusConflict, "User with this email or username already exists"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{service.ErrInvalidRefreshToken, http.StatusUnauthorized, "Refresh token expired or invalid"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrIncorrectPassword, http.StatusBadRequest, "Current password is incorrect"},
	{service.ErrStorageUnavailable, http.StatusServiceUnavailable, "File storage is not available"},
	{storage.ErrUnsupportedType, http.StatusBadRequest, "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP"},
	{storage.ErrEmptyFile, http.StatusBadRequest, "File is empty"},
	{service.ErrPostNotFound, http.StatusNotFound, "Post not found"},
	{service.ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
	{service.ErrInvalidTag, http.StatusBadRequest, "Invalid foreign key reference"},
	{service.ErrTagExists, http.StatusConflict, "Tag already exists"},
	{service.ErrLikeConflict, http.StatusConflict, "Like was changed by another request, please retry"},
	{service.ErrReviewNotFound, http.StatusNotFound, "Review not found"},
	{service.ErrReviewExists, http.StatusConflict, "You have already submitted a review"},
	{service.ErrReviewApproved, http.StatusBadRequest, "Cannot edit an approved review"},
	{service.ErrForbidden, http.StatusForbidden, "Access denied"},
	{repository.ErrConflict, http.StatusConflict, "Resource already exists"},
	{repository.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{repository.ErrInvalidReference, http.StatusBadRequest, "Invalid foreign key reference"},
	{repository.ErrInvalidInput, http.StatusBadRequest, "Invalid ID format"},
}

// writeServiceError maps err to a response. forbidden overrides the message for ErrForbidden.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error, forbidden string) {
	if forbidden != "" && errors.Is(err, service.ErrForbidden) {
		WriteError(w, forbidden, http.StatusForbidden)
		return
	}

	var deliveryErr *mailer.DeliveryError
	if errors.As(err, &deliveryErr) {
		log.Printf("email delivery failed: %v", err)
		writeErrorDetails(w, "Failed to send email", http.StatusBadGateway, deliveryErr.Body)
		return
	}
	if errors.Is(err, mailer.ErrDelivery) {
		log.Printf("email delivery failed: %v", err)
		WriteError(w, "Failed to send email", http.StatusBadGateway)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			WriteError(w, m.message, m.status)
			return
		}
	}

	log.Printf("internal error: %v", err)
	if h.Cfg.IsDevelopment() {
		writeErrorDetails(w, "Internal Server Error", http.StatusInternalServerError, err.Error())
		return
	}
	WriteError(w, "Internal Server Error", http.StatusInternalServerError)
}

func (h *Handlers) writeValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		WriteError(w, "Validation Error", http.StatusBadRequest)
		return
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}

	writeErrorDetails(w, "Validation Error", http.StatusBadRequest, details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "hexcolor":
		return "must be a hex color"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
