package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"studiosite/internal/models"
	"studiosite/internal/repository"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"required,min=10,max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Content *string `json:"content" validate:"omitempty,min=10,max=1000"`
}

type ApproveReviewRequest struct {
	IsApproved *bool `json:"isApproved"`
}

type ReviewsResponse struct {
	Reviews    []models.Review `json:"reviews"`
	Pagination Pagination      `json:"pagination"`
}

// GetReviews lists approved reviews for the public site.
func (h *Handlers) GetReviews(w http.ResponseWriter, r *http.Request) {
	approved := true
	h.listReviews(w, r, &approved)
}

func (h *Handlers) GetAdminReviews(w http.ResponseWriter, r *http.Request) {
	var approved *bool
	switch r.URL.Query().Get("status") {
	case "", "all":
	case "pending":
		approved = new(bool)
	case "approved":
		approved = new(bool)
		*approved = true
	default:
		writeErrorDetails(w, "Validation Error", http.StatusBadRequest, []FieldError{
			{Field: "status", Message: "must be one of: pending approved all"},
		})
		return
	}

	h.listReviews(w, r, approved)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request, approved *bool) {
	page, limit, offset := parsePagination(r)

	reviews, total, err := h.ReviewService.ListReviews(r.Context(), repository.ReviewFilter{
		Approved: approved,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "", ReviewsResponse{Reviews: reviews, Pagination: newPagination(page, limit, total)})
}

func (h *Handlers) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	reviews, err := h.ReviewService.MyReviews(r.Context(), identity.UserID)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"reviews": reviews})
}

func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.ReviewService.CreateReview(r.Context(), identity.UserID, req.Rating, req.Content)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusCreated, "Review submitted successfully and pending approval", map[string]interface{}{"review": review})
}

func (h *Handlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.ReviewService.UpdateReview(r.Context(), identity, repository.UpdateReviewRequest{
		ReviewID: mux.Vars(r)["id"],
		Rating:   req.Rating,
		Content:  req.Content,
	})
	if err != nil {
		h.writeServiceError(w, err, "You can only edit your own review")
		return
	}

	writeSuccess(w, http.StatusOK, "Review updated successfully", map[string]interface{}{"review": review})
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.ReviewService.DeleteReview(r.Context(), identity, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err, "You can only delete your own review")
		return
	}

	writeSuccess(w, http.StatusOK, "Review deleted successfully", nil)
}

func (h *Handlers) ApproveReview(w http.ResponseWriter, r *http.Request) {
	var req ApproveReviewRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := decodeBody(r, &req); err != nil || req.IsApproved == nil {
		WriteError(w, "isApproved must be a boolean", http.StatusBadRequest)
		return
	}

	review, err := h.ReviewService.SetApproval(r.Context(), mux.Vars(r)["id"], *req.IsApproved)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	message := "Review rejected successfully"
	if review.IsApproved {
		message = "Review approved successfully"
	}
	writeSuccess(w, http.StatusOK, message, map[string]interface{}{"review": review})
}
