package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"studiosite/internal/models"
	"studiosite/internal/repository"
	"studiosite/internal/session"
)

type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=200"`
	Content   string   `json:"content" validate:"required,min=1"`
	Published bool     `json:"published"`
	TagIDs    []string `json:"tagIds" validate:"omitempty,dive,required"`
}

type UpdatePostRequest struct {
	Title     *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string   `json:"content" validate:"omitempty,min=1"`
	Published *bool     `json:"published"`
	TagIDs    *[]string `json:"tagIds" validate:"omitempty,dive,required"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type PostsResponse struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	posts, total, err := h.PostService.ListPosts(r.Context(), repository.PostFilter{
		PublishedOnly: true,
		Search:        strings.TrimSpace(r.URL.Query().Get("search")),
		TagID:         r.URL.Query().Get("tagId"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "", PostsResponse{Posts: posts, Pagination: newPagination(page, limit, total)})
}

// GetMyPosts lists the caller's posts including drafts.
func (h *Handlers) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	page, limit, offset := parsePagination(r)

	posts, total, err := h.PostService.ListPosts(r.Context(), repository.PostFilter{
		AuthorID: identity.UserID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "", PostsResponse{Posts: posts, Pagination: newPagination(page, limit, total)})
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	// anonymous viewers only see published posts
	identity, _ := session.FromContext(r.Context())

	post, err := h.PostService.GetPost(r.Context(), postID, identity.UserID)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"post": post})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), repository.CreatePostRequest{
		AuthorID:  identity.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusCreated, "Post created successfully", map[string]interface{}{"post": post})
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), identity, repository.UpdatePostRequest{
		PostID:    mux.Vars(r)["id"],
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		h.writeServiceError(w, err, "You can only edit your own posts")
		return
	}

	writeSuccess(w, http.StatusOK, "Post updated successfully", map[string]interface{}{"post": post})
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), identity, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err, "You can only delete your own posts")
		return
	}

	writeSuccess(w, http.StatusOK, "Post deleted successfully", nil)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	liked, err := h.PostService.ToggleLike(r.Context(), mux.Vars(r)["id"], identity.UserID)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	writeSuccess(w, http.StatusOK, message, map[string]interface{}{"liked": liked})
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.PostService.AddComment(r.Context(), mux.Vars(r)["id"], identity.UserID, req.Content)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusCreated, "Comment added successfully", map[string]interface{}{"comment": comment})
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	if err := h.PostService.DeleteComment(r.Context(), identity, vars["id"], vars["commentId"]); err != nil {
		h.writeServiceError(w, err, "You can only delete your own comments")
		return
	}

	writeSuccess(w, http.StatusOK, "Comment deleted successfully", nil)
}
