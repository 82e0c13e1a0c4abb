package handlers

import (
	"net/http"
	"strings"
)

type CreateTagRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

func (h *Handlers) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.ListTags(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"tags": tags})
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := h.TagService.CreateTag(r.Context(), strings.TrimSpace(req.Name), req.Color)
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusCreated, "Tag created successfully", map[string]interface{}{"tag": tag})
}
