package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"studiosite/internal/session"
)

const maxJSONBody = 10 << 20

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	// keeps (page-1)*limit well inside int range
	maxPage = 1_000_000
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func newPagination(page, limit, total int) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}
}

// parsePagination reads page and limit from the query, falling back to defaults on junk input.
func parsePagination(r *http.Request) (page, limit, offset int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	if page > maxPage {
		page = maxPage
	}
	limit, err = strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}

// decodeAndValidate writes the 400 response itself and reports whether the handler may continue.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := decodeBody(r, dst); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	if err := h.Validate.Struct(dst); err != nil {
		h.writeValidationError(w, err)
		return false
	}
	return true
}

func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, "Access token required", http.StatusUnauthorized)
	}
	return identity, ok
}
