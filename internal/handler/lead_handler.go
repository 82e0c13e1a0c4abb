package handlers

import (
	"net/http"

	"studiosite/internal/models"
)

func (h *Handlers) SendLead(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	if !h.decodeAndValidate(w, r, &lead) {
		return
	}

	if err := h.NotificationService.SendLead(r.Context(), lead); err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "Lead email sent successfully", nil)
}

func (h *Handlers) SendContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if !h.decodeAndValidate(w, r, &msg) {
		return
	}

	if err := h.NotificationService.SendContact(r.Context(), msg); err != nil {
		h.writeServiceError(w, err, "")
		return
	}

	writeSuccess(w, http.StatusOK, "Contact email sent successfully", nil)
}
