package api

import (
	"net/http"

	"github.com/miniapartment/e2e/internal/auth"
	"github.com/miniapartment/e2e/internal/rental"
)

type notificationRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body"`
	Audience string `json:"audience" validate:"omitempty,oneof=ALL LANDLORD RENTER"`
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id := auth.GetIdentity(r.Context())
	items, pagination, err := h.Store.ListNotifications(r.Context(), id.Role, params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeList(w, items, pagination)
}

func (h *Handler) createNotification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	n, err := h.Store.CreateNotification(r.Context(), rental.Notification{
		Title:    req.Title,
		Body:     req.Body,
		Audience: req.Audience,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteNotification(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
