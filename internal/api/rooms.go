package api

import (
	"net/http"

	"github.com/miniapartment/e2e/internal/rental"
)

type roomRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	Status      string `json:"status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}

func (req roomRequest) toRoom() rental.Room {
	return rental.Room{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
	}
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rooms, pagination, err := h.Store.ListRooms(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeList(w, rooms, pagination)
}

func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Store.GetRoom(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.Store.CreateRoom(r.Context(), req.toRoom())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.Log.Info().Str("room", room.ID).Str("name", room.Name).Msg("room created")
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handler) updateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.Store.UpdateRoom(r.Context(), r.PathValue("id"), req.toRoom())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteRoom(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
