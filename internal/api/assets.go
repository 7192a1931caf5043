package api

import (
	"net/http"

	"github.com/miniapartment/e2e/internal/rental"
)

type assetRequest struct {
	Name      string `json:"name" validate:"required"`
	Condition string `json:"condition"`
	RoomID    string `json:"roomId"`
}

func (req assetRequest) toAsset() rental.Asset {
	return rental.Asset{
		Name:      req.Name,
		Condition: req.Condition,
		RoomID:    req.RoomID,
	}
}

func (h *Handler) listAssets(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	assets, pagination, err := h.Store.ListAssets(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeList(w, assets, pagination)
}

func (h *Handler) getAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Store.GetAsset(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *Handler) createAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	asset, err := h.Store.CreateAsset(r.Context(), req.toAsset())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (h *Handler) updateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	asset, err := h.Store.UpdateAsset(r.Context(), r.PathValue("id"), req.toAsset())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *Handler) deleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAsset(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
