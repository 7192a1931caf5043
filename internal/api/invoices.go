package api

import (
	"net/http"

	"github.com/miniapartment/e2e/internal/rental"
)

// invoiceRequest carries meter readings only. Charges and totals are always
// computed server-side from the tariff tables.
type invoiceRequest struct {
	RoomID           string `json:"roomId" validate:"required"`
	MonthYear        string `json:"monthYear" validate:"required"`
	ElectricityStart int64  `json:"electricityStart" validate:"gte=0"`
	ElectricityEnd   int64  `json:"electricityEnd" validate:"gte=0"`
	WaterStart       int64  `json:"waterStart" validate:"gte=0"`
	WaterEnd         int64  `json:"waterEnd" validate:"gte=0"`
}

func (req invoiceRequest) toInvoice() rental.Invoice {
	return rental.Invoice{
		RoomID:           req.RoomID,
		MonthYear:        req.MonthYear,
		ElectricityStart: req.ElectricityStart,
		ElectricityEnd:   req.ElectricityEnd,
		WaterStart:       req.WaterStart,
		WaterEnd:         req.WaterEnd,
	}
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	invoices, pagination, err := h.Store.ListInvoices(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeList(w, invoices, pagination)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Store.GetInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	inv, err := h.Store.CreateInvoice(r.Context(), req.toInvoice())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.Log.Info().Str("invoice", inv.ID).Str("room", inv.RoomID).Int64("total", inv.Total).Msg("invoice created")
	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	inv, err := h.Store.UpdateInvoice(r.Context(), r.PathValue("id"), req.toInvoice())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteInvoice(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) payInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Store.MarkInvoicePaid(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
