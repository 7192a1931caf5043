package web

import (
	"net/http"
	"strconv"

	"github.com/miniapartment/e2e/internal/auth"
	"github.com/miniapartment/e2e/internal/errs"
	"github.com/miniapartment/e2e/internal/rental"
)

// =============================================================================
// Room management
// =============================================================================

type roomsData struct {
	Rooms      []rental.Room
	Pagination rental.Pagination
	Search     string
}

func (h *Handler) rooms(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	rooms, pagination, err := h.Store.ListRooms(r.Context(), params)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, "rooms.html", pageData{
		Title:  "Quản lý Căn Hộ",
		Active: "rooms",
		Data:   roomsData{Rooms: rooms, Pagination: pagination, Search: params.Search},
	})
}

func roomFromForm(r *http.Request) rental.Room {
	price, _ := strconv.ParseInt(r.PostFormValue("price"), 10, 64)
	return rental.Room{
		Name:        r.PostFormValue("name"),
		Address:     r.PostFormValue("address"),
		Description: r.PostFormValue("description"),
		Price:       price,
		Status:      r.PostFormValue("status"),
	}
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, errs.New(errs.InvalidArgument, "malformed form"))
		return
	}
	if _, err := h.Store.CreateRoom(r.Context(), roomFromForm(r)); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/room", http.StatusFound)
}

func (h *Handler) updateRoom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, errs.New(errs.InvalidArgument, "malformed form"))
		return
	}
	if _, err := h.Store.UpdateRoom(r.Context(), r.PathValue("id"), roomFromForm(r)); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/room", http.StatusFound)
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteRoom(r.Context(), r.PathValue("id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/room", http.StatusFound)
}

// =============================================================================
// Billing
// =============================================================================

type billingData struct {
	Invoices   []rental.Invoice
	Rooms      []rental.Room
	Pagination rental.Pagination
	Electric   []rental.Tier
	Water      []rental.Tier
}

func (h *Handler) billing(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	invoices, pagination, err := h.Store.ListInvoices(r.Context(), params)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	// The create form's room dropdown lists every room on one page.
	rooms, _, err := h.Store.ListRooms(r.Context(), rental.ListParams{Limit: rental.MaxPageLimit})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, "billing.html", pageData{
		Title:  "Hóa đơn",
		Active: "billing",
		Data: billingData{
			Invoices:   invoices,
			Rooms:      rooms,
			Pagination: pagination,
			Electric:   rental.ElectricityTariff,
			Water:      rental.WaterTariff,
		},
	})
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, errs.New(errs.InvalidArgument, "malformed form"))
		return
	}
	inv := rental.Invoice{
		RoomID:    r.PostFormValue("roomId"),
		MonthYear: r.PostFormValue("monthYear"),
	}
	var err error
	for _, field := range []struct {
		name string
		dst  *int64
	}{
		{"startElectric", &inv.ElectricityStart},
		{"endElectric", &inv.ElectricityEnd},
		{"startWater", &inv.WaterStart},
		{"endWater", &inv.WaterEnd},
	} {
		*field.dst, err = strconv.ParseInt(r.PostFormValue(field.name), 10, 64)
		if err != nil {
			h.renderError(w, r, errs.New(errs.InvalidArgument, field.name+" must be a number"))
			return
		}
	}
	if _, err := h.Store.CreateInvoice(r.Context(), inv); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/billing", http.StatusFound)
}

func (h *Handler) payInvoice(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Store.MarkInvoicePaid(r.Context(), r.PathValue("id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/billing", http.StatusFound)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteInvoice(r.Context(), r.PathValue("id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/billing", http.StatusFound)
}

// =============================================================================
// Assets
// =============================================================================

type assetsData struct {
	Assets     []rental.Asset
	Rooms      []rental.Room
	Pagination rental.Pagination
}

func (h *Handler) assets(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	assets, pagination, err := h.Store.ListAssets(r.Context(), params)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	rooms, _, err := h.Store.ListRooms(r.Context(), rental.ListParams{Limit: rental.MaxPageLimit})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, "assets.html", pageData{
		Title:  "Tài Sản",
		Active: "assets",
		Data:   assetsData{Assets: assets, Rooms: rooms, Pagination: pagination},
	})
}

func (h *Handler) createAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, errs.New(errs.InvalidArgument, "malformed form"))
		return
	}
	a := rental.Asset{
		Name:      r.PostFormValue("name"),
		Condition: r.PostFormValue("condition"),
		RoomID:    r.PostFormValue("roomId"),
	}
	if _, err := h.Store.CreateAsset(r.Context(), a); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/assets", http.StatusFound)
}

func (h *Handler) deleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAsset(r.Context(), r.PathValue("id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/assets", http.StatusFound)
}

// =============================================================================
// Notifications
// =============================================================================

type notificationsData struct {
	Notifications []rental.Notification
	Pagination    rental.Pagination
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	role := ""
	if id := auth.GetIdentity(r.Context()); id != nil {
		role = id.Role
	}
	items, pagination, err := h.Store.ListNotifications(r.Context(), role, params)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, "notifications.html", pageData{
		Title:  "Thông báo",
		Active: "notifications",
		Data:   notificationsData{Notifications: items, Pagination: pagination},
	})
}

func (h *Handler) createNotification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, errs.New(errs.InvalidArgument, "malformed form"))
		return
	}
	n := rental.Notification{
		Title:    r.PostFormValue("title"),
		Body:     r.PostFormValue("body"),
		Audience: r.PostFormValue("audience"),
	}
	if _, err := h.Store.CreateNotification(r.Context(), n); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusFound)
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteNotification(r.Context(), r.PathValue("id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusFound)
}
