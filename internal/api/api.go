// Package api exposes the reference server's JSON REST surface under /api.
// Every list endpoint returns {"data": [...], "pagination": {...}}; every
// error returns {"error": "..."} with a status mapped from the error code.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/miniapartment/e2e/internal/auth"
	"github.com/miniapartment/e2e/internal/errs"
	"github.com/miniapartment/e2e/internal/rental"
)

// Handler carries the services the REST endpoints need.
type Handler struct {
	Store        *rental.Store
	Users        *auth.UserService
	Tokens       *auth.TokenService
	LoginLimiter *auth.LoginLimiter
	Log          zerolog.Logger

	validate *validator.Validate
}

// NewHandler creates the REST handler.
func NewHandler(store *rental.Store, users *auth.UserService, tokens *auth.TokenService, limiter *auth.LoginLimiter, log zerolog.Logger) *Handler {
	return &Handler{
		Store:        store,
		Users:        users,
		Tokens:       tokens,
		LoginLimiter: limiter,
		Log:          log,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the REST API on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /actuator/health", h.actuatorHealth)
	mux.HandleFunc("POST /api/auth/login", h.login)

	landlord := func(fn http.HandlerFunc) http.Handler {
		return mw.RequireToken(mw.RequireRole(rental.RoleLandlord, fn))
	}
	authed := func(fn http.HandlerFunc) http.Handler {
		return mw.RequireToken(fn)
	}

	mux.Handle("GET /api/rooms", authed(h.listRooms))
	mux.Handle("GET /api/rooms/{id}", authed(h.getRoom))
	mux.Handle("POST /api/rooms", landlord(h.createRoom))
	mux.Handle("PUT /api/rooms/{id}", landlord(h.updateRoom))
	mux.Handle("DELETE /api/rooms/{id}", landlord(h.deleteRoom))

	mux.Handle("GET /api/assets", authed(h.listAssets))
	mux.Handle("GET /api/assets/{id}", authed(h.getAsset))
	mux.Handle("POST /api/assets", landlord(h.createAsset))
	mux.Handle("PUT /api/assets/{id}", landlord(h.updateAsset))
	mux.Handle("DELETE /api/assets/{id}", landlord(h.deleteAsset))

	mux.Handle("GET /api/invoices", authed(h.listInvoices))
	mux.Handle("GET /api/invoices/{id}", authed(h.getInvoice))
	mux.Handle("POST /api/invoices", landlord(h.createInvoice))
	mux.Handle("PUT /api/invoices/{id}", landlord(h.updateInvoice))
	mux.Handle("DELETE /api/invoices/{id}", landlord(h.deleteInvoice))
	mux.Handle("POST /api/invoices/{id}/pay", authed(h.payInvoice))

	mux.Handle("GET /api/notifications", authed(h.listNotifications))
	mux.Handle("POST /api/notifications", landlord(h.createNotification))
	mux.Handle("DELETE /api/notifications/{id}", landlord(h.deleteNotification))

	mux.Handle("GET /api/admin/users", landlord(h.listUsers))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// actuatorHealth mimics the Spring Boot health endpoint the suite's
// environment gate expects.
func (h *Handler) actuatorHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// =============================================================================
// Shared helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := errs.CodeOf(err)
	if code == errs.Internal {
		h.Log.Error().Err(err).Msg("internal error")
	}
	writeJSON(w, errs.HTTPStatus(code), map[string]string{"error": errs.MessageOf(err)})
}

func writeList[T any](w http.ResponseWriter, items []T, p rental.Pagination) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data":       items,
		"pagination": p,
	})
}

func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.New(errs.InvalidArgument, "malformed JSON body")
	}
	if err := h.validate.Struct(dst); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		return errs.New(errs.InvalidArgument, "invalid request fields: "+strings.Join(fields, ", "))
	}
	return nil
}

// parseListParams parses pagination/sort/filter query parameters. Numeric
// parameters must parse as positive integers; anything else is a 400.
func parseListParams(r *http.Request) (rental.ListParams, error) {
	q := r.URL.Query()
	p := rental.ListParams{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Status:    q.Get("status"),
		Search:    q.Get("search"),
	}
	var err error
	if p.Page, err = parsePositiveInt(q.Get("page"), "page"); err != nil {
		return rental.ListParams{}, err
	}
	if p.Limit, err = parsePositiveInt(q.Get("limit"), "limit"); err != nil {
		return rental.ListParams{}, err
	}
	return p, nil
}

func parsePositiveInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errs.New(errs.InvalidArgument, name+" must be a positive integer")
	}
	return n, nil
}
