// Package web serves the server-rendered HTML pages: login, dashboard, room
// management, billing, assets, and notifications. Pages carry the element
// IDs and data-testid attributes the browser suite locates by.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/miniapartment/e2e/internal/auth"
	"github.com/miniapartment/e2e/internal/errs"
	"github.com/miniapartment/e2e/internal/rental"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler renders the HTML pages.
type Handler struct {
	Store    *rental.Store
	Users    *auth.UserService
	Sessions *auth.SessionService
	Log      zerolog.Logger

	templates *template.Template
}

// NewHandler parses the embedded templates and creates the page handler.
func NewHandler(store *rental.Store, users *auth.UserService, sessions *auth.SessionService, log zerolog.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatVND":      formatVND,
		"formatMillions": rental.FormatMillions,
		"add":            func(a, b int) int { return a + b },
		"sub":            func(a, b int) int { return a - b },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		Store:     store,
		Users:     users,
		Sessions:  sessions,
		Log:       log,
		templates: tmpl,
	}, nil
}

// RegisterRoutes mounts the HTML pages on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /login", h.loginPage)
	mux.HandleFunc("POST /login", h.loginSubmit)
	mux.HandleFunc("GET /logout", h.logout)
	mux.HandleFunc("POST /logout", h.logout)
	mux.HandleFunc("GET /register", h.registerPage)

	mux.Handle("GET /dashboard", mw.RequireSession(http.HandlerFunc(h.dashboard)))
	mux.Handle("GET /room", mw.RequireLandlordSession(http.HandlerFunc(h.rooms)))
	mux.Handle("POST /room/create", mw.RequireLandlordSession(http.HandlerFunc(h.createRoom)))
	mux.Handle("POST /room/{id}/update", mw.RequireLandlordSession(http.HandlerFunc(h.updateRoom)))
	mux.Handle("POST /room/{id}/delete", mw.RequireLandlordSession(http.HandlerFunc(h.deleteRoom)))

	mux.Handle("GET /billing", mw.RequireSession(http.HandlerFunc(h.billing)))
	mux.Handle("POST /billing/create", mw.RequireLandlordSession(http.HandlerFunc(h.createInvoice)))
	mux.Handle("POST /billing/{id}/pay", mw.RequireSession(http.HandlerFunc(h.payInvoice)))
	mux.Handle("POST /billing/{id}/delete", mw.RequireLandlordSession(http.HandlerFunc(h.deleteInvoice)))

	mux.Handle("GET /assets", mw.RequireLandlordSession(http.HandlerFunc(h.assets)))
	mux.Handle("POST /assets/create", mw.RequireLandlordSession(http.HandlerFunc(h.createAsset)))
	mux.Handle("POST /assets/{id}/delete", mw.RequireLandlordSession(http.HandlerFunc(h.deleteAsset)))

	mux.Handle("GET /notifications", mw.RequireSession(http.HandlerFunc(h.notifications)))
	mux.Handle("POST /notifications/create", mw.RequireLandlordSession(http.HandlerFunc(h.createNotification)))
	mux.Handle("POST /notifications/{id}/delete", mw.RequireLandlordSession(http.HandlerFunc(h.deleteNotification)))
}

// pageData is the payload every template receives.
type pageData struct {
	Title      string
	Active     string
	Identity   *auth.Identity
	IsLandlord bool
	Error      string
	Data       any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data.Identity == nil {
		data.Identity = auth.GetIdentity(r.Context())
	}
	if data.Identity != nil {
		data.IsLandlord = data.Identity.Role == rental.RoleLandlord
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.Log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.Log.Warn().Err(err).Str("path", r.URL.Path).Msg("page action failed")
	w.WriteHeader(errs.HTTPStatus(errs.CodeOf(err)))
	h.render(w, r, "error.html", pageData{Title: "Lỗi", Error: errs.MessageOf(err)})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// =============================================================================
// Auth pages
// =============================================================================

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	h.render(w, r, "login.html", pageData{Title: "Đăng Nhập"})
}

func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "login.html", pageData{Title: "Đăng Nhập", Error: "Yêu cầu không hợp lệ"})
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.Users.Authenticate(r.Context(), email, password)
	if err != nil {
		h.Log.Info().Str("email", email).Msg("page login rejected")
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, r, "login.html", pageData{
			Title: "Đăng Nhập",
			Error: "Tên đăng nhập hoặc mật khẩu không đúng",
		})
		return
	}

	sessionID, err := h.Sessions.Create(user.ID, user.Email, user.Role)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.Sessions.SetCookie(w, sessionID)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		h.Sessions.Destroy(cookie.Value)
	}
	h.Sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", pageData{Title: "Đăng Ký"})
}

// =============================================================================
// Dashboard
// =============================================================================

type dashboardData struct {
	TotalRooms    int
	OccupiedRooms int
	Revenue       string
	MonthYear     string
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	total, occupied, err := h.Store.CountRooms(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	monthYear := time.Now().Format("01/2006")
	revenue, err := h.Store.MonthlyRevenue(r.Context(), monthYear)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, "dashboard.html", pageData{
		Title:  "Tổng quan",
		Active: "dashboard",
		Data: dashboardData{
			TotalRooms:    total,
			OccupiedRooms: occupied,
			Revenue:       rental.FormatMillions(revenue),
			MonthYear:     monthYear,
		},
	})
}

// =============================================================================
// Helpers shared by the list pages
// =============================================================================

// pageParams reads page/limit for an HTML list. Unlike the JSON API, bad
// values fall back to defaults so a hand-edited URL never breaks the page.
func pageParams(r *http.Request) rental.ListParams {
	p := rental.ListParams{Page: 1, Limit: 10, Search: r.URL.Query().Get("search")}
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n >= 1 && n <= rental.MaxPageLimit {
		p.Limit = n
	}
	return p
}

func formatVND(v int64) string {
	// 1500000 -> "1.500.000"
	s := strconv.FormatInt(v, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
