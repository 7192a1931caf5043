package api

import (
	"net"
	"net/http"

	"github.com/miniapartment/e2e/internal/errs"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// login exchanges credentials for a JWT pair. Attempts are throttled per
// email so credential stuffing trips a 429 before hitting bcrypt.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	if h.LoginLimiter != nil && !h.LoginLimiter.Allow(limiterKey(r, req.Email)) {
		h.writeError(w, errs.New(errs.ResourceExhausted, "too many login attempts, try again later"))
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.Log.Info().Str("email", req.Email).Msg("login rejected")
		h.writeError(w, err)
		return
	}

	pair, err := h.Tokens.IssuePair(user)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Info().Str("email", user.Email).Str("role", user.Role).Msg("login accepted")
	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         loginUser{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}

func limiterKey(r *http.Request, email string) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return host + "|" + email
}

// listUsers serves the landlord-only account listing.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	users, pagination, err := h.Store.ListUsers(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeList(w, users, pagination)
}
