package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/miniapartment/e2e/internal/errs"
	"github.com/miniapartment/e2e/internal/rental"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated principal attached to a request context,
// resolved from either a session cookie or a bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// GetIdentity returns the identity on a context, or nil.
func GetIdentity(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

func withIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, &id))
}

// Middleware guards HTML and API routes.
type Middleware struct {
	Sessions *SessionService
	Tokens   *TokenService
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(sessions *SessionService, tokens *TokenService) *Middleware {
	return &Middleware{Sessions: sessions, Tokens: tokens}
}

// RequireSession protects an HTML route: requests without a valid session
// cookie are redirected to /login.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Sessions.FromRequest(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, withIdentity(r, Identity{UserID: sess.UserID, Email: sess.Email, Role: sess.Role}))
	})
}

// RequireLandlordSession protects an HTML route for landlords. Renters get
// redirected to their dashboard rather than a bare 403 page.
func (m *Middleware) RequireLandlordSession(next http.Handler) http.Handler {
	return m.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetIdentity(r.Context())
		if id == nil || id.Role != rental.RoleLandlord {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireToken protects an API route: requests must carry a valid bearer
// access token.
func (m *Middleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeAuthError(w, errs.New(errs.Unauthenticated, "missing bearer token"))
			return
		}
		claims, err := m.Tokens.VerifyAccess(raw)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		next.ServeHTTP(w, withIdentity(r, Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}))
	})
}

// RequireRole narrows an already-authenticated route to one role.
func (m *Middleware) RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetIdentity(r.Context())
		if id == nil {
			writeAuthError(w, errs.New(errs.Unauthenticated, "not authenticated"))
			return
		}
		if id.Role != role {
			writeAuthError(w, errs.New(errs.PermissionDenied, "insufficient role for this resource"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errs.HTTPStatus(errs.CodeOf(err)))
	json.NewEncoder(w).Encode(map[string]string{"error": errs.MessageOf(err)})
}
