package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/miniapartment/e2e/internal/errs"
)

// Session configuration. The cookie name matches the next-auth convention
// the frontend under test uses, so cookie assertions in the suite hold
// against both the reference server and a real deployment.
const (
	SessionDuration   = 24 * time.Hour
	SessionIDLength   = 32 // 256 bits
	SessionCookieName = "next-auth.session-token"
)

// Session is an active browser session.
type Session struct {
	ID        string
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// SessionService holds sessions in memory. The reference server exists for
// test runs, so sessions do not survive a restart.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]Session
	secure   bool
}

// NewSessionService creates an empty session store. secure controls the
// Secure attribute on issued cookies.
func NewSessionService(secure bool) *SessionService {
	return &SessionService{
		sessions: make(map[string]Session),
		secure:   secure,
	}
}

// Create opens a session and returns its ID for the cookie.
func (s *SessionService) Create(userID, email, role string) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("generate session ID: %w", err)
	}
	s.mu.Lock()
	s.sessions[id] = Session{
		ID:        id,
		UserID:    userID,
		Email:     email,
		Role:      role,
		ExpiresAt: time.Now().Add(SessionDuration),
	}
	s.mu.Unlock()
	return id, nil
}

// Validate returns the session for an ID, or unauthenticated.
func (s *SessionService) Validate(id string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, errs.New(errs.Unauthenticated, "session not found")
	}
	if time.Now().After(sess.ExpiresAt) {
		s.Destroy(id)
		return Session{}, errs.New(errs.Unauthenticated, "session expired")
	}
	return sess, nil
}

// Destroy removes a session. Destroying an unknown ID is a no-op so logout
// is idempotent.
func (s *SessionService) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// SetCookie writes the session cookie on a response.
func (s *SessionService) SetCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on a response.
func (s *SessionService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest resolves the session attached to a request, if any.
func (s *SessionService) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return Session{}, errs.New(errs.Unauthenticated, "no session cookie")
	}
	return s.Validate(cookie.Value)
}

func generateSessionID() (string, error) {
	b := make([]byte, SessionIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
