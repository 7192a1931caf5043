// Package apiclient is the typed HTTP client the API-level suite drives the
// backend with. Every failure message carries the action, the HTTP status,
// and the raw response body, so assertion failures point straight at the
// server's complaint.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/miniapartment/e2e/internal/rental"
)

// Client talks to the REST API at a fixed base URL. It performs no retries:
// a flaky backend should fail the suite, not be papered over.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080/api").
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// WithHTTPClient swaps the underlying HTTP client. Fixtures use it to point
// at an in-process test server.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Session is an authenticated API session. It is immutable: the token and
// user identity are fixed at login.
type Session struct {
	accessToken  string
	refreshToken string
	user         UserInfo
}

// UserInfo is the identity echoed back by login.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AccessToken returns the bearer token for the session.
func (s *Session) AccessToken() string { return s.accessToken }

// RefreshToken returns the refresh token issued at login.
func (s *Session) RefreshToken() string { return s.refreshToken }

// User returns the authenticated identity.
func (s *Session) User() UserInfo { return s.user }

type loginResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         UserInfo `json:"user"`
}

// Authenticate logs in and returns an immutable session.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	var resp loginResponse
	err := c.do(ctx, nil, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, &resp, "authenticate")
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("email", resp.User.Email).Str("role", resp.User.Role).Msg("authenticated")
	return &Session{
		accessToken:  resp.AccessToken,
		refreshToken: resp.RefreshToken,
		user:         resp.User,
	}, nil
}

// ListQuery narrows a list request. Zero fields are omitted so the server's
// defaults apply.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Status    string
	Search    string
}

func (q ListQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListResult is one page of a listed resource.
type ListResult[T any] struct {
	Data       []T               `json:"data"`
	Pagination rental.Pagination `json:"pagination"`
}

// do issues one request. action names the operation for error messages.
func (c *Client) do(ctx context.Context, sess *Session, method, path string, body, out any, action string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("Failed to %s: encode request: %w", action, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("Failed to %s: %w", action, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("Failed to %s: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("Failed to %s: read response: %w", action, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Failed to %s: %d - %s", action, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("Failed to %s: decode response: %w", action, err)
		}
	}
	return nil
}

// Health reports whether the API's health endpoint answers 2xx.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, nil, http.MethodGet, "/health", nil, nil, "check health")
}
