package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/miniapartment/e2e/internal/apiclient"
)

// DefaultQuery is an empty list query: the server applies page=1, limit=10.
func DefaultQuery() apiclient.ListQuery {
	return apiclient.ListQuery{}
}

// NewAPIRequest builds a request against the fixture's server. body, when
// non-nil, is JSON-encoded.
func NewAPIRequest(t *testing.T, env *APITestEnv, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, env.BaseURL+path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// DoRequest executes a request with the default client. The caller closes
// the body.
func DoRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

// ReadBody drains and returns a response body as a string.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return string(raw)
}

// AdminToken logs in as the landlord and returns the bearer token.
func AdminToken(t *testing.T, env *APITestEnv) string {
	t.Helper()
	sess, err := env.Client.Authenticate(t.Context(), env.Config.AdminEmail, env.Config.AdminPassword)
	if err != nil {
		t.Fatalf("Failed to authenticate as landlord: %v", err)
	}
	return sess.AccessToken()
}
