package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/miniapartment/e2e/internal/rental"
)

func testClient(srv *httptest.Server) *Client {
	return New(srv.URL, zerolog.Nop()).WithHTTPClient(srv.Client())
}

func TestErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"room not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).GetRoom(context.Background(), nil, "missing")
	if err == nil {
		t.Fatal("error expected")
	}
	want := `Failed to fetch room: 404 - {"error":"room not found"}`
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestBearerHeaderSent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(ListResult[rental.Room]{})
	}))
	defer srv.Close()

	sess := &Session{accessToken: "token-abc"}
	if _, err := testClient(srv).GetRooms(context.Background(), sess, ListQuery{}); err != nil {
		t.Fatalf("GetRooms failed: %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestAuthenticateBuildsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(loginResponse{
			AccessToken:  "at",
			RefreshToken: "rt",
			User:         UserInfo{ID: "u1", Email: "landlord1", Role: rental.RoleLandlord},
		})
	}))
	defer srv.Close()

	sess, err := testClient(srv).Authenticate(context.Background(), "landlord1", "pass123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if sess.AccessToken() != "at" || sess.RefreshToken() != "rt" {
		t.Fatalf("tokens = %q / %q", sess.AccessToken(), sess.RefreshToken())
	}
	if sess.User().Role != rental.RoleLandlord {
		t.Fatalf("user = %+v", sess.User())
	}
}

func TestListQueryEncode(t *testing.T) {
	if got := (ListQuery{}).encode(); got != "" {
		t.Fatalf("zero query encodes to %q", got)
	}
	got := ListQuery{Page: 2, Limit: 5, Status: "AVAILABLE", Search: "Phòng"}.encode()
	want := "?limit=5&page=2&search=Ph%C3%B2ng&status=AVAILABLE"
	if got != want {
		t.Fatalf("encode = %q, want %q", got, want)
	}
}

func TestListQuerySentToServer(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ListResult[rental.Room]{
			Pagination: rental.Pagination{Page: 3, Limit: 7},
		})
	}))
	defer srv.Close()

	out, err := testClient(srv).GetRooms(context.Background(), nil, ListQuery{Page: 3, Limit: 7})
	if err != nil {
		t.Fatalf("GetRooms failed: %v", err)
	}
	if gotQuery != "limit=7&page=3" {
		t.Fatalf("query = %q", gotQuery)
	}
	if out.Pagination.Page != 3 || out.Pagination.Limit != 7 {
		t.Fatalf("pagination = %+v", out.Pagination)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	if err := testClient(srv).Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
}
