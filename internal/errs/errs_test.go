package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(NotFound, "room not found")); got != NotFound {
		t.Fatalf("CodeOf = %s, want not_found", got)
	}
	if got := CodeOf(errors.New("raw")); got != Internal {
		t.Fatalf("untyped error code = %s, want internal", got)
	}
	// Wrapping preserves the code through errors.As.
	wrapped := fmt.Errorf("context: %w", New(FailedPrecondition, "paid"))
	if got := CodeOf(wrapped); got != FailedPrecondition {
		t.Fatalf("wrapped code = %s, want failed_precondition", got)
	}
}

func TestMessageOfHidesUntypedErrors(t *testing.T) {
	raw := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	if got := MessageOf(raw); got != "internal error" {
		t.Fatalf("untyped message leaked: %q", got)
	}
	if got := MessageOf(New(InvalidArgument, "name is required")); got != "name is required" {
		t.Fatalf("typed message = %q", got)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Internal, "save room", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable via errors.Is")
	}
	if err.Error() != "save room" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{InvalidArgument, http.StatusBadRequest},
		{Unauthenticated, http.StatusUnauthorized},
		{PermissionDenied, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{FailedPrecondition, http.StatusConflict},
		{ResourceExhausted, http.StatusTooManyRequests},
		{Unavailable, http.StatusServiceUnavailable},
		{Internal, http.StatusInternalServerError},
		{Code("made-up"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.code); got != c.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", c.code, got, c.want)
		}
	}
}
