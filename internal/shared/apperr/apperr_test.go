package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("missing"), http.StatusNotFound},
		{ConflictErr("sold out"), http.StatusConflict},
		{UnavailableErr("later"), http.StatusServiceUnavailable},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFoundErr("missing")), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestPublicMessageHidesInternalErrors(t *testing.T) {
	if got := PublicMessage(errors.New("dsn=secret")); got != defaultPublicMsg {
		t.Fatalf("expected default message, got %q", got)
	}
	if got := PublicMessage(ConflictErr("Out of stock.")); got != "Out of stock." {
		t.Fatalf("expected public message, got %q", got)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
	cause := errors.New("cause")
	err := ConflictErr("x").WithErr(cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if err.Error() != "conflict: cause" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{ConflictErr("sold out"), Conflict},
		{fmt.Errorf("handler: %w", NotFoundErr("missing")), NotFound},
		{errors.New("plain"), Internal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
