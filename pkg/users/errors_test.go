package users

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIErrorMessages(t *testing.T) {
	cases := []struct {
		err  APIError
		want string
		kind Kind
	}{
		{NewNetworkError("connection reset"), "network error: connection reset", KindNetwork},
		{NewParseError("unexpected EOF"), "parse error: unexpected EOF", KindParse},
		{ErrNotFound, "resource not found", KindNotFound},
		{NewServerError(503), "server error: 503", KindServer},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q want %q", got, tc.want)
		}
		if tc.err.Kind() != tc.kind {
			t.Errorf("%q: Kind() = %v want %v", tc.want, tc.err.Kind(), tc.kind)
		}
	}
}

func TestAsAPIErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewServerError(500))

	apiErr, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatalf("expected APIError in chain")
	}
	srv, ok := apiErr.(*ServerError)
	if !ok || srv.Code != 500 {
		t.Fatalf("unexpected error %#v", apiErr)
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Fatalf("plain error must not be an APIError")
	}
	if KindOf(nil) != 0 {
		t.Fatalf("KindOf(nil) should be zero")
	}
}

func TestNotFoundMatchesSentinel(t *testing.T) {
	if !errors.Is(&NotFoundError{}, ErrNotFound) {
		t.Fatalf("fresh NotFoundError should match ErrNotFound")
	}
	if errors.Is(NewServerError(404), ErrNotFound) {
		t.Fatalf("ServerError must not match ErrNotFound")
	}
}

func TestKindString(t *testing.T) {
	if KindNotFound.String() != "not_found" || Kind(99).String() != "unknown" {
		t.Fatalf("unexpected kind strings")
	}
}

func TestBodySummary(t *testing.T) {
	if got := bodySummary(nil); got != "<empty>" {
		t.Fatalf("empty body summary = %q", got)
	}
	if got := bodySummary([]byte("  plain text  ")); got != "plain text" {
		t.Fatalf("plain summary = %q", got)
	}
	long := strings.Repeat("x", maxSummaryLen+10)
	if got := bodySummary([]byte(long)); len(got) != maxSummaryLen+3 {
		t.Fatalf("expected truncated summary, got len %d", len(got))
	}
	html := `<html><body><h1>Service Unavailable</h1></body></html>`
	if got := bodySummary([]byte(html)); got != "Service Unavailable" {
		t.Fatalf("html summary = %q", got)
	}
}
