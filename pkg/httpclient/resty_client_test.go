package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetReturnsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "userdir-test" {
			t.Errorf("User-Agent = %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	client := NewRestyClient(Options{Timeout: 2 * time.Second, UserAgent: "userdir-test"})
	resp, err := client.Get(context.Background(), srv.URL+"/users", map[string]string{"Accept": "application/json"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":false}` {
		t.Fatalf("Body = %q", resp.Body())
	}
}

func TestRestyClientGetTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewRestyClient(Options{Timeout: time.Second})
	if _, err := client.Get(context.Background(), url, nil); err == nil {
		t.Fatalf("expected transport error for closed server")
	}
}

func TestRestyClientGetHonorsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewRestyClient(Options{})
	if _, err := client.Get(ctx, srv.URL, nil); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
