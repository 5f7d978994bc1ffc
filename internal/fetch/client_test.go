package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestFetch_OK(t *testing.T) {
	const body = "Hardware Vendor,System\nDell Inc.,PowerEdge R760\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	rc, err := NewClient(0).Fetch(context.Background(), mustParse(t, srv.URL))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != body {
		t.Errorf("body: got %q, want %q", got, body)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(0).Fetch(context.Background(), mustParse(t, srv.URL))

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if ferr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want %d", ferr.StatusCode, http.StatusServiceUnavailable)
	}
	if !strings.Contains(ferr.Error(), "503") {
		t.Errorf("message should name the status: %q", ferr.Error())
	}
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(0).Fetch(context.Background(), mustParse(t, srv.URL))

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if ferr.StatusCode != 0 {
		t.Errorf("transport failure should carry no status, got %d", ferr.StatusCode)
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer func() { close(release); srv.Close() }()

	start := time.Now()
	_, err := NewClient(100 * time.Millisecond).Fetch(context.Background(), mustParse(t, srv.URL))

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout not enforced, waited %v", elapsed)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer func() { close(release); srv.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient(0).Fetch(ctx, mustParse(t, srv.URL)); err == nil {
		t.Fatal("Fetch() with cancelled context succeeded")
	}
}
