package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_DecodesPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":42,"title":"T","body":"B"},{"id":2,"title":"second","body":"more"}]`))
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != 42 || posts[0].Title != "T" || posts[0].Body != "B" {
		t.Errorf("unexpected first post: %+v", posts[0])
	}
}

func TestFetch_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, time.Second).Fetch(context.Background()); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestFetch_NetworkFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	if _, err := NewClient(srv.URL, time.Second).Fetch(context.Background()); err == nil {
		t.Error("expected error when endpoint is unreachable")
	}
}

func TestFetch_MalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, time.Second).Fetch(context.Background()); err == nil {
		t.Error("expected error on malformed body")
	}
}
