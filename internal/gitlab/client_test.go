package gitlab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("PRIVATE-TOKEN"); got != "secret" {
			t.Errorf("PRIVATE-TOKEN = %q, want secret", got)
		}
		switch {
		case strings.Contains(r.URL.Path, "/repository/tree"):
			_, _ = w.Write([]byte(`[
				{"type":"blob","path":"README.md"},
				{"type":"blob","path":"main.go"},
				{"type":"blob","path":"logo.png"},
				{"type":"tree","path":"docs"}
			]`))
		case strings.Contains(r.URL.Path, "/repository/files/"):
			_, _ = w.Write([]byte("file content"))
		case strings.Contains(r.URL.Path, "/wikis"):
			_, _ = w.Write([]byte(`[{"title":"Home","slug":"home","format":"markdown","content":"# Welcome"}]`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	docs, err := client.Fetch(context.Background(), "group/repo")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	// Two text blobs (png skipped, tree skipped) plus one wiki page.
	if len(docs) != 3 {
		t.Fatalf("Fetch() returned %d documents, want 3", len(docs))
	}
	if docs[0].Path != "README.md" || docs[0].Content != "file content" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[2].Path != "wiki/home.md" || docs[2].Title != "Home" {
		t.Errorf("wiki doc = %+v, want wiki/home.md titled Home", docs[2])
	}
}

func TestClient_Fetch_WikisDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/repository/tree"):
			_, _ = w.Write([]byte(`[]`))
		case strings.Contains(r.URL.Path, "/wikis"):
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	docs, err := client.Fetch(context.Background(), "group/repo")
	if err != nil {
		t.Fatalf("Fetch() error = %v (disabled wikis must not fail the crawl)", err)
	}
	if len(docs) != 0 {
		t.Errorf("Fetch() returned %d documents, want 0", len(docs))
	}
}

func TestClient_Fetch_TreeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad")
	if _, err := client.Fetch(context.Background(), "group/repo"); err == nil {
		t.Error("Fetch() expected error on unauthorized tree listing")
	}
}
