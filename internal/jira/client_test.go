package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Fetch_Paginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "bot@example.com" || pass != "token" {
			t.Errorf("basic auth = %q/%q, want bot@example.com/token", user, pass)
		}
		startAt := r.URL.Query().Get("startAt")
		switch startAt {
		case "0":
			fmt.Fprint(w, `{"startAt":0,"maxResults":100,"total":2,
				"issues":[{"key":"OPS-1","fields":{"summary":"First issue","description":"details"}}]}`)
		case "1":
			fmt.Fprint(w, `{"startAt":1,"maxResults":100,"total":2,
				"issues":[{"key":"OPS-2","fields":{"summary":"Second issue","description":""}}]}`)
		default:
			t.Errorf("unexpected startAt %q", startAt)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bot@example.com", "token")
	docs, err := client.Fetch(context.Background(), "OPS")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("Fetch() returned %d documents, want 2", len(docs))
	}
	if docs[0].Path != "issues/OPS-1.txt" || docs[0].Title != "First issue" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[0].Content != "First issue\n\ndetails" {
		t.Errorf("docs[0].Content = %q", docs[0].Content)
	}
	if docs[1].Content != "Second issue" {
		t.Errorf("docs[1].Content = %q (empty description must not add separator)", docs[1].Content)
	}
}

func TestClient_Fetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "")
	if _, err := client.Fetch(context.Background(), "OPS"); err == nil {
		t.Error("Fetch() expected error on 401")
	}
}
