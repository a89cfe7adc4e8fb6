package confluence

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		if got := r.URL.Query().Get("spaceKey"); got != "ENG" {
			t.Errorf("spaceKey = %q, want ENG", got)
		}
		fmt.Fprint(w, `{"size":1,"results":[
			{"id":"42","title":"Runbook","body":{"storage":{"value":"<h1>Runbook</h1><p>Step one &amp; step two</p>"}}}
		]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	docs, err := client.Fetch(context.Background(), "ENG")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("Fetch() returned %d documents, want 1", len(docs))
	}
	if docs[0].Path != "pages/42.txt" || docs[0].Title != "Runbook" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[0].Content != "Runbook\nStep one & step two" {
		t.Errorf("Content = %q, want markup stripped", docs[0].Content)
	}
}

func TestStripStorageFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "already plain", "already plain"},
		{"tags removed", "<strong>bold</strong> text", "bold text"},
		{"entities decoded", "a &lt;b&gt; &amp; c", "a <b> & c"},
		{"block closers become newlines", "<p>one</p><p>two</p>", "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripStorageFormat(tt.in); got != tt.want {
				t.Errorf("stripStorageFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
