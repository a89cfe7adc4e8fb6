package search

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "camelCase identifier",
			text: "GitLabCrawlerTest",
			want: []string{"git", "lab", "crawler", "test"},
		},
		{
			name: "short tokens dropped",
			text: "a an to go fix",
			want: []string{"fix"},
		},
		{
			name: "stop words dropped",
			text: "the function returns the default crawler",
			want: []string{"returns", "crawler"},
		},
		{
			name: "punctuation splits fragments",
			text: "index.search(query, limit)",
			want: []string{"index", "search", "query", "limit"},
		},
		{
			name: "duplicates retained",
			text: "retry retry retry",
			want: []string{"retry", "retry", "retry"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "only separators",
			text: "--- !!! ///",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitCamel(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"fooBar", []string{"foo", "Bar"}},
		{"HTTPServer", []string{"HTTPServer"}},
		{"plain", []string{"plain"}},
		{"parseURLPath", []string{"parse", "URLPath"}},
	}

	for _, tt := range tests {
		if got := splitCamel(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCamel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
