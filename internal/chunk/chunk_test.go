package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_EmptyContent(t *testing.T) {
	if got := Split("proj", "README.md", ""); got != nil {
		t.Errorf("Split() with empty content = %v, want nil", got)
	}
}

func TestSplit_MarkdownNoHeadings(t *testing.T) {
	content := "Just some prose.\nSecond line.\nThird line."

	chunks := Split("proj", "notes.md", content)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}

	c := chunks[0]
	if c.Title != "Introduction" {
		t.Errorf("Title = %q, want Introduction", c.Title)
	}
	if c.StartLine != 1 || c.EndLine != 3 {
		t.Errorf("span = [%d,%d], want [1,3]", c.StartLine, c.EndLine)
	}
	if c.Content != content {
		t.Errorf("Content = %q, want full document", c.Content)
	}
	if c.Kind != KindMarkdown {
		t.Errorf("Kind = %q, want markdown", c.Kind)
	}
}

func TestSplit_MarkdownHeadings(t *testing.T) {
	content := strings.Join([]string{
		"Preamble before any heading.",
		"",
		"# First",
		"body one",
		"## Second",
		"body two",
		"### Third",
		"body three",
	}, "\n")

	chunks := Split("proj", "doc.md", content)
	if len(chunks) != 4 {
		t.Fatalf("Split() returned %d chunks, want 4", len(chunks))
	}

	if chunks[0].Title != "Introduction" || chunks[0].StartLine != 1 || chunks[0].EndLine != 2 {
		t.Errorf("leading chunk = %q [%d,%d], want Introduction [1,2]",
			chunks[0].Title, chunks[0].StartLine, chunks[0].EndLine)
	}

	wantTitles := []string{"Introduction", "First", "Second", "Third"}
	wantStarts := []int{1, 3, 5, 7}
	for i, c := range chunks {
		if c.Title != wantTitles[i] {
			t.Errorf("chunk[%d].Title = %q, want %q", i, c.Title, wantTitles[i])
		}
		if c.StartLine != wantStarts[i] {
			t.Errorf("chunk[%d].StartLine = %d, want %d", i, c.StartLine, wantStarts[i])
		}
	}

	if chunks[3].EndLine != 8 {
		t.Errorf("last chunk EndLine = %d, want 8", chunks[3].EndLine)
	}
}

func TestSplit_MarkdownDeepHeadingIgnored(t *testing.T) {
	content := "# Top\n#### Too deep\nbody"

	chunks := Split("proj", "doc.md", content)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1 (#### is not a section boundary)", len(chunks))
	}
	if chunks[0].Title != "Top" {
		t.Errorf("Title = %q, want Top", chunks[0].Title)
	}
}

func TestSplit_CodeWindows(t *testing.T) {
	tests := []struct {
		name      string
		lines     int
		wantSpans [][2]int
	}{
		{"short file", 30, [][2]int{{1, 30}}},
		{"exactly one window", 50, [][2]int{{1, 50}}},
		{"two windows", 90, [][2]int{{1, 50}, {41, 90}}},
		{"clipped final window", 120, [][2]int{{1, 50}, {41, 90}, {81, 120}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := make([]string, tt.lines)
			for i := range parts {
				parts[i] = "line"
			}
			chunks := Split("proj", "main.go", strings.Join(parts, "\n"))

			if len(chunks) != len(tt.wantSpans) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.wantSpans))
			}
			for i, span := range tt.wantSpans {
				if chunks[i].StartLine != span[0] || chunks[i].EndLine != span[1] {
					t.Errorf("chunk[%d] span = [%d,%d], want [%d,%d]",
						i, chunks[i].StartLine, chunks[i].EndLine, span[0], span[1])
				}
				if chunks[i].Kind != KindCode {
					t.Errorf("chunk[%d].Kind = %q, want code", i, chunks[i].Kind)
				}
				if chunks[i].Title != "" {
					t.Errorf("chunk[%d].Title = %q, want empty", i, chunks[i].Title)
				}
			}
		})
	}
}

func TestSplit_TextTruncation(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 600; i++ {
		b.WriteString("twenty characters ok\n")
	}
	content := b.String() // 12600 chars, 601 lines counting the trailing one

	chunks := Split("proj", "dump.log", content)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}

	c := chunks[0]
	if got := utf8.RuneCountInString(c.Content); got != maxTextChars {
		t.Errorf("content length = %d, want %d", got, maxTextChars)
	}
	if c.EndLine != 601 {
		t.Errorf("EndLine = %d, want full line count 601", c.EndLine)
	}
	if c.Kind != KindText {
		t.Errorf("Kind = %q, want text", c.Kind)
	}
}

func TestSplit_DispatchByExtension(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"docs/guide.md", KindMarkdown},
		{"docs/GUIDE.MD", KindMarkdown},
		{"docs/guide.markdown", KindMarkdown},
		{"src/app.PY", KindCode},
		{"src/service.ts", KindCode},
		{"LICENSE", KindText},
		{"data.csv", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			chunks := Split("proj", tt.path, "some content")
			if len(chunks) == 0 {
				t.Fatal("Split() returned no chunks")
			}
			if chunks[0].Kind != tt.want {
				t.Errorf("Kind = %q, want %q", chunks[0].Kind, tt.want)
			}
		})
	}
}

func TestSplit_ChunkIDsStable(t *testing.T) {
	content := "# A\none\n# B\ntwo"

	first := Split("proj", "doc.md", content)
	second := Split("proj", "doc.md", content)

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk[%d] ID not stable: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
	if first[0].ID == first[1].ID {
		t.Error("distinct chunks share an ID")
	}
}
