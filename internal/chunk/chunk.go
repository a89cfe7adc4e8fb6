// Package chunk segments raw documents into retrievable units.
//
// Splitting is deterministic and stateless: the same (collection, path,
// content) triple always produces the same chunk list. The strategy is
// chosen from the file extension: markdown files split on headings, source
// files split into fixed line windows, everything else becomes a single
// capped text chunk.
package chunk

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind classifies how a chunk was produced.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindCode     Kind = "code"
	KindText     Kind = "text"
)

const (
	codeWindowLines = 50
	codeStrideLines = 40
	maxTextChars    = 10000
)

// Chunk is the atomic retrievable unit of text.
type Chunk struct {
	// ID is derived from (collection, path, start line) and is stable
	// across re-chunking of unchanged content.
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`
	// Path is the source document identifier (relative file path).
	Path    string `json:"path"`
	Content string `json:"content"`
	// Title is the nearest markdown heading. Empty for code and text chunks.
	Title string `json:"title,omitempty"`
	Kind  Kind   `json:"kind"`
	// StartLine and EndLine are 1-based inclusive bounds within the source.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// headingPattern matches level 1-3 markdown headings at the start of a line.
var headingPattern = regexp.MustCompile(`^#{1,3}\s`)

// codeExtensions is the allow-list of extensions routed to the sliding
// window strategy.
var codeExtensions = map[string]struct{}{
	"go": {}, "js": {}, "jsx": {}, "ts": {}, "tsx": {}, "py": {},
	"java": {}, "rb": {}, "rs": {}, "c": {}, "h": {}, "cpp": {},
	"hpp": {}, "cc": {}, "cs": {}, "php": {}, "swift": {}, "kt": {},
	"scala": {}, "sh": {}, "bash": {}, "sql": {}, "yaml": {}, "yml": {},
	"json": {}, "toml": {}, "html": {}, "css": {}, "vue": {}, "proto": {},
}

// Split converts a raw document into an ordered chunk list. It never fails:
// degenerate input still yields a well-formed (possibly empty) list. Only
// literally empty content produces no chunks.
func Split(collectionID, path, content string) []Chunk {
	if content == "" {
		return nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch {
	case ext == "md" || ext == "markdown":
		return splitMarkdown(collectionID, path, content)
	default:
		if _, ok := codeExtensions[ext]; ok {
			return splitCode(collectionID, path, content)
		}
		return splitText(collectionID, path, content)
	}
}

func chunkID(collectionID, path string, startLine int) string {
	return fmt.Sprintf("%s:%s:%d", collectionID, path, startLine)
}

// splitMarkdown emits one chunk per level 1-3 heading, spanning from the
// heading line to just before the next heading. Content preceding the first
// heading (and documents without headings) becomes an "Introduction" chunk.
func splitMarkdown(collectionID, path, content string) []Chunk {
	lines := strings.Split(content, "\n")

	var headingIdx []int
	for i, line := range lines {
		if headingPattern.MatchString(line) {
			headingIdx = append(headingIdx, i)
		}
	}

	newChunk := func(title string, start, end int) Chunk {
		return Chunk{
			ID:           chunkID(collectionID, path, start+1),
			CollectionID: collectionID,
			Path:         path,
			Content:      strings.Join(lines[start:end+1], "\n"),
			Title:        title,
			Kind:         KindMarkdown,
			StartLine:    start + 1,
			EndLine:      end + 1,
		}
	}

	if len(headingIdx) == 0 {
		return []Chunk{newChunk("Introduction", 0, len(lines)-1)}
	}

	var chunks []Chunk
	if first := headingIdx[0]; first > 0 {
		leading := strings.Join(lines[:first], "\n")
		if strings.TrimSpace(leading) != "" {
			chunks = append(chunks, newChunk("Introduction", 0, first-1))
		}
	}

	for i, start := range headingIdx {
		end := len(lines) - 1
		if i+1 < len(headingIdx) {
			end = headingIdx[i+1] - 1
		}
		title := strings.TrimSpace(strings.TrimLeft(lines[start], "#"))
		chunks = append(chunks, newChunk(title, start, end))
	}

	return chunks
}

// splitCode slides a fixed window over the document lines. Each window
// after the first starts codeStrideLines past the previous window's start,
// giving a 10-line overlap. Iteration stops once a window reaches the last
// line.
func splitCode(collectionID, path, content string) []Chunk {
	lines := strings.Split(content, "\n")
	n := len(lines)

	var chunks []Chunk
	for start := 0; start < n; start += codeStrideLines {
		end := start + codeWindowLines
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{
			ID:           chunkID(collectionID, path, start+1),
			CollectionID: collectionID,
			Path:         path,
			Content:      strings.Join(lines[start:end], "\n"),
			Kind:         KindCode,
			StartLine:    start + 1,
			EndLine:      end,
		})
		if end >= n {
			break
		}
	}

	return chunks
}

// splitText emits a single chunk holding at most maxTextChars characters.
// EndLine reports the full untruncated line count, so callers must tolerate
// a chunk whose content stops short of its reported span.
func splitText(collectionID, path, content string) []Chunk {
	lineCount := strings.Count(content, "\n") + 1

	text := content
	if runes := []rune(text); len(runes) > maxTextChars {
		text = string(runes[:maxTextChars])
	}

	return []Chunk{{
		ID:           chunkID(collectionID, path, 1),
		CollectionID: collectionID,
		Path:         path,
		Content:      text,
		Kind:         KindText,
		StartLine:    1,
		EndLine:      lineCount,
	}}
}
