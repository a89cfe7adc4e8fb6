package tools

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"worklens/internal/chunk"
	"worklens/internal/resources"
	"worklens/internal/search"
)

const snippetLength = 200

var markdownParser = goldmark.New()

// formatResults renders ranked hits as readable text for the calling
// client, registering each hit so it stays addressable.
func formatResults(results []search.Result, reg *resources.Registry) string {
	if len(results) == 0 {
		return "No results found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n", len(results))

	for i, res := range results {
		c := res.Chunk
		item := reg.Register(c.CollectionID, c.Path, c.Title)

		fmt.Fprintf(&b, "\n%d. %s:%s (lines %d-%d, score %.2f)\n",
			i+1, c.CollectionID, c.Path, c.StartLine, c.EndLine, res.Score)
		if c.Title != "" {
			fmt.Fprintf(&b, "   title: %s\n", c.Title)
		}
		fmt.Fprintf(&b, "   resource: %s\n", item.ID)
		if len(res.Matches) > 0 {
			parts := make([]string, len(res.Matches))
			for j, m := range res.Matches {
				parts[j] = fmt.Sprintf("%s (%s)", m.Term, m.Type)
			}
			fmt.Fprintf(&b, "   matched: %s\n", strings.Join(parts, ", "))
		}
		fmt.Fprintf(&b, "   %s\n", snippet(c))
	}

	return b.String()
}

// snippet produces a short plain-text preview of a chunk. Markdown chunks
// are reduced through the AST so markers and link syntax don't leak into
// the output.
func snippet(c chunk.Chunk) string {
	content := c.Content
	if c.Kind == chunk.KindMarkdown {
		content = markdownPlainText(content)
	}

	content = strings.Join(strings.Fields(content), " ")
	runes := []rune(content)
	if len(runes) > snippetLength {
		content = string(runes[:snippetLength]) + "..."
	}
	return content
}

// markdownPlainText extracts the text content of a markdown fragment.
func markdownPlainText(md string) string {
	src := []byte(md)
	doc := markdownParser.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
		case *ast.CodeBlock:
			lines := v.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(src))
			}
		case *ast.FencedCodeBlock:
			lines := v.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}
