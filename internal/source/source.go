// Package source defines the contract between the crawler and the external
// project-management services it ingests from.
package source

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source.go -package=mocks worklens/internal/source Source

import "context"

// Document is a raw document fetched from an external service, before
// chunking. Path decides the chunking strategy by its extension.
type Document struct {
	// Path is the document identifier within its collection.
	Path string
	// Title is a display label, may be empty.
	Title string
	// Content is the raw UTF-8 text.
	Content string
}

// Source fetches documents for one external service. Implementations must
// be safe to call sequentially from the crawler; fetch failures are theirs
// to report, never to hide.
type Source interface {
	// Name identifies the service ("gitlab", "jira", "confluence").
	Name() string
	// Fetch returns all documents for a collection (a project path, a
	// Jira project key, or a Confluence space key).
	Fetch(ctx context.Context, collectionID string) ([]Document, error)
}
