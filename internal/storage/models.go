package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Document records a crawled document so unchanged content can be skipped
// on the next crawl.
type Document struct {
	ID           string // UUID
	CollectionID string // Logical collection (project path, issue project, space key)
	Path         string // Relative path within the collection
	Source       string // Source service name ("gitlab", "jira", "confluence")
	Title        string // Display title, may be empty
	Hash         string // SHA256 hex string of raw content
	UpdatedAt    time.Time
}
