// Package crawler orchestrates ingestion: fetch documents from a source,
// skip collections whose content is unchanged, chunk the rest, and hand
// the chunk batch to the search index.
package crawler

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"worklens/internal/chunk"
	"worklens/internal/contextutil"
	"worklens/internal/search"
	"worklens/internal/source"
	"worklens/internal/storage"
)

// Target pairs a source with the collections to crawl from it.
type Target struct {
	Source      source.Source
	Collections []string
}

// Crawler drives the fetch-chunk-index pipeline.
type Crawler struct {
	docs   storage.DocumentStore
	index  *search.Index
	logger *slog.Logger
}

// New creates a new Crawler.
func New(docs storage.DocumentStore, index *search.Index) *Crawler {
	return &Crawler{
		docs:   docs,
		index:  index,
		logger: slog.Default(),
	}
}

// CrawlCollection fetches one collection from a source and replaces its
// chunks in the index. When every fetched document matches its stored hash
// and the collection is already indexed, the re-index is skipped.
func (c *Crawler) CrawlCollection(ctx context.Context, src source.Source, collectionID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	docs, err := src.Fetch(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("failed to fetch collection %s from %s: %w", collectionID, src.Name(), err)
	}

	changed := false
	hashes := make([]string, len(docs))
	for i, doc := range docs {
		sum := sha256.Sum256([]byte(doc.Content))
		hashes[i] = fmt.Sprintf("%x", sum)

		existing, err := c.docs.GetByCollectionAndPath(ctx, collectionID, doc.Path)
		if err != nil && err != storage.ErrNotFound {
			return fmt.Errorf("failed to check existing document: %w", err)
		}
		if existing == nil || existing.Hash != hashes[i] {
			changed = true
		}
	}

	stored, err := c.docs.ListByCollection(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("failed to list stored documents: %w", err)
	}
	// A removed document changes the collection even if nothing else did.
	if len(stored) != len(docs) {
		changed = true
	}

	if !changed && indexed(c.index, collectionID) {
		logger.DebugContext(ctx, "skipping unchanged collection",
			"collection", collectionID, "documents", len(docs))
		return nil
	}

	var chunks []chunk.Chunk
	for i, doc := range docs {
		docChunks := chunk.Split(collectionID, doc.Path, doc.Content)
		// Attach the document title to untitled chunks so issue and page
		// summaries participate in title boosting.
		if doc.Title != "" {
			for j := range docChunks {
				if docChunks[j].Title == "" {
					docChunks[j].Title = doc.Title
				}
			}
		}
		chunks = append(chunks, docChunks...)

		record := &storage.Document{
			ID:           uuid.New().String(),
			CollectionID: collectionID,
			Path:         doc.Path,
			Source:       src.Name(),
			Title:        doc.Title,
			Hash:         hashes[i],
		}
		if err := c.docs.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to upsert document record: %w", err)
		}
	}

	c.index.Index(collectionID, chunks)
	logger.InfoContext(ctx, "indexed collection",
		"collection", collectionID, "source", src.Name(),
		"documents", len(docs), "chunks", len(chunks))
	return nil
}

// CrawlAll walks every target. Errors for individual collections are
// logged but don't stop the crawl.
func (c *Crawler) CrawlAll(ctx context.Context, targets []Target) error {
	logger := contextutil.LoggerFromContext(ctx)

	var errorCount int
	for _, target := range targets {
		for _, collectionID := range target.Collections {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := c.CrawlCollection(ctx, target.Source, collectionID); err != nil {
				errorCount++
				logger.ErrorContext(ctx, "failed to crawl collection",
					"collection", collectionID, "source", target.Source.Name(), "error", err)
				continue
			}
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("crawl completed with %d errors", errorCount)
	}
	return nil
}

// ClearCollection removes a collection from both the crawl state and the
// index.
func (c *Crawler) ClearCollection(ctx context.Context, collectionID string) error {
	if err := c.docs.DeleteByCollection(ctx, collectionID); err != nil {
		return fmt.Errorf("failed to delete document records: %w", err)
	}
	c.index.Clear(collectionID)
	return nil
}

func indexed(ix *search.Index, collectionID string) bool {
	for _, id := range ix.Collections() {
		if id == collectionID {
			return true
		}
	}
	return false
}
