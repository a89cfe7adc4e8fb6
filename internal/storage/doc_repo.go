package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks worklens/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for crawl-state persistence.
type DocumentStore interface {
	// Upsert inserts or updates the record for (collection, path).
	Upsert(ctx context.Context, doc *Document) error
	// GetByCollectionAndPath returns the record for a document.
	// Returns ErrNotFound if it does not exist.
	GetByCollectionAndPath(ctx context.Context, collectionID, path string) (*Document, error)
	// ListByCollection returns all records for a collection, ordered by path.
	ListByCollection(ctx context.Context, collectionID string) ([]*Document, error)
	// DeleteByCollection removes all records for a collection.
	DeleteByCollection(ctx context.Context, collectionID string) error
}

// DocumentRepo provides methods for document record operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Upsert inserts or updates the record for (collection, path).
func (r *DocumentRepo) Upsert(ctx context.Context, doc *Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection_id, path, source, title, hash, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (collection_id, path) DO UPDATE SET
			source = excluded.source,
			title = excluded.title,
			hash = excluded.hash,
			updated_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.CollectionID, doc.Path, doc.Source, doc.Title, doc.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// GetByCollectionAndPath returns the record for a document.
// Returns ErrNotFound if it does not exist.
func (r *DocumentRepo) GetByCollectionAndPath(ctx context.Context, collectionID, path string) (*Document, error) {
	var doc Document
	err := r.db.QueryRowContext(ctx,
		"SELECT id, collection_id, path, source, title, hash, updated_at FROM documents WHERE collection_id = ? AND path = ?",
		collectionID, path,
	).Scan(&doc.ID, &doc.CollectionID, &doc.Path, &doc.Source, &doc.Title, &doc.Hash, &doc.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	return &doc, nil
}

// ListByCollection returns all records for a collection, ordered by path.
// Returns an empty slice if none exist (not an error).
func (r *DocumentRepo) ListByCollection(ctx context.Context, collectionID string) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, collection_id, path, source, title, hash, updated_at FROM documents WHERE collection_id = ? ORDER BY path",
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.CollectionID, &doc.Path, &doc.Source, &doc.Title, &doc.Hash, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// DeleteByCollection removes all records for a collection.
func (r *DocumentRepo) DeleteByCollection(ctx context.Context, collectionID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE collection_id = ?", collectionID)
	if err != nil {
		return fmt.Errorf("failed to delete documents by collection: %w", err)
	}
	return nil
}
