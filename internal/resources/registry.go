// Package resources assigns addressable identifiers to retrieved items so
// a calling client can refer back to a specific search hit.
package resources

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is a retrievable item that has been handed to a client.
type Item struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collection_id"`
	Path         string    `json:"path"`
	Title        string    `json:"title,omitempty"`
	RetrievedAt  time.Time `json:"retrieved_at"`
}

// Registry maps UUIDs to retrieved items. Registering the same
// (collection, path) twice returns the existing identifier.
type Registry struct {
	mu     sync.RWMutex
	items  map[string]Item
	byPath map[string]string // collection+"\x00"+path -> id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items:  make(map[string]Item),
		byPath: make(map[string]string),
	}
}

// Register records an item and returns its addressable form.
func (r *Registry) Register(collectionID, path, title string) Item {
	key := collectionID + "\x00" + path

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byPath[key]; ok {
		return r.items[id]
	}

	item := Item{
		ID:           uuid.New().String(),
		CollectionID: collectionID,
		Path:         path,
		Title:        title,
		RetrievedAt:  time.Now().UTC(),
	}
	r.items[item.ID] = item
	r.byPath[key] = item.ID
	return item
}

// Get returns the item for an identifier.
func (r *Registry) Get(id string) (Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	return item, ok
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
