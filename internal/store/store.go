// Package store persists the local cache document of a session.
package store

import (
	"context"
)

// Store keeps cache documents by key.
//
// Documents are stored as they are written. Callers pass loaded documents
// through the normalizer, the same way as backend data.
type Store interface {
	// Load returns the document for the key. If there is none, the error
	// wraps models.ErrResourceNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save creates or replaces the document for the key.
	Save(ctx context.Context, key string, document []byte) error

	// Delete removes the document for the key. Deleting a missing document
	// is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases all resources of the store.
	Close() error
}
