package storage

import (
	"context"
	"time"
)

// DocumentCache stores document content by key with an optional expiry.
// Implementations must be thread-safe and support concurrent access.
type DocumentCache interface {
	// Get returns the content stored under key.
	// Returns ErrNotFound if the key is absent or its entry has expired.
	Get(ctx context.Context, key string) (string, error)

	// Put stores content under key, replacing any previous entry.
	// A ttl <= 0 stores the entry without expiry.
	Put(ctx context.Context, key, content string, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Size returns the number of live (unexpired) entries.
	Size(ctx context.Context) (int, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Sweep evicts expired entries and returns how many were removed.
	Sweep(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
