package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/madde/storage"
)

// sweepBatchSize bounds how many deletions go into one transaction.
const sweepBatchSize = 1000

// Cache implements storage.DocumentCache for BadgerDB using native entry TTLs.
type Cache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.DocumentCache = (*Cache)(nil)

// NewCache creates a cache on an open backend. The cache takes ownership of
// the backend and closes it on Close.
func NewCache(backend *Backend) *Cache {
	return &Cache{
		backend: backend,
		logger:  backend.logger,
	}
}

// OpenCache opens (or creates) an on-disk cache at path. An empty path
// keeps the cache in memory.
func OpenCache(path string, logger *slog.Logger) (storage.DocumentCache, error) {
	backend, err := OpenBackend(path, path == "", logger)
	if err != nil {
		return nil, err
	}
	return NewCache(backend), nil
}

// Close closes the underlying backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}

// Get returns the content stored under key.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var content string
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			content = string(val)
			return nil
		})
	}, false)

	return content, err
}

// Put stores content under key with the given ttl.
func (c *Cache) Put(ctx context.Context, key, content string, ttl time.Duration) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeDocumentKey(key), []byte(content))
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the entry for key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeDocumentKey(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Size counts live entries. Expired entries are skipped by the iterator.
func (c *Cache) Size(ctx context.Context) (int, error) {
	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)

	return count, err
}

// Clear drops every cached document.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.backend.DropPrefix([]byte(documentPrefix)); err != nil {
		return err
	}
	c.logger.Debug("document cache cleared")
	return nil
}

// Sweep deletes entries whose TTL has passed and returns how many were
// removed. Keys rewritten after the scan are left alone.
func (c *Cache) Sweep(ctx context.Context) (int, error) {
	expired, err := c.expiredKeys(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for start := 0; start < len(expired); start += sweepBatchSize {
		batch := expired[start:min(start+sweepBatchSize, len(expired))]

		var n int
		err := retryOnConflict(ctx, func() error {
			n = 0
			return c.backend.WithTx(func(tx *badger.Txn) error {
				for _, key := range batch {
					_, err := tx.Get(key)
					if err == nil {
						// Rewritten since the scan
						continue
					}
					if !errors.Is(err, badger.ErrKeyNotFound) {
						return err
					}
					if err := tx.Delete(key); err != nil {
						return err
					}
					n++
				}
				return tx.Commit()
			}, true)
		})
		if err != nil {
			if isConflict(err) {
				err = fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
			}
			return removed, err
		}
		removed += n
	}

	if removed > 0 {
		c.logger.Debug("swept expired documents", "removed", removed)
	}
	return removed, nil
}

// expiredKeys scans every version of every document key and returns the keys
// whose newest version has an expiry in the past. Deleted keys carry no
// expiry, so tombstones are never reported.
func (c *Cache) expiredKeys(ctx context.Context) ([][]byte, error) {
	var keys [][]byte
	now := uint64(time.Now().Unix())

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		opts.PrefetchValues = false
		opts.AllVersions = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		var lastKey []byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			key := item.Key()
			// Versions arrive newest first; only the newest one counts
			if lastKey != nil && bytes.Equal(key, lastKey) {
				continue
			}
			lastKey = item.KeyCopy(nil)

			expiresAt := item.ExpiresAt()
			if expiresAt != 0 && expiresAt <= now {
				keys = append(keys, lastKey)
			}
		}
		return nil
	}, false)

	return keys, err
}
