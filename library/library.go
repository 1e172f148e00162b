package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/docsource"
	"github.com/poiesic/madde/search"
)

// Library is an ordered, concurrency-safe set of documents.
type Library struct {
	converter *docsource.Converter
	searcher  *search.Searcher
	pool      *ants.Pool
	progress  io.Writer
	logger    *slog.Logger

	mu    sync.RWMutex
	docs  []*core.Document
	index map[string]int
}

// Option configures a Library.
type Option func(*Library) error

// WithPoolSize sets the worker pool size for concurrent loading and searching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Library) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithProgress reports loading progress to w. Default is no reporting.
func WithProgress(w io.Writer) Option {
	return func(l *Library) error {
		l.progress = w
		return nil
	}
}

// NewLibrary creates an empty library.
func NewLibrary(converter *docsource.Converter, searcher *search.Searcher, opts ...Option) (*Library, error) {
	if converter == nil {
		return nil, ErrConverterRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	// Default pool size
	poolSize := max(1, runtime.NumCPU()/2)

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Library{
		converter: converter,
		searcher:  searcher,
		pool:      pool,
		logger:    slog.Default(),
		index:     make(map[string]int),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// Release releases the worker pool.
// The library should not be used after calling Release.
func (l *Library) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// Add inserts doc, replacing any document with the same ID in place.
func (l *Library) Add(doc *core.Document) error {
	if err := core.ValidateDocument(doc); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if i, ok := l.index[doc.ID]; ok {
		l.docs[i] = doc
		return nil
	}
	l.index[doc.ID] = len(l.docs)
	l.docs = append(l.docs, doc)
	return nil
}

// Get returns the document with the given ID.
func (l *Library) Get(id string) (*core.Document, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.docs[i], true
}

// Documents returns the documents in load order.
func (l *Library) Documents() []*core.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.docs)
}

// Len returns the number of documents.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.docs)
}

// Load reads the given files concurrently and adds every document that
// loaded successfully, in argument order. It returns how many were added
// and the joined errors of the ones that failed.
func (l *Library) Load(ctx context.Context, paths ...string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	progress := newLoadProgress(l.progress, len(paths))

	docs := make([]*core.Document, len(paths))
	errs := make([]error, len(paths))

	err := l.run(len(paths), func(i int) {
		defer func() { progress.record(paths[i], errs[i]) }()
		if err := ctx.Err(); err != nil {
			errs[i] = err
			return
		}
		docs[i], errs[i] = l.converter.Load(ctx, paths[i])
	})
	if err != nil {
		return 0, err
	}

	loaded := 0
	for i, doc := range docs {
		if errs[i] != nil {
			l.logger.Warn("failed to load document", "path", paths[i], "err", errs[i])
			continue
		}
		if err := l.Add(doc); err != nil {
			errs[i] = fmt.Errorf("%s: %w", paths[i], err)
			continue
		}
		loaded++
	}

	progress.finish(loaded)
	l.logger.Info("documents loaded", "requested", len(paths), "loaded", loaded)
	if err := ctx.Err(); err != nil {
		return loaded, err
	}
	return loaded, errors.Join(errs...)
}

// LoadDir loads every supported file directly inside dir, in name order.
// Subdirectories and unsupported files are skipped.
func (l *Library) LoadDir(ctx context.Context, dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !docsource.Supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	l.logger.Debug("scanning directory", "dir", dir, "files", len(paths))
	return l.Load(ctx, paths...)
}

// SearchAll runs query against every document concurrently and returns one
// result per document with at least one match, in load order. maxResults
// limits each document's matches; values < 1 use the searcher's default.
func (l *Library) SearchAll(ctx context.Context, query string, caseSensitive bool, maxResults int) ([]*core.SearchResult, error) {
	docs := l.Documents()
	results := make([]*core.SearchResult, len(docs))

	err := l.run(len(docs), func(i int) {
		if ctx.Err() != nil {
			return
		}
		results[i] = l.searcher.Search(&search.Request{
			DocumentID:    docs[i].ID,
			Document:      docs[i].Content,
			Query:         query,
			CaseSensitive: caseSensitive,
			MaxResults:    maxResults,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := make([]*core.SearchResult, 0, len(results))
	for _, r := range results {
		if r != nil && r.TotalMatches > 0 {
			found = append(found, r)
		}
	}

	l.logger.Debug("library search finished", "documents", len(docs), "with_matches", len(found))
	return found, nil
}

// run executes task(0..n-1) on the pool and waits for all of them.
func (l *Library) run(n int, task func(i int)) error {
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		if err := l.pool.Submit(func() {
			defer wg.Done()
			task(i)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("submitting task: %w", err)
		}
	}
	wg.Wait()
	return nil
}
