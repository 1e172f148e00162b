// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.



package madde

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/madde/config"
	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/docsource"
	"github.com/poiesic/madde/library"
	"github.com/poiesic/madde/search"
	"github.com/poiesic/madde/segment"
	"github.com/poiesic/madde/storage"
	"github.com/poiesic/madde/storage/badger"
)

// Engine wires configuration, the document cache, the converter, the
// searcher and the document library together.
type Engine struct {
	cfg       *config.Config
	cache     storage.DocumentCache
	converter *docsource.Converter
	searcher  *search.Searcher
	library   *library.Library
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger   *slog.Logger
	progress io.Writer
}

// WithLogger sets the logger handed to every component.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithProgress reports document loading progress to w.
func WithProgress(w io.Writer) EngineOption {
	return func(o *engineOptions) {
		o.progress = w
	}
}

// CacheStats describes the document cache.
type CacheStats struct {
	Enabled    bool          `json:"cache_enabled"`
	Size       int           `json:"cache_size"`
	DefaultTTL time.Duration `json:"default_ttl"`
}

// NewEngine validates cfg (nil means defaults) and builds every component.
func NewEngine(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		cfg:    cfg,
		logger: logger,
	}

	converterOpts := []docsource.Option{docsource.WithLogger(logger)}
	if cfg.CacheEnabled {
		cache, err := badger.OpenCache(cfg.CacheDir, logger)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		e.cache = cache
		converterOpts = append(converterOpts, docsource.WithCache(cache, cfg.CacheTTL))
	}

	var err error
	e.converter, err = docsource.NewConverter(converterOpts...)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.searcher, err = search.NewSearcher(
		search.WithLogger(logger),
		search.WithMaxResults(cfg.MaxResults),
		search.WithWholeDocumentFallback(cfg.WholeDocumentFallback),
	)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.library, err = library.NewLibrary(e.converter, e.searcher,
		library.WithPoolSize(cfg.PoolSize),
		library.WithLogger(logger),
		library.WithProgress(options.progress),
	)
	if err != nil {
		e.Close()
		return nil, err
	}

	logger.Debug("engine ready",
		"cache_enabled", cfg.CacheEnabled,
		"cache_dir", cfg.CacheDir,
		"pool_size", cfg.PoolSize)
	return e, nil
}

// Close releases the worker pool and closes the cache.
func (e *Engine) Close() error {
	if e.library != nil {
		e.library.Release()
	}
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing document cache", "err", err)
			return err
		}
	}
	return nil
}

func (e *Engine) Config() *config.Config {
	return e.cfg
}

func (e *Engine) Converter() *docsource.Converter {
	return e.converter
}

func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

func (e *Engine) Library() *library.Library {
	return e.library
}

// Segment splits a document into its articles.
func (e *Engine) Segment(document string) []core.Article {
	return segment.Split(document)
}

// Search runs a query against one document text using the configured case
// policy. maxResults < 1 uses the configured limit.
func (e *Engine) Search(documentID, document, query string, maxResults int) *core.SearchResult {
	return e.searcher.Search(&search.Request{
		DocumentID:    documentID,
		Document:      document,
		Query:         query,
		CaseSensitive: e.cfg.CaseSensitive,
		MaxResults:    maxResults,
	})
}

// LoadFile loads a document from disk and adds it to the library.
func (e *Engine) LoadFile(ctx context.Context, path string) (*core.Document, error) {
	doc, err := e.converter.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := e.library.Add(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadBase64 decodes an HTML payload and adds it to the library.
func (e *Engine) LoadBase64(ctx context.Context, id, payload string) (*core.Document, error) {
	doc, err := e.converter.LoadBase64(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if err := e.library.Add(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CacheStats reports whether caching is on, how many entries are live and
// the TTL new entries get.
func (e *Engine) CacheStats(ctx context.Context) (CacheStats, error) {
	if e.cache == nil {
		return CacheStats{Enabled: false}, nil
	}
	size, err := e.converter.CacheSize(ctx)
	if err != nil {
		return CacheStats{}, err
	}
	return CacheStats{
		Enabled:    true,
		Size:       size,
		DefaultTTL: e.converter.CacheTTL(),
	}, nil
}

// ClearCache removes every cached document.
func (e *Engine) ClearCache(ctx context.Context) error {
	return e.converter.ClearCache(ctx)
}

// SweepCache evicts expired cache entries and returns how many were removed.
func (e *Engine) SweepCache(ctx context.Context) (int, error) {
	return e.converter.SweepCache(ctx)
}

// RunSweeper sweeps the cache every interval until ctx is done. It returns
// immediately when caching is disabled or interval is not positive.
func (e *Engine) RunSweeper(ctx context.Context, interval time.Duration) {
	if e.cache == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.SweepCache(ctx); err != nil && ctx.Err() == nil {
				e.logger.Warn("cache sweep failed", "err", err)
			}
		}
	}
}
