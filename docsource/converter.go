package docsource

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/storage"
)

const (
	// DefaultCacheTTL is used when a cache is attached without a TTL.
	DefaultCacheTTL = time.Hour

	// pdfPrefix is the base64 encoding of "%PDF-".
	pdfPrefix = "JVBERi0"

	htmlKeyPrefix    = "html_md:"
	fullDocKeyPrefix = "full_doc:"
)

// Converter loads documents and converts HTML to Markdown, optionally
// caching the results.
type Converter struct {
	cache     storage.DocumentCache
	ttl       time.Duration
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
	markdown  *converter.Converter
}

// Option configures a Converter.
type Option func(*Converter) error

// WithCache attaches a document cache. A ttl <= 0 uses DefaultCacheTTL.
func WithCache(cache storage.DocumentCache, ttl time.Duration) Option {
	return func(c *Converter) error {
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		c.cache = cache
		c.ttl = ttl
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewConverter creates a new converter.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		ttl:       DefaultCacheTTL,
		logger:    slog.Default(),
		sanitizer: bluemonday.UGCPolicy(),
		markdown: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithStrongDelimiter("**"),
				),
				table.NewTablePlugin(),
			),
		),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("docsource option: %w", err)
		}
	}

	return c, nil
}

// CacheEnabled reports whether a cache is attached.
func (c *Converter) CacheEnabled() bool {
	return c.cache != nil
}

// CacheTTL returns the TTL applied to cached entries.
func (c *Converter) CacheTTL() time.Duration {
	return c.ttl
}

// HTMLToMarkdown sanitises html and converts it to Markdown. Results are
// cached by content hash. Empty input yields "".
func (c *Converter) HTMLToMarkdown(ctx context.Context, html string) (string, error) {
	if html == "" {
		return "", nil
	}

	key := htmlCacheKey(html)
	if content, ok := c.cached(ctx, key); ok {
		return content, nil
	}

	clean := c.sanitizer.Sanitize(html)
	result, err := c.markdown.ConvertString(clean)
	if err != nil {
		return "", fmt.Errorf("converting html: %w", err)
	}
	result = strings.TrimSpace(result)

	if result != "" {
		c.store(ctx, key, result)
	}
	return result, nil
}

// LoadBase64 decodes a base64 HTML payload into a Markdown document.
// PDF payloads return ErrUnsupportedFormat. The converted document is
// cached under its ID.
func (c *Converter) LoadBase64(ctx context.Context, id, payload string) (*core.Document, error) {
	if id == "" {
		return nil, core.ErrEmptyDocumentID
	}

	key := fullDocKeyPrefix + id
	if content, ok := c.cached(ctx, key); ok {
		return &core.Document{ID: id, Source: "base64", Content: content}, nil
	}

	if strings.HasPrefix(payload, pdfPrefix) {
		return nil, fmt.Errorf("%w: PDF payload for document %s", ErrUnsupportedFormat, id)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	content, err := c.HTMLToMarkdown(ctx, string(raw))
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, id)
	}

	c.store(ctx, key, content)
	return &core.Document{ID: id, Source: "base64", Content: content}, nil
}

// ClearCache removes every cached entry. A converter without a cache does
// nothing.
func (c *Converter) ClearCache(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	if err := c.cache.Clear(ctx); err != nil {
		return err
	}
	c.logger.Info("cache cleared manually")
	return nil
}

// SweepCache evicts expired entries and returns how many were removed.
func (c *Converter) SweepCache(ctx context.Context) (int, error) {
	if c.cache == nil {
		return 0, nil
	}
	removed, err := c.cache.Sweep(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		c.logger.Info("removed expired cache entries", "removed", removed)
	}
	return removed, nil
}

// CacheSize returns the number of live cache entries, 0 without a cache.
func (c *Converter) CacheSize(ctx context.Context) (int, error) {
	if c.cache == nil {
		return 0, nil
	}
	return c.cache.Size(ctx)
}

// cached looks key up. Cache failures other than a miss are logged and
// treated as a miss.
func (c *Converter) cached(ctx context.Context, key string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	content, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("cache read failed", "key", key, "err", err)
		}
		return "", false
	}
	c.logger.Debug("cache hit", "key", key)
	return content, true
}

func (c *Converter) store(ctx context.Context, key, content string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(ctx, key, content, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	c.logger.Debug("cached result", "key", key)
}

func htmlCacheKey(html string) string {
	return fmt.Sprintf("%s%d", htmlKeyPrefix, core.IDFromContent(html))
}
