package docsource

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/segment"
	"github.com/poiesic/madde/storage"
	"github.com/poiesic/madde/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legislationHTML = `<html><body>
<h1>SERMAYE PİYASASI KANUNU</h1>
<p><strong>MADDE 1 –</strong> (1) Amaç</p>
<p>Bu Kanunun amacı yatırımcı haklarını korumaktır.</p>
<p><b>MADDE 2 –</b> (1) Kapsam</p>
<p>Bu Kanun sermaye piyasası araçlarını kapsar.</p>
<script>alert("x")</script>
</body></html>`

func newCachedConverter(t *testing.T) (*Converter, storage.DocumentCache) {
	t.Helper()
	cache, err := badger.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	c, err := NewConverter(WithCache(cache, time.Hour))
	require.NoError(t, err)
	return c, cache
}

func TestNewConverter(t *testing.T) {
	c, err := NewConverter()
	require.NoError(t, err)
	assert.False(t, c.CacheEnabled())
	assert.Equal(t, DefaultCacheTTL, c.CacheTTL())

	cache, err := badger.NewMemoryCache()
	require.NoError(t, err)
	defer cache.Close()

	c, err = NewConverter(WithCache(cache, 0), WithLogger(nil))
	require.NoError(t, err)
	assert.True(t, c.CacheEnabled())
	assert.Equal(t, DefaultCacheTTL, c.CacheTTL())
	assert.NotNil(t, c.logger)
}

func TestHTMLToMarkdown(t *testing.T) {
	c, err := NewConverter()
	require.NoError(t, err)

	md, err := c.HTMLToMarkdown(context.Background(), legislationHTML)
	require.NoError(t, err)

	assert.Contains(t, md, "**MADDE 1 –**")
	assert.Contains(t, md, "**MADDE 2 –**")
	assert.NotContains(t, md, "alert")
	assert.Equal(t, strings.TrimSpace(md), md)

	articles := segment.Split(md)
	require.Len(t, articles, 2)
	assert.Equal(t, "1", articles[0].Number)
	assert.Contains(t, articles[0].Body, "yatırımcı")
	assert.Equal(t, "2", articles[1].Number)
}

func TestHTMLToMarkdown_Empty(t *testing.T) {
	c, err := NewConverter()
	require.NoError(t, err)

	md, err := c.HTMLToMarkdown(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", md)
}

func TestHTMLToMarkdown_Cache(t *testing.T) {
	c, cache := newCachedConverter(t)
	ctx := context.Background()

	md, err := c.HTMLToMarkdown(ctx, legislationHTML)
	require.NoError(t, err)

	stored, err := cache.Get(ctx, htmlCacheKey(legislationHTML))
	require.NoError(t, err)
	assert.Equal(t, md, stored)

	// A cached value wins over conversion
	require.NoError(t, cache.Put(ctx, htmlCacheKey(legislationHTML), "önbellekten", time.Hour))
	md, err = c.HTMLToMarkdown(ctx, legislationHTML)
	require.NoError(t, err)
	assert.Equal(t, "önbellekten", md)
}

func TestHTMLCacheKey(t *testing.T) {
	key := htmlCacheKey("<p>x</p>")
	assert.True(t, strings.HasPrefix(key, "html_md:"))
	assert.Equal(t, key, htmlCacheKey("<p>x</p>"))
	assert.NotEqual(t, key, htmlCacheKey("<p>y</p>"))
}

func TestLoadBase64(t *testing.T) {
	ctx := context.Background()
	payload := base64.StdEncoding.EncodeToString([]byte(legislationHTML))

	t.Run("html payload", func(t *testing.T) {
		c, cache := newCachedConverter(t)

		doc, err := c.LoadBase64(ctx, "6362", payload)
		require.NoError(t, err)
		assert.Equal(t, "6362", doc.ID)
		assert.Equal(t, "base64", doc.Source)
		assert.Contains(t, doc.Content, "**MADDE 1 –**")

		stored, err := cache.Get(ctx, "full_doc:6362")
		require.NoError(t, err)
		assert.Equal(t, doc.Content, stored)

		// Served from cache, payload no longer consulted
		again, err := c.LoadBase64(ctx, "6362", "not base64 at all")
		require.NoError(t, err)
		assert.Equal(t, doc.Content, again.Content)
	})

	t.Run("pdf payload", func(t *testing.T) {
		c, err := NewConverter()
		require.NoError(t, err)

		pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.7\n..."))
		require.True(t, strings.HasPrefix(pdf, "JVBERi0"))

		_, err = c.LoadBase64(ctx, "pdf", pdf)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("invalid base64", func(t *testing.T) {
		c, err := NewConverter()
		require.NoError(t, err)

		_, err = c.LoadBase64(ctx, "bad", "!!!not-base64")
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("empty payload", func(t *testing.T) {
		c, err := NewConverter()
		require.NoError(t, err)

		_, err = c.LoadBase64(ctx, "empty", "")
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("missing id", func(t *testing.T) {
		c, err := NewConverter()
		require.NoError(t, err)

		_, err = c.LoadBase64(ctx, "", payload)
		assert.ErrorIs(t, err, core.ErrEmptyDocumentID)
	})
}

// brokenCache fails every operation.
type brokenCache struct{}

var errBroken = errors.New("disk on fire")

func (brokenCache) Get(context.Context, string) (string, error)              { return "", errBroken }
func (brokenCache) Put(context.Context, string, string, time.Duration) error { return errBroken }
func (brokenCache) Delete(context.Context, string) error                     { return errBroken }
func (brokenCache) Size(context.Context) (int, error)                        { return 0, errBroken }
func (brokenCache) Clear(context.Context) error                              { return errBroken }
func (brokenCache) Sweep(context.Context) (int, error)                       { return 0, errBroken }
func (brokenCache) Close() error                                             { return nil }

func TestConverter_CacheFailuresAreNotFatal(t *testing.T) {
	c, err := NewConverter(WithCache(brokenCache{}, time.Minute))
	require.NoError(t, err)
	ctx := context.Background()

	md, err := c.HTMLToMarkdown(ctx, "<p><strong>MADDE 1 –</strong> metin</p>")
	require.NoError(t, err)
	assert.Contains(t, md, "**MADDE 1 –**")

	_, err = c.SweepCache(ctx)
	assert.ErrorIs(t, err, errBroken)
	assert.ErrorIs(t, c.ClearCache(ctx), errBroken)
	_, err = c.CacheSize(ctx)
	assert.ErrorIs(t, err, errBroken)
}

func TestConverter_CacheMaintenance(t *testing.T) {
	ctx := context.Background()

	t.Run("without cache", func(t *testing.T) {
		c, err := NewConverter()
		require.NoError(t, err)

		removed, err := c.SweepCache(ctx)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.NoError(t, c.ClearCache(ctx))
		size, err := c.CacheSize(ctx)
		require.NoError(t, err)
		assert.Zero(t, size)
	})

	t.Run("with cache", func(t *testing.T) {
		c, _ := newCachedConverter(t)

		_, err := c.HTMLToMarkdown(ctx, legislationHTML)
		require.NoError(t, err)

		size, err := c.CacheSize(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, size)

		removed, err := c.SweepCache(ctx)
		require.NoError(t, err)
		assert.Zero(t, removed)

		require.NoError(t, c.ClearCache(ctx))
		size, err = c.CacheSize(ctx)
		require.NoError(t, err)
		assert.Zero(t, size)
	})
}
