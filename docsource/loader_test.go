package docsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"kanun.md", true},
		{"kanun.markdown", true},
		{"kanun.txt", true},
		{"kanun.html", true},
		{"KANUN.HTM", true},
		{"kanun.pdf", false},
		{"kanun", false},
		{"kanun.docx", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.path))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	c, err := NewConverter()
	require.NoError(t, err)

	t.Run("markdown used as is", func(t *testing.T) {
		content := "**MADDE 1 –** Amaç\n"
		path := writeFile(t, dir, "6362.md", content)

		doc, err := c.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, path, doc.ID)
		assert.Equal(t, path, doc.Source)
		assert.Equal(t, "6362", doc.Title)
		assert.Equal(t, content, doc.Content)
	})

	t.Run("html converted", func(t *testing.T) {
		path := writeFile(t, dir, "6102.html", legislationHTML)

		doc, err := c.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "6102", doc.Title)
		assert.Contains(t, doc.Content, "**MADDE 2 –**")
		assert.NotContains(t, doc.Content, "<p>")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "kanun.pdf", "%PDF-1.7")

		_, err := c.Load(ctx, path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := c.Load(ctx, filepath.Join(dir, "yok.md"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("blank file", func(t *testing.T) {
		path := writeFile(t, dir, "bos.txt", "  \n\t")

		_, err := c.Load(ctx, path)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := c.Load(cancelled, filepath.Join(dir, "6362.md"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
