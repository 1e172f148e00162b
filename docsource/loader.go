package docsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/poiesic/madde/core"
)

var (
	markdownExtensions = []string{".md", ".markdown", ".txt"}
	htmlExtensions     = []string{".html", ".htm"}
)

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(markdownExtensions, ext) || slices.Contains(htmlExtensions, ext)
}

// Load reads a document from disk. Markdown and text files are used as-is;
// HTML files are converted. The document ID is the path and the title is
// the file name without its extension.
func (c *Converter) Load(ctx context.Context, path string) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	isHTML := slices.Contains(htmlExtensions, ext)
	if !isHTML && !slices.Contains(markdownExtensions, ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content := string(raw)
	if isHTML {
		content, err = c.HTMLToMarkdown(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", path, err)
		}
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}

	doc := &core.Document{
		ID:      path,
		Title:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Source:  path,
		Content: content,
	}
	c.logger.Debug("loaded document", "path", path, "bytes", len(content))
	return doc, nil
}
