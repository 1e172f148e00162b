package search

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/madde/query"
)

const (
	previewRadius      = 100
	fallbackPreviewLen = 200
	ellipsis           = "..."
)

// Preview returns up to previewRadius characters either side of the first
// occurrence of term in body, with ellipses where the window was clipped.
// When term does not occur the first fallbackPreviewLen characters are used.
func Preview(body, term string, caseSensitive bool) string {
	content := query.Fold(body, caseSensitive)
	needle := query.Fold(term, caseSensitive)

	idx := strings.Index(content, needle)
	if idx < 0 {
		return fallbackPreview(body)
	}

	// Folding maps rune to rune, so rune offsets in content are valid in body.
	runes := []rune(body)
	pos := utf8.RuneCountInString(content[:idx])
	start := max(0, pos-previewRadius)
	end := min(len(runes), pos+utf8.RuneCountInString(needle)+previewRadius)

	preview := string(runes[start:end])
	if start > 0 {
		preview = ellipsis + preview
	}
	if end < len(runes) {
		preview += ellipsis
	}
	if preview == "" {
		return fallbackPreview(body)
	}
	return preview
}

func fallbackPreview(body string) string {
	runes := []rune(body)
	if len(runes) > fallbackPreviewLen {
		runes = runes[:fallbackPreviewLen]
	}
	return string(runes) + ellipsis
}
