package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// DefaultMaxResults is the result limit applied when a caller does not supply one.
const DefaultMaxResults = 50

type ID uint64

// IDFromContent derives a stable 64-bit identifier from text.
// Used to build cache keys for converted payloads.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is one legislative act as handed to the search core.
type Document struct {
	ID      string // Caller-assigned identifier (legislation number, file path, ...)
	Title   string // Optional human-readable name
	Source  string // Where the content came from (path, URL)
	Content string // Markdown body
}

// Article is one "madde" cut out of a Document.
type Article struct {
	Number string // Declared article number, e.g. "1", "142"
	Title  string // Optional heading on the line after the marker
	Body   string // Marker line up to the next marker or end of document
}

// Match binds an Article to its query outcome.
type Match struct {
	Article
	Score   int    // Accumulated occurrence score
	Preview string // Snippet around the first matched term
}

// SearchResult is the outcome of searching one document.
type SearchResult struct {
	DocumentID   string
	Query        string
	TotalMatches int // Matching articles before truncation
	Matches      []*Match
}
