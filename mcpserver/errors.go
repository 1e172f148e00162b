package mcpserver

import "errors"

var (
	// ErrEngineRequired is returned when an engine is not provided.
	ErrEngineRequired = errors.New("engine required")

	// ErrNoDocument is returned when a tool call names no document source.
	ErrNoDocument = errors.New("one of document, path or document_id is required")

	// ErrAmbiguousDocument is returned when a tool call names several sources.
	ErrAmbiguousDocument = errors.New("only one of document, path or document_id may be given")

	// ErrUnknownDocument is returned for a document_id that was never loaded.
	ErrUnknownDocument = errors.New("unknown document")
)
